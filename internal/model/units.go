package model

import (
	"fmt"
	"strings"
)

// UnitSystem selects the measurement regime used for dimensions, volume,
// density and material cost basis.
type UnitSystem string

const (
	UnitsMetric UnitSystem = "metric" // mm, cm³, g/cm³, $/kg
	UnitsSAE    UnitSystem = "sae"    // in, in³, lb/in³, $/lb
)

// Conversion factors between the two regimes.
const (
	CubicCmPerCubicInch = 16.387064
	PoundsPerKg         = 2.20462
	MmPerInch           = 25.4
	cubicMmPerCubicCm   = 1000.0
	gramsPerKg          = 1000.0
)

// ParseUnitSystem accepts "metric"/"mm" and "sae"/"imperial"/"in".
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "mm", "si":
		return UnitsMetric, nil
	case "sae", "imperial", "in", "inch":
		return UnitsSAE, nil
	default:
		return "", fmt.Errorf("unknown unit system %q", s)
	}
}

func (u UnitSystem) String() string {
	if u == UnitsSAE {
		return "SAE"
	}
	return "Metric"
}

// IsMetric reports whether u is the metric regime. The zero value counts as metric.
func (u UnitSystem) IsMetric() bool {
	return u != UnitsSAE
}

// LengthUnit returns the label used for linear dimension inputs.
func (u UnitSystem) LengthUnit() string {
	if u.IsMetric() {
		return "mm"
	}
	return "in"
}

// VolumeUnit returns the label used for material volume.
func (u UnitSystem) VolumeUnit() string {
	if u.IsMetric() {
		return "cm³"
	}
	return "in³"
}

// DensityUnit returns the label used for material density.
func (u UnitSystem) DensityUnit() string {
	if u.IsMetric() {
		return "g/cm³"
	}
	return "lb/in³"
}

// MassUnit returns the label used for material weight and cost basis.
func (u UnitSystem) MassUnit() string {
	if u.IsMetric() {
		return "kg"
	}
	return "lb"
}

// ConvertVolume converts a volume between regimes (cm³ <-> in³).
func ConvertVolume(v float64, from, to UnitSystem) float64 {
	if from.IsMetric() == to.IsMetric() {
		return v
	}
	if from.IsMetric() {
		return v / CubicCmPerCubicInch
	}
	return v * CubicCmPerCubicInch
}

// ConvertCostPerMass converts a material price between $/kg and $/lb.
func ConvertCostPerMass(c float64, from, to UnitSystem) float64 {
	if from.IsMetric() == to.IsMetric() {
		return c
	}
	if from.IsMetric() {
		return c / PoundsPerKg
	}
	return c * PoundsPerKg
}

// ConvertLength converts a linear dimension between mm and inches. The form
// does not apply it on unit toggle; it is used when importing drawings.
func ConvertLength(l float64, from, to UnitSystem) float64 {
	if from.IsMetric() == to.IsMetric() {
		return l
	}
	if from.IsMetric() {
		return l / MmPerInch
	}
	return l * MmPerInch
}
