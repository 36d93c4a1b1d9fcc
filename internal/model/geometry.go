package model

import (
	"math"
	"strconv"
	"strings"
)

// Shape is the stock form a part is cut from.
type Shape int

const (
	ShapeUnknown     Shape = iota // Not enough dimensions to decide
	ShapeRectangular              // Length x Width x Thickness
	ShapeCylindrical              // Diameter x Length
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangular:
		return "Rectangular"
	case ShapeCylindrical:
		return "Cylindrical"
	default:
		return "Unknown"
	}
}

// PartGeometry holds raw part dimensions in the length unit of the active
// regime (mm or in). Length is shared by both shapes.
type PartGeometry struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`
	Diameter  float64 `json:"diameter"`
}

// ParseDimension parses a form field. Empty or unparsable input reads as 0.
func ParseDimension(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseGeometry builds a PartGeometry from form strings.
func ParseGeometry(length, width, thickness, diameter string) PartGeometry {
	return PartGeometry{
		Length:    ParseDimension(length),
		Width:     ParseDimension(width),
		Thickness: ParseDimension(thickness),
		Diameter:  ParseDimension(diameter),
	}
}

// Shape reports which formula applies. A diameter with a length wins over
// rectangular dimensions.
func (g PartGeometry) Shape() Shape {
	switch {
	case g.Diameter > 0 && g.Length > 0:
		return ShapeCylindrical
	case g.Length > 0 && g.Width > 0 && g.Thickness > 0:
		return ShapeRectangular
	default:
		return ShapeUnknown
	}
}

// RawVolume returns the volume in cubed input units (mm³ or in³), or 0 when
// the dimensions are incomplete.
func (g PartGeometry) RawVolume() float64 {
	switch g.Shape() {
	case ShapeCylindrical:
		r := g.Diameter / 2
		return math.Pi * r * r * g.Length
	case ShapeRectangular:
		return g.Length * g.Width * g.Thickness
	default:
		return 0
	}
}

// CalculateVolume returns the material volume for the part: cm³ from mm
// inputs in metric mode, in³ from inch inputs in SAE mode. A zero result is
// reported as *InvalidGeometryError.
func CalculateVolume(g PartGeometry, units UnitSystem) (float64, error) {
	v := g.RawVolume()
	if v <= 0 {
		return 0, &InvalidGeometryError{Units: units}
	}
	if units.IsMetric() {
		v /= cubicMmPerCubicCm
	}
	return v, nil
}
