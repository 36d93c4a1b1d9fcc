package model

import (
	"fmt"
	"math"
)

// CostBreakdown holds the intermediate lot and per-piece amounts of an
// estimate at full precision.
type CostBreakdown struct {
	MachineTimePerPiece  float64 `json:"machine_time_per_piece"` // hours
	TotalSetupTime       float64 `json:"total_setup_time"`       // hours
	TotalProgrammingTime float64 `json:"total_programming_time"` // hours

	MachineCost     float64 `json:"machine_cost"`     // lot
	SetupCost       float64 `json:"setup_cost"`       // lot
	ProgrammingCost float64 `json:"programming_cost"` // lot
	MaterialCost    float64 `json:"material_cost"`    // lot

	FinishingPerPiece float64 `json:"finishing_per_piece"`
	ToolPerPiece      float64 `json:"tool_per_piece"`
	FixedPerPiece     float64 `json:"fixed_per_piece"`
	VariablePerPiece  float64 `json:"variable_per_piece"`
	MaterialPerPiece  float64 `json:"material_per_piece"`
	BasePerPiece      float64 `json:"base_per_piece"` // before markup
	MarkupFactor      float64 `json:"markup_factor"`
}

// CalculationResult is the outcome of an estimate. Values are unrounded;
// use Rounded for display.
type CalculationResult struct {
	TotalMachineTime float64       `json:"total_machine_time"` // hours
	CostPerPiece     float64       `json:"cost_per_piece"`
	TotalLotCost     float64       `json:"total_lot_cost"`
	MaterialCost     float64       `json:"material_cost"`
	Batches          []int         `json:"batches"`
	Breakdown        CostBreakdown `json:"breakdown"`
}

// Rounded returns a copy with the headline figures rounded to two decimals.
func (r CalculationResult) Rounded() CalculationResult {
	r.TotalMachineTime = Round2(r.TotalMachineTime)
	r.CostPerPiece = Round2(r.CostPerPiece)
	r.TotalLotCost = Round2(r.TotalLotCost)
	r.MaterialCost = Round2(r.MaterialCost)
	return r
}

// Calculate turns job parameters into per-piece and lot costs. Invalid input
// returns a *ValidationError and no result.
func Calculate(j JobParameters) (CalculationResult, error) {
	if err := j.Validate(); err != nil {
		return CalculationResult{}, err
	}

	qty := float64(j.Quantity)
	var b CostBreakdown

	b.MachineTimePerPiece = j.MachineTime.InHours()
	totalMachineTime := b.MachineTimePerPiece * qty
	b.TotalSetupTime = j.SetupTime.InHours() * float64(j.SetupCount)
	if j.IncludeProgramming {
		b.TotalProgrammingTime = j.ProgrammingTime.InHours()
	}

	b.MachineCost = totalMachineTime * j.MachineRate
	b.SetupCost = b.TotalSetupTime * j.SetupRate
	b.ProgrammingCost = b.TotalProgrammingTime * j.ProgrammingRate
	b.MaterialCost = materialLotCost(j.Material, j.Quantity)

	b.FinishingPerPiece = j.Finishing.CostPerPiece()
	b.ToolPerPiece = j.ToolCost / qty
	b.FixedPerPiece = (b.SetupCost + b.ProgrammingCost) / qty
	b.VariablePerPiece = b.MachineCost/qty + b.FinishingPerPiece + b.ToolPerPiece
	b.MaterialPerPiece = b.MaterialCost / qty
	b.BasePerPiece = b.FixedPerPiece + b.VariablePerPiece + b.MaterialPerPiece

	b.MarkupFactor = 1
	if j.MarkupEnabled {
		b.MarkupFactor = 1 + j.MarkupPercent/100
	}
	perPiece := b.BasePerPiece * b.MarkupFactor

	return CalculationResult{
		TotalMachineTime: totalMachineTime,
		CostPerPiece:     perPiece,
		TotalLotCost:     perPiece * qty,
		MaterialCost:     b.MaterialCost,
		Batches:          DistributeBatches(j.Quantity, j.SetupCount),
		Breakdown:        b,
	}, nil
}

// materialLotCost is zero when the material section is incomplete; a job
// without material is still a valid estimate.
func materialLotCost(m MaterialInput, qty int) float64 {
	if m.Volume <= 0 || m.Density <= 0 || m.CostPerMass <= 0 {
		return 0
	}
	return PieceWeight(m.Volume, m.Density, m.Units) * m.CostPerMass * float64(qty)
}

// PieceWeight returns the weight of one piece in kg (metric, from cm³ and
// g/cm³) or lb (SAE, from in³ and lb/in³).
func PieceWeight(volume, density float64, units UnitSystem) float64 {
	w := volume * density
	if units.IsMetric() {
		w /= gramsPerKg
	}
	return w
}

// MaterialCostResult is the output of the standalone material calculator.
type MaterialCostResult struct {
	WeightPerPiece float64    `json:"weight_per_piece"` // kg or lb
	TotalWeight    float64    `json:"total_weight"`
	CostPerPiece   float64    `json:"cost_per_piece"`
	TotalCost      float64    `json:"total_cost"`
	Units          UnitSystem `json:"units"`
}

// MaterialCost prices the raw stock for a lot.
func MaterialCost(m MaterialInput, qty int) (MaterialCostResult, error) {
	if !positive(m.Volume) {
		return MaterialCostResult{}, &ValidationError{Field: "volume", Message: "enter a material volume"}
	}
	if !positive(m.Density) {
		return MaterialCostResult{}, &ValidationError{Field: "density", Message: "must be a positive number"}
	}
	if !positive(m.CostPerMass) {
		return MaterialCostResult{}, &ValidationError{Field: "cost_per_mass", Message: "must be a positive number"}
	}
	if qty < 1 {
		return MaterialCostResult{}, &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	w := PieceWeight(m.Volume, m.Density, m.Units)
	return MaterialCostResult{
		WeightPerPiece: w,
		TotalWeight:    w * float64(qty),
		CostPerPiece:   w * m.CostPerMass,
		TotalCost:      w * m.CostPerMass * float64(qty),
		Units:          m.Units,
	}, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders an amount as "$1234.50".
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", Round2(v))
}

// FormatHours renders fractional hours as "2.50 h".
func FormatHours(v float64) string {
	return fmt.Sprintf("%.2f h", Round2(v))
}
