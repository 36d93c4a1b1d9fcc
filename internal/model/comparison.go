package model

// MaterialComparison is one row of the side-by-side material table.
type MaterialComparison struct {
	MaterialID     string  `json:"material_id"`
	Name           string  `json:"name"`
	Density        float64 `json:"density"`
	CostPerMass    float64 `json:"cost_per_mass"`
	WeightPerPiece float64 `json:"weight_per_piece"`
	CostPerPiece   float64 `json:"cost_per_piece"`
	TotalCost      float64 `json:"total_cost"`
}

// CompareMaterials prices the same volume in every catalog material, in
// catalog order, using the active cost table.
func (c Catalog) CompareMaterials(volume float64, units UnitSystem, qty int) ([]MaterialComparison, error) {
	if !positive(volume) {
		return nil, &ValidationError{Field: "volume", Message: "enter a material volume"}
	}
	if qty < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	rows := make([]MaterialComparison, 0, len(c.Materials))
	for _, m := range c.Materials {
		cost, _ := c.CostPerMass(m.ID, units)
		density := m.Density(units)
		w := PieceWeight(volume, density, units)
		rows = append(rows, MaterialComparison{
			MaterialID:     m.ID,
			Name:           m.Name,
			Density:        density,
			CostPerMass:    cost,
			WeightPerPiece: w,
			CostPerPiece:   w * cost,
			TotalCost:      w * cost * float64(qty),
		})
	}
	return rows, nil
}

// CheapestMaterial returns the row with the lowest lot cost.
func CheapestMaterial(rows []MaterialComparison) (MaterialComparison, bool) {
	if len(rows) == 0 {
		return MaterialComparison{}, false
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.TotalCost < best.TotalCost {
			best = r
		}
	}
	return best, true
}
