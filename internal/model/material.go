package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// CustomMaterialID identifies the user-defined material whose density and
// cost are entered by hand and never looked up from the catalog.
const CustomMaterialID = "custom"

// MaterialSpec describes one stock material in both unit regimes.
type MaterialSpec struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DensityMetric    float64 `json:"density_metric"`     // g/cm³
	DensityImperial  float64 `json:"density_imperial"`   // lb/in³
	CostPerKgDefault float64 `json:"cost_per_kg_default"` // currency per kg
}

// Density returns the density for the given unit regime.
func (m MaterialSpec) Density(units UnitSystem) float64 {
	if units.IsMetric() {
		return m.DensityMetric
	}
	return m.DensityImperial
}

// defaultMaterials is the built-in catalog in display order.
var defaultMaterials = []MaterialSpec{
	{ID: "aluminum", Name: "Aluminum", DensityMetric: 2.7, DensityImperial: 0.0975, CostPerKgDefault: 4.5},
	{ID: "steel", Name: "Steel", DensityMetric: 7.85, DensityImperial: 0.284, CostPerKgDefault: 2.5},
	{ID: "stainless-steel", Name: "Stainless Steel", DensityMetric: 8.0, DensityImperial: 0.289, CostPerKgDefault: 5.0},
	{ID: "brass", Name: "Brass", DensityMetric: 8.5, DensityImperial: 0.307, CostPerKgDefault: 8.0},
	{ID: "copper", Name: "Copper", DensityMetric: 8.96, DensityImperial: 0.324, CostPerKgDefault: 9.0},
	{ID: "titanium", Name: "Titanium", DensityMetric: 4.5, DensityImperial: 0.163, CostPerKgDefault: 35.0},
	{ID: "plastic-pom", Name: "Plastic (POM)", DensityMetric: 1.41, DensityImperial: 0.051, CostPerKgDefault: 6.0},
	{ID: "plastic-abs", Name: "Plastic (ABS)", DensityMetric: 1.04, DensityImperial: 0.0376, CostPerKgDefault: 5.0},
	{ID: "plastic-nylon", Name: "Plastic (Nylon)", DensityMetric: 1.15, DensityImperial: 0.0416, CostPerKgDefault: 7.0},
}

// DefaultMaterials returns a copy of the built-in material catalog.
func DefaultMaterials() []MaterialSpec {
	out := make([]MaterialSpec, len(defaultMaterials))
	copy(out, defaultMaterials)
	return out
}

// MaterialCostTable maps material IDs to a price per kg.
type MaterialCostTable map[string]float64

// DefaultMaterialCostTable returns the built-in price per kg for every catalog material.
func DefaultMaterialCostTable() MaterialCostTable {
	t := make(MaterialCostTable, len(defaultMaterials))
	for _, m := range defaultMaterials {
		t[m.ID] = m.CostPerKgDefault
	}
	return t
}

// Clone returns an independent copy of the table.
func (t MaterialCostTable) Clone() MaterialCostTable {
	out := make(MaterialCostTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// IDs returns the table keys in sorted order.
func (t MaterialCostTable) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Set updates the price for a known catalog material.
func (t MaterialCostTable) Set(id string, costPerKg float64) error {
	if !isCatalogMaterial(id) {
		return &ValidationError{Field: "material", Message: fmt.Sprintf("unknown material %q", id)}
	}
	if !validCost(costPerKg) {
		return &ValidationError{Field: "cost_per_kg", Message: "must be a positive number"}
	}
	t[id] = costPerKg
	return nil
}

// Validate checks that every entry names a catalog material with a positive price.
func (t MaterialCostTable) Validate() error {
	for _, id := range t.IDs() {
		if !isCatalogMaterial(id) {
			return &ValidationError{Field: "material", Message: fmt.Sprintf("unknown material %q", id)}
		}
		if !validCost(t[id]) {
			return &ValidationError{Field: id, Message: "cost per kg must be a positive number"}
		}
	}
	return nil
}

// MergeMaterialCosts overlays the valid entries of raw onto the built-in
// defaults. Unknown IDs and non-positive prices are dropped, so the result
// always covers the whole catalog.
func MergeMaterialCosts(raw map[string]float64) MaterialCostTable {
	t := DefaultMaterialCostTable()
	for id, cost := range raw {
		if isCatalogMaterial(id) && validCost(cost) {
			t[id] = cost
		}
	}
	return t
}

// DecodeMaterialCostTable parses a JSON object of material ID to price per kg
// and merges it over the defaults. Malformed JSON is an error.
func DecodeMaterialCostTable(data []byte) (MaterialCostTable, error) {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode material costs: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode material costs: not an object")
	}
	return MergeMaterialCosts(raw), nil
}

func isCatalogMaterial(id string) bool {
	for _, m := range defaultMaterials {
		if m.ID == id {
			return true
		}
	}
	return false
}

func validCost(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// MaterialInput is the material section of a job: what is being cut, how
// much of it, and its density and price in the active unit regime.
type MaterialInput struct {
	MaterialID  string     `json:"material_id"`
	Volume      float64    `json:"volume"`        // cm³ or in³
	Density     float64    `json:"density"`       // g/cm³ or lb/in³
	CostPerMass float64    `json:"cost_per_mass"` // $/kg or $/lb
	Units       UnitSystem `json:"units"`
}

// IsCustom reports whether the input uses hand-entered density and cost.
func (in MaterialInput) IsCustom() bool {
	return in.MaterialID == CustomMaterialID
}

// Catalog is the immutable configuration threaded through the converter and
// the calculator: material specs, finishing processes and the active price table.
type Catalog struct {
	Materials []MaterialSpec
	Finishing FinishingCatalog
	Costs     MaterialCostTable
}

// DefaultCatalog returns the built-in catalog with default prices.
func DefaultCatalog() Catalog {
	return Catalog{
		Materials: DefaultMaterials(),
		Finishing: DefaultFinishingCatalog(),
		Costs:     DefaultMaterialCostTable(),
	}
}

// WithCosts returns a copy of the catalog using the given price table.
func (c Catalog) WithCosts(t MaterialCostTable) Catalog {
	c.Costs = MergeMaterialCosts(t)
	return c
}

// Material returns the spec for id.
func (c Catalog) Material(id string) (MaterialSpec, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return MaterialSpec{}, false
}

// MaterialName returns the display name for id, "Custom Material" for the
// custom entry, or the id itself when unknown.
func (c Catalog) MaterialName(id string) string {
	if id == CustomMaterialID {
		return "Custom Material"
	}
	if m, ok := c.Material(id); ok {
		return m.Name
	}
	return id
}

// CostPerMass returns the configured price for id in the basis of units.
func (c Catalog) CostPerMass(id string, units UnitSystem) (float64, bool) {
	perKg, ok := c.Costs[id]
	if !ok {
		m, found := c.Material(id)
		if !found {
			return 0, false
		}
		perKg = m.CostPerKgDefault
	}
	return ConvertCostPerMass(perKg, UnitsMetric, units), true
}

// NewMaterialInput returns an input for id with density and price filled in
// for the given regime.
func (c Catalog) NewMaterialInput(id string, units UnitSystem) MaterialInput {
	return c.SelectMaterial(MaterialInput{Units: units}, id)
}

// SelectMaterial switches the input to another material. Named materials get
// density and price from the catalog; the custom material keeps the
// current values so the user can edit them.
func (c Catalog) SelectMaterial(in MaterialInput, id string) MaterialInput {
	in.MaterialID = id
	m, ok := c.Material(id)
	if !ok {
		return in
	}
	in.Density = m.Density(in.Units)
	if cost, ok := c.CostPerMass(id, in.Units); ok {
		in.CostPerMass = cost
	}
	return in
}

// SwitchUnits converts volume and price basis to the target regime and
// swaps density from the catalog in the same step. Custom density is
// left as entered.
func (c Catalog) SwitchUnits(in MaterialInput, to UnitSystem) MaterialInput {
	from := in.Units
	if from.IsMetric() == to.IsMetric() {
		in.Units = to
		return in
	}

	out := in
	out.Units = to
	if in.Volume > 0 {
		out.Volume = ConvertVolume(in.Volume, from, to)
	}
	if !math.IsNaN(in.CostPerMass) {
		out.CostPerMass = ConvertCostPerMass(in.CostPerMass, from, to)
	}
	if !in.IsCustom() {
		if m, ok := c.Material(in.MaterialID); ok {
			out.Density = m.Density(to)
		}
	}
	return out
}
