package model

// AppConfig holds user preferences that seed every new estimate.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultUnits           UnitSystem `json:"default_units"`
	DefaultMaterial        string     `json:"default_material"`
	DefaultMachineRate     float64    `json:"default_machine_rate"`
	DefaultSetupRate       float64    `json:"default_setup_rate"`
	DefaultProgrammingRate float64    `json:"default_programming_rate"`
	DefaultMarkupPercent   float64    `json:"default_markup_percent"`
	MarkupByDefault        bool       `json:"markup_by_default"`

	// Finishing unit cost overrides keyed by process ID
	FinishingCosts map[string]float64 `json:"finishing_costs,omitempty"`

	// Application preferences
	MaxSavedQuotes int    `json:"max_saved_quotes"`
	Theme          string `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the values of
// DefaultJobParameters.
func DefaultAppConfig() AppConfig {
	defaults := DefaultJobParameters(DefaultCatalog(), UnitsMetric)
	return AppConfig{
		DefaultUnits:           UnitsMetric,
		DefaultMaterial:        defaults.Material.MaterialID,
		DefaultMachineRate:     defaults.MachineRate,
		DefaultSetupRate:       defaults.SetupRate,
		DefaultProgrammingRate: defaults.ProgrammingRate,
		DefaultMarkupPercent:   defaults.MarkupPercent,
		MarkupByDefault:        defaults.MarkupEnabled,
		FinishingCosts:         map[string]float64{},
		MaxSavedQuotes:         50,
		Theme:                  "system",
	}
}

// ApplyFinishingCosts returns the catalog with the configured finishing
// prices applied. Unknown or negative entries are skipped.
func (c AppConfig) ApplyFinishingCosts(cat Catalog) Catalog {
	fin := cat.Finishing
	for id, cost := range c.FinishingCosts {
		if updated, err := fin.WithCost(id, cost); err == nil {
			fin = updated
		}
	}
	cat.Finishing = fin
	return cat
}

// NewJob builds a fresh job from the configured defaults.
func (c AppConfig) NewJob(cat Catalog) JobParameters {
	units := c.DefaultUnits
	if units == "" {
		units = UnitsMetric
	}
	j := DefaultJobParameters(cat, units)
	c.ApplyToJob(&j, cat)
	return j
}

// ApplyToJob copies the default rates, markup and material into j.
func (c AppConfig) ApplyToJob(j *JobParameters, cat Catalog) {
	if c.DefaultMachineRate > 0 {
		j.MachineRate = c.DefaultMachineRate
	}
	if c.DefaultSetupRate > 0 {
		j.SetupRate = c.DefaultSetupRate
	}
	if c.DefaultProgrammingRate > 0 {
		j.ProgrammingRate = c.DefaultProgrammingRate
	}
	if c.DefaultMarkupPercent >= 0 {
		j.MarkupPercent = c.DefaultMarkupPercent
	}
	j.MarkupEnabled = c.MarkupByDefault
	if _, ok := cat.Material(c.DefaultMaterial); ok || c.DefaultMaterial == CustomMaterialID {
		j.Material = cat.SelectMaterial(j.Material, c.DefaultMaterial)
	}
}
