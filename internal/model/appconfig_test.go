package model

import "testing"

func TestDefaultAppConfigMatchesDefaultJob(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultJobParameters(DefaultCatalog(), UnitsMetric)

	if cfg.DefaultMachineRate != defaults.MachineRate {
		t.Errorf("MachineRate mismatch: config=%f job=%f", cfg.DefaultMachineRate, defaults.MachineRate)
	}
	if cfg.DefaultSetupRate != defaults.SetupRate {
		t.Errorf("SetupRate mismatch: config=%f job=%f", cfg.DefaultSetupRate, defaults.SetupRate)
	}
	if cfg.DefaultMaterial != defaults.Material.MaterialID {
		t.Errorf("Material mismatch: config=%s job=%s", cfg.DefaultMaterial, defaults.Material.MaterialID)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.FinishingCosts == nil {
		t.Error("FinishingCosts should not be nil")
	}
}

func TestApplyToJob(t *testing.T) {
	cat := DefaultCatalog()
	cfg := DefaultAppConfig()
	cfg.DefaultMachineRate = 95
	cfg.DefaultMaterial = "titanium"
	cfg.MarkupByDefault = true
	cfg.DefaultMarkupPercent = 35

	j := DefaultJobParameters(cat, UnitsMetric)
	cfg.ApplyToJob(&j, cat)

	if j.MachineRate != 95 {
		t.Errorf("expected MachineRate=95, got %f", j.MachineRate)
	}
	if j.Material.MaterialID != "titanium" || j.Material.Density != 4.5 {
		t.Errorf("expected titanium, got %+v", j.Material)
	}
	if !j.MarkupEnabled || j.MarkupPercent != 35 {
		t.Errorf("expected 35%% markup, got %v %f", j.MarkupEnabled, j.MarkupPercent)
	}
}

func TestNewJobUsesDefaultUnits(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultUnits = UnitsSAE
	j := cfg.NewJob(DefaultCatalog())
	if j.Units() != UnitsSAE {
		t.Errorf("expected SAE, got %s", j.Units())
	}
	if j.Material.Density != 0.0975 {
		t.Errorf("expected SAE aluminum density, got %f", j.Material.Density)
	}
}

func TestApplyFinishingCosts(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.FinishingCosts = map[string]float64{"anodizing": 6.5, "gold-leaf": 100}
	cat := cfg.ApplyFinishingCosts(DefaultCatalog())
	p, _ := cat.Finishing.Find("anodizing")
	if p.UnitCost != 6.5 {
		t.Errorf("expected 6.5, got %f", p.UnitCost)
	}
	if _, ok := cat.Finishing.Find("gold-leaf"); ok {
		t.Error("unknown processes should not be added")
	}
}
