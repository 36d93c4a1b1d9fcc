package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/MachCost/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMachineRate = 110
	cfg.DefaultUnits = model.UnitsSAE
	cfg.Theme = "dark"
	cfg.FinishingCosts = map[string]float64{"anodizing": 6}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultMachineRate != 110 {
		t.Errorf("expected DefaultMachineRate=110, got %f", loaded.DefaultMachineRate)
	}
	if loaded.DefaultUnits != model.UnitsSAE {
		t.Errorf("expected SAE, got %s", loaded.DefaultUnits)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.FinishingCosts["anodizing"] != 6 {
		t.Errorf("expected anodizing override, got %v", loaded.FinishingCosts)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	defaults := model.DefaultAppConfig()
	if cfg.DefaultMachineRate != defaults.DefaultMachineRate {
		t.Errorf("expected default machine rate, got %f", cfg.DefaultMachineRate)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light","default_units":"cubits"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.Theme)
	}
	if cfg.DefaultUnits != model.UnitsMetric {
		t.Errorf("invalid units should fall back to metric, got %s", cfg.DefaultUnits)
	}
	if cfg.DefaultSetupRate != model.DefaultAppConfig().DefaultSetupRate {
		t.Errorf("missing fields should keep defaults, got %f", cfg.DefaultSetupRate)
	}
	if cfg.FinishingCosts == nil {
		t.Error("FinishingCosts should not be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
