package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/MachCost/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.machcost/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".machcost")
}

// DefaultConfigPath returns the default path for the preferences file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultStorePath returns the default path for the file key-value store.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "store.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	defer lockFile(path)()
	return writeFileAtomic(path, data)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if _, err := model.ParseUnitSystem(string(config.DefaultUnits)); err != nil {
		config.DefaultUnits = model.UnitsMetric
	}
	if config.FinishingCosts == nil {
		config.FinishingCosts = map[string]float64{}
	}
	return config, nil
}
