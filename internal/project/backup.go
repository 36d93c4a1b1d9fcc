package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/MachCost/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version       string                  `json:"version"`
	CreatedAt     string                  `json:"created_at"`
	Config        model.AppConfig         `json:"config"`
	MaterialCosts model.MaterialCostTable `json:"material_costs"`
	Quotes        model.QuoteStore        `json:"quotes"`
}

// ExportAllData writes preferences, the material cost table and saved quotes
// to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, costs model.MaterialCostTable, quotes model.QuoteStore) error {
	backup := BackupData{
		Version:       BackupVersion,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Config:        config,
		MaterialCosts: costs,
		Quotes:        quotes,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The cost table is merged over the defaults; the caller applies the rest.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.MaterialCosts = model.MergeMaterialCosts(backup.MaterialCosts)
	if backup.Quotes.Quotes == nil {
		backup.Quotes.Quotes = []model.Quote{}
	}
	if backup.Config.FinishingCosts == nil {
		backup.Config.FinishingCosts = map[string]float64{}
	}
	return backup, nil
}
