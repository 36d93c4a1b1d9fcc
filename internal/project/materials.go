package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/store"
)

// MaterialCostsKey is the store key holding the JSON cost table.
const MaterialCostsKey = "materialCosts"

// LoadMaterialCosts returns the saved cost table merged over the built-in
// defaults. A missing, unreadable or malformed entry yields the defaults.
func LoadMaterialCosts(ctx context.Context, s store.Store) model.MaterialCostTable {
	raw, err := s.Get(ctx, MaterialCostsKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.S().Named("project").Warnw("reading material costs failed, using defaults", "error", err)
		}
		return model.DefaultMaterialCostTable()
	}
	table, err := model.DecodeMaterialCostTable([]byte(raw))
	if err != nil {
		zap.S().Named("project").Debugw("stored material costs are malformed, using defaults", "error", err)
		return model.DefaultMaterialCostTable()
	}
	return table
}

// SaveMaterialCosts validates and persists the cost table.
func SaveMaterialCosts(ctx context.Context, s store.Store, table model.MaterialCostTable) error {
	if err := table.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal material costs: %w", err)
	}
	if err := s.Set(ctx, MaterialCostsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save material costs: %w", err)
	}
	return nil
}

// ResetMaterialCosts removes any saved overrides and returns the defaults.
func ResetMaterialCosts(ctx context.Context, s store.Store) (model.MaterialCostTable, error) {
	if err := s.Delete(ctx, MaterialCostsKey); err != nil {
		return nil, fmt.Errorf("failed to reset material costs: %w", err)
	}
	return model.DefaultMaterialCostTable(), nil
}
