package ui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/importer"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
	"github.com/piwi3910/MachCost/internal/store"
)

// Session is the estimate form state behind the window: what has been
// typed, the unit regime, the finishing selection and the last result.
// Widgets read from and write to it; it never touches fyne itself.
type Session struct {
	store   store.Store
	config  model.AppConfig
	catalog model.Catalog

	units     model.UnitSystem
	finishing model.FinishingSelection
	values    FormValues
	history   *History

	quote *model.Quote
}

// NewSession loads the saved price table and starts a fresh job from cfg.
func NewSession(ctx context.Context, s store.Store, cfg model.AppConfig) *Session {
	sess := &Session{
		store:   s,
		config:  cfg,
		history: NewHistory(),
	}
	sess.catalog = cfg.ApplyFinishingCosts(model.DefaultCatalog().WithCosts(project.LoadMaterialCosts(ctx, s)))
	sess.load(cfg.NewJob(sess.catalog))
	return sess
}

func (s *Session) load(j model.JobParameters) {
	s.units = j.Units()
	s.finishing = j.Finishing
	s.values = ValuesFromJob(j)
	s.quote = nil
}

func (s *Session) Values() FormValues { return s.values }
func (s *Session) Units() model.UnitSystem { return s.units }
func (s *Session) Finishing() model.FinishingSelection { return s.finishing }
func (s *Session) Catalog() model.Catalog { return s.catalog }
func (s *Session) Config() model.AppConfig { return s.config }
func (s *Session) History() *History { return s.history }

// LastQuote returns the quote of the most recent successful calculation.
func (s *Session) LastQuote() (model.Quote, bool) {
	if s.quote == nil {
		return model.Quote{}, false
	}
	return *s.quote, true
}

// SetValues records what is currently typed in the form.
func (s *Session) SetValues(v FormValues) {
	s.values = v
}

func (s *Session) snapshot(label string) Snapshot {
	return MakeSnapshot(s.values, s.units, s.finishing, label)
}

func (s *Session) restore(snap Snapshot) {
	s.values = snap.Values
	s.units = snap.Units
	s.finishing = snap.Finishing
	s.quote = nil
}

// Reset clears the form back to the configured defaults.
func (s *Session) Reset() {
	s.history.Push(s.snapshot("Reset"))
	s.load(s.config.NewJob(s.catalog))
}

// Undo reverts the most recent recorded change.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.snapshot(""))
	if ok {
		s.restore(prev)
	}
	return ok
}

// Redo re-applies the change reverted by Undo.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.snapshot(""))
	if ok {
		s.restore(next)
	}
	return ok
}

// SwitchUnits converts the material section into the other regime. Part
// dimensions are left as typed. Unparsable material fields are reported
// and nothing changes.
func (s *Session) SwitchUnits(to model.UnitSystem) error {
	if to == s.units {
		return nil
	}
	in, err := s.values.ParseMaterial(s.units)
	if err != nil {
		return err
	}
	s.history.Push(s.snapshot("Switch to " + to.String()))
	in = s.catalog.SwitchUnits(in, to)
	s.values = s.values.WithMaterial(in)
	s.units = to
	s.quote = nil
	return nil
}

// SelectMaterial fills density and price for a catalog material. The
// custom material keeps whatever was entered.
func (s *Session) SelectMaterial(id string) {
	if id == s.values.MaterialID {
		return
	}
	s.history.Push(s.snapshot("Select material"))
	s.values.MaterialID = id
	if m, ok := s.catalog.Material(id); ok {
		s.values.Density = formatNumber(m.Density(s.units))
		s.setCatalogCost()
	}
}

// SetFinishing replaces the finishing selection.
func (s *Session) SetFinishing(sel model.FinishingSelection) {
	s.history.Push(s.snapshot("Finishing"))
	s.finishing = sel
}

// ApplyGeometry computes the material volume from the part dimensions and
// writes it into the volume field.
func (s *Session) ApplyGeometry() (float64, error) {
	v, err := model.CalculateVolume(s.values.Geometry(), s.units)
	if err != nil {
		return 0, err
	}
	s.history.Push(s.snapshot("Calculate volume"))
	s.values.Volume = formatNumber(v)
	return v, nil
}

// SetGeometry replaces the part dimensions, e.g. after a drawing import.
func (s *Session) SetGeometry(g model.PartGeometry) {
	s.history.Push(s.snapshot("Import geometry"))
	s.values.Length = blankZero(g.Length)
	s.values.Width = blankZero(g.Width)
	s.values.Thickness = blankZero(g.Thickness)
	s.values.Diameter = blankZero(g.Diameter)
}

// Job parses the form into job parameters.
func (s *Session) Job() (model.JobParameters, error) {
	return s.values.Job(s.units, s.finishing)
}

// Calculate runs the estimate and keeps the quote for printing and export.
func (s *Session) Calculate() (model.Quote, error) {
	j, err := s.Job()
	if err != nil {
		return model.Quote{}, err
	}
	res, err := model.Calculate(j)
	if err != nil {
		return model.Quote{}, err
	}
	q := model.NewQuote(s.catalog, j, res)
	s.quote = &q
	return q, nil
}

// Comparison prices the current volume in every catalog material. It is
// empty when no volume has been entered.
func (s *Session) Comparison() []model.MaterialComparison {
	j, err := s.Job()
	if err != nil {
		return nil
	}
	rows, err := s.catalog.CompareMaterials(j.Material.Volume, s.units, j.Quantity)
	if err != nil {
		return nil
	}
	return rows
}

// SaveMaterialCosts persists a new price table and refreshes the current
// material price.
func (s *Session) SaveMaterialCosts(ctx context.Context, table model.MaterialCostTable) error {
	if err := project.SaveMaterialCosts(ctx, s.store, table); err != nil {
		return err
	}
	s.applyCosts(table)
	return nil
}

// ResetMaterialCosts drops saved prices in favour of the built-in table.
func (s *Session) ResetMaterialCosts(ctx context.Context) error {
	table, err := project.ResetMaterialCosts(ctx, s.store)
	if err != nil {
		return err
	}
	s.applyCosts(table)
	return nil
}

// ImportMaterialCosts reads a CSV or Excel price list and saves the result
// when at least one row was applied.
func (s *Session) ImportMaterialCosts(ctx context.Context, path string) (importer.ImportResult, error) {
	result := importer.Import(path, s.catalog, s.catalog.Costs)
	if len(result.Updated) == 0 {
		return result, nil
	}
	if err := s.SaveMaterialCosts(ctx, result.Costs); err != nil {
		return result, err
	}
	return result, nil
}

func (s *Session) applyCosts(table model.MaterialCostTable) {
	s.catalog = s.catalog.WithCosts(table)
	s.setCatalogCost()
	zap.S().Named("ui").Debugw("material costs applied", "materials", len(table))
}

// setCatalogCost rewrites only the price field for a named material.
func (s *Session) setCatalogCost() {
	if s.values.MaterialID == model.CustomMaterialID {
		return
	}
	if cost, ok := s.catalog.CostPerMass(s.values.MaterialID, s.units); ok {
		s.values.CostPerMass = formatNumber(cost)
	}
}

// RestoreBackup writes preferences, quote history and prices from a backup
// and only then switches the session over. The price table is checked
// before anything is written.
func (s *Session) RestoreBackup(ctx context.Context, b project.BackupData, configPath, quotesPath string) error {
	if err := b.MaterialCosts.Validate(); err != nil {
		return err
	}
	if err := project.SaveAppConfig(configPath, b.Config); err != nil {
		return fmt.Errorf("failed to restore preferences: %w", err)
	}
	if err := project.SaveQuotes(quotesPath, b.Quotes); err != nil {
		return fmt.Errorf("failed to restore quote history: %w", err)
	}
	if err := project.SaveMaterialCosts(ctx, s.store, b.MaterialCosts); err != nil {
		return err
	}

	s.config = b.Config
	s.catalog = s.config.ApplyFinishingCosts(s.catalog)
	s.applyCosts(b.MaterialCosts)
	s.finishing = s.finishing.Reprice(s.catalog.Finishing)
	return nil
}
