package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/export"
	"github.com/piwi3910/MachCost/internal/importer"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

// App holds the window, the estimate session and the widgets bound to it.
type App struct {
	app        fyne.App
	window     fyne.Window
	session    *Session
	configPath string
	quotesPath string
	log        *zap.SugaredLogger

	tabs *container.AppTabs
	form formWidgets
	res  resultWidgets

	// set while widgets are being filled from the session
	syncing bool
}

// Options configures NewApp. Empty paths fall back to ~/.machcost.
type Options struct {
	ConfigPath string
	QuotesPath string
}

func NewApp(app fyne.App, window fyne.Window, opts Options) *App {
	if opts.ConfigPath == "" {
		opts.ConfigPath = project.DefaultConfigPath()
	}
	if opts.QuotesPath == "" {
		opts.QuotesPath = project.DefaultQuotesPath()
	}
	log := zap.S().Named("ui")
	cfg, err := project.LoadAppConfig(opts.ConfigPath)
	if err != nil {
		log.Warnw("could not read preferences, using defaults", "path", opts.ConfigPath, "error", err)
		cfg = model.DefaultAppConfig()
	}
	return &App{
		app:        app,
		window:     window,
		session:    NewSession(context.Background(), NewPreferencesStore(app.Preferences()), cfg),
		configPath: opts.ConfigPath,
		quotesPath: opts.QuotesPath,
		log:        log,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Estimate", func() {
			a.pull()
			a.session.Reset()
			a.push()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Material Prices...", a.importPrices),
		fyne.NewMenuItem("Import Part Geometry (DXF)...", a.importGeometry),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Print Quote...", a.printQuote),
		fyne.NewMenuItem("Export Quote as PDF...", func() { a.exportQuote("pdf") }),
		fyne.NewMenuItem("Export Quote as Excel...", func() { a.exportQuote("xlsx") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export All Data...", a.exportAllData),
		fyne.NewMenuItem("Import All Data...", a.importAllData),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Form", a.reset),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", a.calculate),
		fyne.NewMenuItem("Material Costs...", a.showMaterialCostsDialog),
		fyne.NewMenuItem("Compare Materials...", a.showComparisonDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Privacy Settings...", a.showConsentDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About MachCost",
		"MachCost, CNC machining cost estimator\n\n"+
			"Prices machine, setup and programming time, material,\n"+
			"finishing and tooling into a per-piece and lot quote.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	machiningTab := container.NewTabItem("Machining", a.buildMachiningPanel())
	materialTab := container.NewTabItem("Material", a.buildMaterialPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(machiningTab, materialTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.push()

	actions := container.NewHBox(
		widget.NewButton("Calculate", a.calculate),
		widget.NewButton("Reset", a.reset),
		widget.NewButton("Undo", a.undo),
	)
	return container.NewBorder(nil, container.NewPadded(actions), nil, nil, a.tabs)
}

// Start asks for a privacy decision when none has been recorded yet.
func (a *App) Start() {
	_, decided, err := project.LoadConsent(context.Background(), a.session.store)
	if err != nil {
		a.log.Warnw("reading consent failed", "error", err)
	}
	if !decided {
		a.showConsentDialog()
	}
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) calculate() {
	a.pull()
	q, err := a.session.Calculate()
	if err != nil {
		a.showInputError(err)
		return
	}
	a.showResult(q)
	a.tabs.SelectIndex(2)
}

func (a *App) reset() {
	a.pull()
	a.session.Reset()
	a.push()
	a.clearResult()
}

func (a *App) undo() {
	a.pull()
	if a.session.Undo() {
		a.push()
		a.clearResult()
	}
}

func (a *App) redo() {
	a.pull()
	if a.session.Redo() {
		a.push()
		a.clearResult()
	}
}

func (a *App) switchUnits(to model.UnitSystem) {
	a.pull()
	err := a.session.SwitchUnits(to)
	a.push() // puts the radio back on failure
	if err != nil {
		a.showInputError(err)
		return
	}
	a.clearResult()
}

func (a *App) selectMaterial(id string) {
	a.pull()
	a.session.SelectMaterial(id)
	a.push()
}

func (a *App) calculateVolume() {
	a.pull()
	if _, err := a.session.ApplyGeometry(); err != nil {
		a.showInputError(err)
		return
	}
	a.push()
}

// showInputError shows validation problems as a plain message and anything
// else as an error.
func (a *App) showInputError(err error) {
	var verr *model.ValidationError
	var gerr *model.InvalidGeometryError
	if errors.As(err, &verr) || errors.As(err, &gerr) {
		dialog.ShowInformation("Check your input", err.Error(), a.window)
		return
	}
	dialog.ShowError(err, a.window)
}

// lastQuote returns the current quote, calculating first if needed.
func (a *App) lastQuote() (model.Quote, bool) {
	if q, ok := a.session.LastQuote(); ok {
		return q, true
	}
	a.pull()
	q, err := a.session.Calculate()
	if err != nil {
		a.showInputError(err)
		return model.Quote{}, false
	}
	a.showResult(q)
	return q, true
}

func (a *App) saveQuote(q model.Quote) {
	if err := project.AppendQuote(a.quotesPath, q, a.session.Config().MaxSavedQuotes); err != nil {
		a.log.Warnw("saving quote history failed", "path", a.quotesPath, "error", err)
	}
}

func (a *App) printQuote() {
	q, ok := a.lastQuote()
	if !ok {
		return
	}
	path, err := export.OpenPrintPreview(os.TempDir(), q, func(path string) error {
		return a.app.OpenURL(&url.URL{Scheme: "file", Path: path})
	})
	switch {
	case errors.Is(err, export.ErrPrintBlocked):
		dialog.ShowInformation("Print Quote",
			fmt.Sprintf("The quote could not be opened automatically.\nOpen %s in your browser to print it.", path), a.window)
	case err != nil:
		dialog.ShowError(err, a.window)
		return
	}
	a.saveQuote(q)
}

func (a *App) exportQuote(format string) {
	q, ok := a.lastQuote()
	if !ok {
		return
	}
	comparison := a.session.Comparison()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if format == "pdf" {
			err = export.WriteQuotePDF(writer, q)
		} else {
			err = export.WriteQuoteXLSX(writer, q, comparison)
		}
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.saveQuote(q)
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Quote saved to %s", writer.URI().Path()), a.window)
	}, a.window)
	d.SetFileName(export.FileName(q, format))
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importPrices() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		a.pull()
		result, err := a.session.ImportMaterialCosts(context.Background(), reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.push()
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		a.log.Infow("import warnings", "warnings", result.Warnings)
	}
	if len(result.Updated) > 0 {
		msg := fmt.Sprintf("Updated prices for %d materials.", len(result.Updated))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) importGeometry() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		a.pull()
		depth := model.ParseDimension(a.session.Values().Thickness)
		result := importer.ImportGeometryDXF(reader.URI().Path(), depth)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		a.session.SetGeometry(result.Geometry)
		a.push()
		if len(result.Warnings) > 0 {
			dialog.ShowInformation("Geometry Imported", strings.Join(result.Warnings, "\n"), a.window)
		}
		a.tabs.SelectIndex(1)
	}, a.window)
}

func (a *App) exportAllData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		quotes, err := project.LoadQuotes(a.quotesPath)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		cat := a.session.Catalog()
		if err := project.ExportAllData(writer.URI().Path(), a.session.Config(), cat.Costs, quotes); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Data saved to %s", writer.URI().Path()), a.window)
	}, a.window)
	d.SetFileName("machcost-backup.json")
	d.Show()
}

func (a *App) importAllData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pull()
		if err := a.session.RestoreBackup(context.Background(), backup, a.configPath, a.quotesPath); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.push()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Restored preferences, prices and %d quotes.", len(backup.Quotes.Quotes)), a.window)
	}, a.window)
}
