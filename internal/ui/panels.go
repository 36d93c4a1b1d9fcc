package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/MachCost/internal/model"
)

type formWidgets struct {
	machineHours, machineMinutes         *widget.Entry
	setupHours, setupMinutes             *widget.Entry
	programmingHours, programmingMinutes *widget.Entry
	includeProgramming                   *widget.Check

	machineRate, setupRate, programmingRate *widget.Entry

	quantity, setupCount, toolCost *widget.Entry
	markupEnabled                  *widget.Check
	markupPercent                  *widget.Entry
	finishingLabel                 *widget.Label

	units                        *widget.RadioGroup
	material                     *widget.Select
	volume, density, costPerMass *widget.Entry

	length, width, thickness, diameter *widget.Entry

	// labels whose text depends on the unit regime
	unitLabels []unitLabel
}

type unitLabel struct {
	label  *widget.Label
	format func(model.UnitSystem) string
}

type resultWidgets struct {
	costPerPiece *widget.Label
	totalLot     *widget.Label
	material     *widget.Label
	machineTime  *widget.Label
	batches      *widget.Label
	finishing    *widget.Label
	breakdown    *widget.Label

	leadAmount   *widget.Entry
	leadUnit     *widget.Select
	leadDelivery *widget.Label
}

func numberEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

func (a *App) withUnit(e fyne.CanvasObject, format func(model.UnitSystem) string) fyne.CanvasObject {
	l := widget.NewLabel("")
	a.form.unitLabels = append(a.form.unitLabels, unitLabel{label: l, format: format})
	return container.NewBorder(nil, nil, nil, l, e)
}

func timeRow(hours, minutes *widget.Entry) fyne.CanvasObject {
	return container.NewGridWithColumns(4,
		hours, widget.NewLabel("h"),
		minutes, widget.NewLabel("min"),
	)
}

func perHour(model.UnitSystem) string { return "$/h" }

// ─── Machining Panel ───────────────────────────────────────

func (a *App) buildMachiningPanel() fyne.CanvasObject {
	f := &a.form
	f.machineHours, f.machineMinutes = numberEntry("0"), numberEntry("0")
	f.setupHours, f.setupMinutes = numberEntry("0"), numberEntry("0")
	f.programmingHours, f.programmingMinutes = numberEntry("0"), numberEntry("0")
	f.includeProgramming = widget.NewCheck("Charge programming time", nil)
	f.machineRate = numberEntry("75")
	f.setupRate = numberEntry("60")
	f.programmingRate = numberEntry("65")
	f.quantity = numberEntry("1")
	f.setupCount = numberEntry("1")
	f.toolCost = numberEntry("0")
	f.markupEnabled = widget.NewCheck("Apply markup", nil)
	f.markupPercent = numberEntry("20")
	f.finishingLabel = widget.NewLabel("None")

	finishingBtn := widget.NewButton("Choose...", a.showFinishingDialog)

	form := widget.NewForm(
		widget.NewFormItem("Machine time / piece", timeRow(f.machineHours, f.machineMinutes)),
		widget.NewFormItem("Setup time / setup", timeRow(f.setupHours, f.setupMinutes)),
		widget.NewFormItem("Programming time", timeRow(f.programmingHours, f.programmingMinutes)),
		widget.NewFormItem("", f.includeProgramming),
		widget.NewFormItem("Machine rate", a.withUnit(f.machineRate, perHour)),
		widget.NewFormItem("Setup rate", a.withUnit(f.setupRate, perHour)),
		widget.NewFormItem("Programming rate", a.withUnit(f.programmingRate, perHour)),
		widget.NewFormItem("Quantity", f.quantity),
		widget.NewFormItem("Number of setups", f.setupCount),
		widget.NewFormItem("Tool cost (lot)", a.withUnit(f.toolCost, func(model.UnitSystem) string { return "$" })),
		widget.NewFormItem("", f.markupEnabled),
		widget.NewFormItem("Markup", a.withUnit(f.markupPercent, func(model.UnitSystem) string { return "%" })),
		widget.NewFormItem("Finishing", container.NewBorder(nil, nil, nil, finishingBtn, f.finishingLabel)),
	)
	return container.NewVScroll(container.NewPadded(form))
}

// ─── Material Panel ────────────────────────────────────────

func (a *App) materialOptions() (names []string, ids map[string]string) {
	cat := a.session.Catalog()
	ids = make(map[string]string, len(cat.Materials)+1)
	for _, m := range cat.Materials {
		names = append(names, m.Name)
		ids[m.Name] = m.ID
	}
	custom := cat.MaterialName(model.CustomMaterialID)
	names = append(names, custom)
	ids[custom] = model.CustomMaterialID
	return names, ids
}

func (a *App) buildMaterialPanel() fyne.CanvasObject {
	f := &a.form
	f.units = widget.NewRadioGroup([]string{model.UnitsMetric.String(), model.UnitsSAE.String()}, func(s string) {
		if a.syncing || s == "" {
			return
		}
		to := model.UnitsMetric
		if s == model.UnitsSAE.String() {
			to = model.UnitsSAE
		}
		a.switchUnits(to)
	})
	f.units.Horizontal = true
	f.units.Required = true

	names, ids := a.materialOptions()
	f.material = widget.NewSelect(names, func(name string) {
		if a.syncing {
			return
		}
		a.selectMaterial(ids[name])
	})

	f.volume = numberEntry("0")
	f.density = numberEntry("")
	f.costPerMass = numberEntry("")
	f.length = numberEntry("")
	f.width = numberEntry("")
	f.thickness = numberEntry("")
	f.diameter = numberEntry("")

	length := func(u model.UnitSystem) string { return u.LengthUnit() }
	material := widget.NewForm(
		widget.NewFormItem("Units", f.units),
		widget.NewFormItem("Material", f.material),
		widget.NewFormItem("Volume / piece", a.withUnit(f.volume, model.UnitSystem.VolumeUnit)),
		widget.NewFormItem("Density", a.withUnit(f.density, model.UnitSystem.DensityUnit)),
		widget.NewFormItem("Cost", a.withUnit(f.costPerMass, func(u model.UnitSystem) string { return "$/" + u.MassUnit() })),
	)
	geometry := widget.NewForm(
		widget.NewFormItem("Length", a.withUnit(f.length, length)),
		widget.NewFormItem("Width", a.withUnit(f.width, length)),
		widget.NewFormItem("Thickness", a.withUnit(f.thickness, length)),
		widget.NewFormItem("Diameter", a.withUnit(f.diameter, length)),
	)
	buttons := container.NewHBox(
		widget.NewButton("Calculate Volume", a.calculateVolume),
		widget.NewButton("Import DXF...", a.importGeometry),
		widget.NewButton("Material Costs...", a.showMaterialCostsDialog),
		widget.NewButton("Compare...", a.showComparisonDialog),
	)

	return container.NewVScroll(container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		material,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Part geometry", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Enter length, width and thickness for a block, or length and diameter for a round part."),
		geometry,
		buttons,
	)))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	r := &a.res
	big := fyne.TextStyle{Bold: true}
	r.costPerPiece = widget.NewLabelWithStyle("-", fyne.TextAlignLeading, big)
	r.totalLot = widget.NewLabelWithStyle("-", fyne.TextAlignLeading, big)
	r.material = widget.NewLabel("-")
	r.machineTime = widget.NewLabel("-")
	r.batches = widget.NewLabel("-")
	r.batches.Wrapping = fyne.TextWrapWord
	r.finishing = widget.NewLabel("-")
	r.breakdown = widget.NewLabel("")
	r.breakdown.TextStyle = fyne.TextStyle{Monospace: true}

	r.leadAmount = numberEntry("10")
	r.leadUnit = widget.NewSelect([]string{"days", "weeks", "months", "years"}, func(string) { a.updateLeadTime() })
	r.leadUnit.SetSelected("days")
	r.leadAmount.OnChanged = func(string) { a.updateLeadTime() }
	r.leadDelivery = widget.NewLabel("-")

	summary := widget.NewForm(
		widget.NewFormItem("Cost per piece", r.costPerPiece),
		widget.NewFormItem("Total lot cost", r.totalLot),
		widget.NewFormItem("Material cost", r.material),
		widget.NewFormItem("Total machine time", r.machineTime),
		widget.NewFormItem("Batches", r.batches),
		widget.NewFormItem("Finishing", r.finishing),
	)
	lead := widget.NewForm(
		widget.NewFormItem("Lead time", container.NewGridWithColumns(2, r.leadAmount, r.leadUnit)),
		widget.NewFormItem("Delivery", r.leadDelivery),
	)
	buttons := container.NewHBox(
		widget.NewButton("Print Quote", a.printQuote),
		widget.NewButton("Export PDF", func() { a.exportQuote("pdf") }),
		widget.NewButton("Export Excel", func() { a.exportQuote("xlsx") }),
	)

	return container.NewVScroll(container.NewPadded(container.NewVBox(
		summary,
		buttons,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Breakdown", fyne.TextAlignLeading, big),
		r.breakdown,
		widget.NewSeparator(),
		lead,
	)))
}

func (a *App) showResult(q model.Quote) {
	r := &a.res
	res := q.Result
	r.costPerPiece.SetText(model.FormatMoney(res.CostPerPiece))
	r.totalLot.SetText(model.FormatMoney(res.TotalLotCost))
	r.material.SetText(model.FormatMoney(res.MaterialCost))
	r.machineTime.SetText(model.FormatHours(res.TotalMachineTime))
	r.batches.SetText(model.FormatBatches(res.Batches))
	r.finishing.SetText(strings.Join(q.Finishing, ", "))
	r.breakdown.SetText(breakdownText(res.Breakdown))
	a.updateLeadTime()
}

func (a *App) clearResult() {
	if a.res.costPerPiece == nil {
		return
	}
	for _, l := range []*widget.Label{a.res.costPerPiece, a.res.totalLot, a.res.material, a.res.machineTime, a.res.batches, a.res.finishing} {
		l.SetText("-")
	}
	a.res.breakdown.SetText("")
}

func breakdownText(b model.CostBreakdown) string {
	var sb strings.Builder
	line := func(name string, v float64) {
		fmt.Fprintf(&sb, "%-24s %12s\n", name, model.FormatMoney(v))
	}
	line("Machine (lot)", b.MachineCost)
	line("Setup (lot)", b.SetupCost)
	line("Programming (lot)", b.ProgrammingCost)
	line("Material (lot)", b.MaterialCost)
	line("Finishing / piece", b.FinishingPerPiece)
	line("Tooling / piece", b.ToolPerPiece)
	line("Base / piece", b.BasePerPiece)
	fmt.Fprintf(&sb, "%-24s %12s", "Markup factor", strconv.FormatFloat(b.MarkupFactor, 'f', 2, 64))
	return sb.String()
}

func (a *App) updateLeadTime() {
	r := &a.res
	if r.leadDelivery == nil || r.leadUnit == nil {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.leadAmount.Text))
	if err != nil {
		r.leadDelivery.SetText("-")
		return
	}
	unit, err := model.ParseLeadTimeUnit(r.leadUnit.Selected)
	if err != nil {
		r.leadDelivery.SetText("-")
		return
	}
	d, err := model.AddLeadTime(time.Now(), n, unit)
	if err != nil {
		r.leadDelivery.SetText("-")
		return
	}
	r.leadDelivery.SetText(d.Format("Mon, 2 Jan 2006"))
}

// ─── Sync ──────────────────────────────────────────────────

// pull copies the widget text into the session.
func (a *App) pull() {
	f := &a.form
	if f.machineHours == nil || f.volume == nil {
		return
	}
	v := a.session.Values()
	v.MachineHours, v.MachineMinutes = f.machineHours.Text, f.machineMinutes.Text
	v.SetupHours, v.SetupMinutes = f.setupHours.Text, f.setupMinutes.Text
	v.ProgrammingHours, v.ProgrammingMinutes = f.programmingHours.Text, f.programmingMinutes.Text
	v.IncludeProgramming = f.includeProgramming.Checked
	v.MachineRate = f.machineRate.Text
	v.SetupRate = f.setupRate.Text
	v.ProgrammingRate = f.programmingRate.Text
	v.Quantity = f.quantity.Text
	v.SetupCount = f.setupCount.Text
	v.ToolCost = f.toolCost.Text
	v.MarkupEnabled = f.markupEnabled.Checked
	v.MarkupPercent = f.markupPercent.Text
	v.Volume = f.volume.Text
	v.Density = f.density.Text
	v.CostPerMass = f.costPerMass.Text
	v.Length, v.Width = f.length.Text, f.width.Text
	v.Thickness, v.Diameter = f.thickness.Text, f.diameter.Text
	a.session.SetValues(v)
}

// push fills the widgets from the session.
func (a *App) push() {
	f := &a.form
	if f.machineHours == nil || f.volume == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()

	v := a.session.Values()
	f.machineHours.SetText(v.MachineHours)
	f.machineMinutes.SetText(v.MachineMinutes)
	f.setupHours.SetText(v.SetupHours)
	f.setupMinutes.SetText(v.SetupMinutes)
	f.programmingHours.SetText(v.ProgrammingHours)
	f.programmingMinutes.SetText(v.ProgrammingMinutes)
	f.includeProgramming.SetChecked(v.IncludeProgramming)
	f.machineRate.SetText(v.MachineRate)
	f.setupRate.SetText(v.SetupRate)
	f.programmingRate.SetText(v.ProgrammingRate)
	f.quantity.SetText(v.Quantity)
	f.setupCount.SetText(v.SetupCount)
	f.toolCost.SetText(v.ToolCost)
	f.markupEnabled.SetChecked(v.MarkupEnabled)
	f.markupPercent.SetText(v.MarkupPercent)
	f.finishingLabel.SetText(a.session.Finishing().Summary())

	units := a.session.Units()
	f.units.SetSelected(units.String())
	f.material.SetSelected(a.session.Catalog().MaterialName(v.MaterialID))
	f.volume.SetText(v.Volume)
	f.density.SetText(v.Density)
	f.costPerMass.SetText(v.CostPerMass)
	f.length.SetText(v.Length)
	f.width.SetText(v.Width)
	f.thickness.SetText(v.Thickness)
	f.diameter.SetText(v.Diameter)

	for _, ul := range f.unitLabels {
		ul.label.SetText(ul.format(units))
	}
}
