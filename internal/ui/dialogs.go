package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

// showFinishingDialog lists every process as a checkbox. Checking "None"
// clears the others; unchecking the last process checks "None" again.
func (a *App) showFinishingDialog() {
	cat := a.session.Catalog()
	sel := a.session.Finishing()
	checks := make(map[string]*widget.Check, len(cat.Finishing))
	total := widget.NewLabel("")

	updating := false
	refresh := func() {
		updating = true
		defer func() { updating = false }()
		for _, opt := range cat.Finishing.Options(sel) {
			checks[opt.ID].SetChecked(opt.Selected)
		}
		total.SetText("Per piece: " + model.FormatMoney(sel.CostPerPiece()))
	}

	list := container.NewVBox()
	for _, p := range cat.Finishing {
		label := p.Name
		if p.ID != model.NoFinishingID {
			label = fmt.Sprintf("%s (%s / piece)", p.Name, model.FormatMoney(p.UnitCost))
		}
		checks[p.ID] = widget.NewCheck(label, func(on bool) {
			if updating {
				return
			}
			sel = sel.Toggle(p, on)
			refresh()
		})
		list.Add(checks[p.ID])
	}
	refresh()

	content := container.NewBorder(nil, total, nil, nil, container.NewVScroll(list))
	d := dialog.NewCustomConfirm("Finishing Processes", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		a.pull()
		a.session.SetFinishing(sel)
		a.push()
		a.clearResult()
	}, a.window)
	d.Resize(fyne.NewSize(380, 460))
	d.Show()
}

// showMaterialCostsDialog edits the $/kg price of every catalog material.
func (a *App) showMaterialCostsDialog() {
	cat := a.session.Catalog()
	entries := make(map[string]*widget.Entry, len(cat.Materials))
	items := make([]*widget.FormItem, 0, len(cat.Materials))
	fill := func(table model.MaterialCostTable) {
		for id, e := range entries {
			e.SetText(strconv.FormatFloat(table[id], 'f', -1, 64))
		}
	}
	for _, m := range cat.Materials {
		e := numberEntry(strconv.FormatFloat(m.CostPerKgDefault, 'f', -1, 64))
		entries[m.ID] = e
		items = append(items, widget.NewFormItem(m.Name+" ($/kg)", e))
	}
	fill(cat.Costs)

	var d *dialog.CustomDialog
	save := widget.NewButton("Save Changes", func() {
		table := a.session.Catalog().Costs.Clone()
		for id, e := range entries {
			v, err := strconv.ParseFloat(e.Text, 64)
			if err == nil {
				err = table.Set(id, v)
			}
			if err != nil {
				dialog.ShowInformation("Check your input",
					fmt.Sprintf("%s: enter a positive price", cat.MaterialName(id)), a.window)
				return
			}
		}
		a.pull()
		if err := a.session.SaveMaterialCosts(context.Background(), table); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.push()
		d.Hide()
	})
	save.Importance = widget.HighImportance
	reset := widget.NewButton("Reset to Defaults", func() {
		a.pull()
		if err := a.session.ResetMaterialCosts(context.Background()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.push()
		fill(a.session.Catalog().Costs)
	})
	cancel := widget.NewButton("Cancel", func() { d.Hide() })

	content := container.NewBorder(nil, container.NewHBox(reset, cancel, save), nil, nil,
		container.NewVScroll(widget.NewForm(items...)))
	d = dialog.NewCustomWithoutButtons("Material Costs", content, a.window)
	d.Resize(fyne.NewSize(420, 520))
	d.Show()
}

// showComparisonDialog prices the current volume in every material.
func (a *App) showComparisonDialog() {
	a.pull()
	j, err := a.session.Job()
	if err != nil {
		a.showInputError(err)
		return
	}
	units := a.session.Units()
	rows, err := a.session.Catalog().CompareMaterials(j.Material.Volume, units, j.Quantity)
	if err != nil {
		a.showInputError(err)
		return
	}
	best, _ := model.CheapestMaterial(rows)

	table := widget.NewTable(
		func() (int, int) { return len(rows) + 1, 4 },
		func() fyne.CanvasObject { return widget.NewLabel("Plastic (Nylon) xx") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			l := o.(*widget.Label)
			if id.Row == 0 {
				l.TextStyle = fyne.TextStyle{Bold: true}
				l.SetText([]string{"Material", "Weight (" + units.MassUnit() + ")", "Per piece", "Lot"}[id.Col])
				return
			}
			r := rows[id.Row-1]
			l.TextStyle = fyne.TextStyle{Bold: r.MaterialID == best.MaterialID}
			switch id.Col {
			case 0:
				l.SetText(r.Name)
			case 1:
				l.SetText(strconv.FormatFloat(r.WeightPerPiece, 'f', 3, 64))
			case 2:
				l.SetText(model.FormatMoney(r.CostPerPiece))
			case 3:
				l.SetText(model.FormatMoney(r.TotalCost))
			}
		},
	)
	table.SetColumnWidth(0, 160)
	footer := widget.NewLabel(fmt.Sprintf("Cheapest: %s at %s for %d pcs", best.Name, model.FormatMoney(best.TotalCost), j.Quantity))
	d := dialog.NewCustom("Compare Materials", "Close", container.NewBorder(nil, footer, nil, nil, table), a.window)
	d.Resize(fyne.NewSize(560, 420))
	d.Show()
}

// showConsentDialog records whether optional storage may be used.
func (a *App) showConsentDialog() {
	msg := widget.NewLabel("MachCost stores your material prices and preferences on this computer.\n" +
		"Allow optional features such as sponsored content as well?")
	msg.Wrapping = fyne.TextWrapWord
	d := dialog.NewCustomConfirm("Privacy Settings", "Accept All", "Required Only", msg, func(all bool) {
		level := model.ConsentRequired
		if all {
			level = model.ConsentAll
		}
		if _, err := project.SaveConsent(context.Background(), a.session.store, level, time.Now()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Infow("consent recorded", "level", level)
	}, a.window)
	d.Resize(fyne.NewSize(420, 200))
	d.Show()
}
