package model

import (
	"encoding/json"
	"testing"
)

func TestFinishingSelectionMutualExclusion(t *testing.T) {
	cat := DefaultFinishingCatalog()
	anod, _ := cat.Find("anodizing")
	polish, _ := cat.Find("polishing")
	none, _ := cat.Find(NoFinishingID)

	sel := NoFinishing()
	if !sel.IsSelected(NoFinishingID) {
		t.Fatal("new selection should have none selected")
	}

	sel = sel.Select(anod)
	if sel.IsSelected(NoFinishingID) {
		t.Error("selecting a process should deselect none")
	}
	sel = sel.Select(polish)
	if len(sel.Processes()) != 2 {
		t.Errorf("expected 2 processes, got %d", len(sel.Processes()))
	}

	sel = sel.Select(none)
	if !sel.IsNone() || sel.IsSelected("anodizing") || sel.IsSelected("polishing") {
		t.Error("selecting none should clear all processes")
	}
}

func TestFinishingSelectionExactlyOneState(t *testing.T) {
	cat := DefaultFinishingCatalog()
	sel := NoFinishing()
	for i, p := range cat {
		sel = sel.Toggle(p, i%2 == 0)
		opts := cat.Options(sel)
		noneChecked := opts[0].Selected
		named := 0
		for _, o := range opts[1:] {
			if o.Selected {
				named++
			}
		}
		if noneChecked == (named > 0) {
			t.Fatalf("step %d: none=%v named=%d", i, noneChecked, named)
		}
	}
}

func TestFinishingDeselectLastFallsBackToNone(t *testing.T) {
	cat := DefaultFinishingCatalog()
	anod, _ := cat.Find("anodizing")
	sel := NoFinishing().Select(anod).Deselect("anodizing")
	if !sel.IsNone() {
		t.Error("expected none after removing the last process")
	}
	if got := NoFinishing().Deselect(NoFinishingID); !got.IsNone() {
		t.Error("deselecting none alone should leave none selected")
	}
}

func TestFinishingSelectDuplicate(t *testing.T) {
	cat := DefaultFinishingCatalog()
	anod, _ := cat.Find("anodizing")
	sel := NoFinishing().Select(anod).Select(anod)
	if len(sel.Processes()) != 1 {
		t.Errorf("expected 1 process, got %d", len(sel.Processes()))
	}
}

func TestFinishingCostAndSummary(t *testing.T) {
	cat := DefaultFinishingCatalog()
	sel, err := cat.Selection("anodizing", "bead-blasting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.CostPerPiece() != 8 {
		t.Errorf("expected 8, got %f", sel.CostPerPiece())
	}
	if sel.Summary() != "2 processes selected" {
		t.Errorf("unexpected summary %q", sel.Summary())
	}
	single, _ := cat.Selection("polishing")
	if single.Summary() != "Polishing" {
		t.Errorf("unexpected summary %q", single.Summary())
	}
	if NoFinishing().Summary() != "None" {
		t.Errorf("unexpected summary %q", NoFinishing().Summary())
	}
	if _, err := cat.Selection("gold-leaf"); err == nil {
		t.Error("expected error for unknown process")
	}
}

func TestFinishingCatalogWithCost(t *testing.T) {
	cat := DefaultFinishingCatalog()
	updated, err := cat.WithCost("anodizing", 7.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := updated.Find("anodizing")
	if p.UnitCost != 7.5 {
		t.Errorf("expected 7.5, got %f", p.UnitCost)
	}
	orig, _ := cat.Find("anodizing")
	if orig.UnitCost != 5 {
		t.Error("WithCost should not modify the original catalog")
	}
	if _, err := cat.WithCost("anodizing", -1); err == nil {
		t.Error("expected error for negative cost")
	}

	sel, _ := cat.Selection("anodizing")
	if got := sel.Reprice(updated).CostPerPiece(); got != 7.5 {
		t.Errorf("expected repriced 7.5, got %f", got)
	}
}

func TestFinishingSelectionJSON(t *testing.T) {
	cat := DefaultFinishingCatalog()
	sel, _ := cat.Selection("anodizing", "polishing")

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back FinishingSelection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Summary() != "2 processes selected" {
		t.Errorf("unexpected selection after decode: %v", back.Names())
	}

	var mixed FinishingSelection
	if err := json.Unmarshal([]byte(`[{"id":"none","name":"None"},{"id":"polishing","name":"Polishing","unit_cost":4}]`), &mixed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if mixed.IsSelected(NoFinishingID) {
		t.Error("none must not coexist with a named process")
	}

	empty, _ := json.Marshal(NoFinishing())
	if string(empty) != "[]" {
		t.Errorf("expected [], got %s", empty)
	}
}
