package ui

import (
	"testing"

	"github.com/piwi3910/MachCost/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(FormValues{Quantity: "1"}, model.UnitsMetric, model.NoFinishing(), "initial"))
	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "initial" {
		t.Errorf("expected undo label 'initial', got %q", h.UndoLabel())
	}

	current := MakeSnapshot(FormValues{Quantity: "10"}, model.UnitsSAE, model.NoFinishing(), "current")
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Values.Quantity != "1" {
		t.Errorf("expected quantity 1 after undo, got %q", restored.Values.Quantity)
	}
	if restored.Units != model.UnitsMetric {
		t.Errorf("expected metric after undo, got %s", restored.Units)
	}
	if !h.CanRedo() {
		t.Error("undo should make redo available")
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(FormValues{Quantity: "1"}, model.UnitsMetric, model.NoFinishing(), "one"))
	h.Push(MakeSnapshot(FormValues{Quantity: "2"}, model.UnitsMetric, model.NoFinishing(), "two"))

	current := MakeSnapshot(FormValues{Quantity: "3"}, model.UnitsMetric, model.NoFinishing(), "")
	s, ok := h.Undo(current)
	if !ok || s.Values.Quantity != "2" {
		t.Fatalf("expected quantity 2, got %q (ok=%v)", s.Values.Quantity, ok)
	}
	s, ok = h.Undo(s)
	if !ok || s.Values.Quantity != "1" {
		t.Fatalf("expected quantity 1, got %q (ok=%v)", s.Values.Quantity, ok)
	}
	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}

	s, ok = h.Redo(s)
	if !ok || s.Values.Quantity != "2" {
		t.Fatalf("expected redo to quantity 2, got %q (ok=%v)", s.Values.Quantity, ok)
	}
	s, ok = h.Redo(s)
	if !ok || s.Values.Quantity != "3" {
		t.Fatalf("expected redo to quantity 3, got %q (ok=%v)", s.Values.Quantity, ok)
	}
	if h.CanRedo() {
		t.Error("redo stack should be empty")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(FormValues{}, model.UnitsMetric, model.NoFinishing(), "a"))
	h.Undo(MakeSnapshot(FormValues{}, model.UnitsMetric, model.NoFinishing(), "b"))
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	h.Push(MakeSnapshot(FormValues{}, model.UnitsMetric, model.NoFinishing(), "c"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestEmptyUndoRedo(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Error("redo on empty history should fail")
	}
}

func TestMaxDepth(t *testing.T) {
	h := NewHistory()
	h.maxDepth = 3
	for _, q := range []string{"1", "2", "3", "4", "5"} {
		h.Push(MakeSnapshot(FormValues{Quantity: q}, model.UnitsMetric, model.NoFinishing(), q))
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(h.undoStack))
	}
	if h.undoStack[0].Values.Quantity != "3" {
		t.Errorf("oldest snapshot should be 3, got %q", h.undoStack[0].Values.Quantity)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(FormValues{}, model.UnitsMetric, model.NoFinishing(), "a"))
	h.Undo(Snapshot{})
	h.Push(MakeSnapshot(FormValues{}, model.UnitsMetric, model.NoFinishing(), "b"))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}
