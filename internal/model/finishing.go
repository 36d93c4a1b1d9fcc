package model

import (
	"encoding/json"
	"fmt"
)

// NoFinishingID is the catalog entry meaning "no finishing process".
const NoFinishingID = "none"

// FinishingProcess is a post-machining treatment charged per piece.
type FinishingProcess struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
}

// FinishingOption is a catalog entry together with its selection state, as
// shown in the finishing dialog.
type FinishingOption struct {
	FinishingProcess
	Selected bool `json:"selected"`
}

// FinishingCatalog lists the available processes, "none" first.
type FinishingCatalog []FinishingProcess

// DefaultFinishingCatalog returns the built-in processes with typical per-piece prices.
func DefaultFinishingCatalog() FinishingCatalog {
	return FinishingCatalog{
		{ID: NoFinishingID, Name: "None", UnitCost: 0},
		{ID: "anodizing", Name: "Anodizing", UnitCost: 5},
		{ID: "hard-anodizing", Name: "Hard Anodizing", UnitCost: 9},
		{ID: "powder-coating", Name: "Powder Coating", UnitCost: 8},
		{ID: "bead-blasting", Name: "Bead Blasting", UnitCost: 3},
		{ID: "polishing", Name: "Polishing", UnitCost: 4},
		{ID: "black-oxide", Name: "Black Oxide", UnitCost: 3},
		{ID: "passivation", Name: "Passivation", UnitCost: 2.5},
		{ID: "zinc-plating", Name: "Zinc Plating", UnitCost: 4},
		{ID: "heat-treatment", Name: "Heat Treatment", UnitCost: 6},
	}
}

// Find returns the process with the given ID.
func (c FinishingCatalog) Find(id string) (FinishingProcess, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return FinishingProcess{}, false
}

// WithCost returns a copy of the catalog with the unit cost of id replaced.
func (c FinishingCatalog) WithCost(id string, unitCost float64) (FinishingCatalog, error) {
	if unitCost < 0 {
		return nil, &ValidationError{Field: id, Message: "finishing cost cannot be negative"}
	}
	out := make(FinishingCatalog, len(c))
	copy(out, c)
	for i := range out {
		if out[i].ID == id {
			out[i].UnitCost = unitCost
			return out, nil
		}
	}
	return nil, &ValidationError{Field: "finishing", Message: fmt.Sprintf("unknown process %q", id)}
}

// Options renders the catalog with the selection state of sel.
func (c FinishingCatalog) Options(sel FinishingSelection) []FinishingOption {
	opts := make([]FinishingOption, len(c))
	for i, p := range c {
		opts[i] = FinishingOption{FinishingProcess: p, Selected: sel.IsSelected(p.ID)}
	}
	return opts
}

// Selection builds a selection from catalog IDs. Unknown IDs are an error.
func (c FinishingCatalog) Selection(ids ...string) (FinishingSelection, error) {
	sel := NoFinishing()
	for _, id := range ids {
		p, ok := c.Find(id)
		if !ok {
			return NoFinishing(), &ValidationError{Field: "finishing", Message: fmt.Sprintf("unknown process %q", id)}
		}
		sel = sel.Select(p)
	}
	return sel, nil
}

// FinishingSelection is either NoFinishing (the zero value) or a non-empty
// set of named processes. "none" never coexists with a named process.
type FinishingSelection struct {
	processes []FinishingProcess
}

// NoFinishing returns the selection with only "none" chosen.
func NoFinishing() FinishingSelection {
	return FinishingSelection{}
}

// Select adds p. Selecting "none" clears every named process.
func (s FinishingSelection) Select(p FinishingProcess) FinishingSelection {
	if p.ID == NoFinishingID {
		return NoFinishing()
	}
	out := make([]FinishingProcess, 0, len(s.processes)+1)
	for _, existing := range s.processes {
		if existing.ID == p.ID {
			continue
		}
		out = append(out, existing)
	}
	out = append(out, p)
	return FinishingSelection{processes: out}
}

// Deselect removes id. Removing the last named process falls back to
// NoFinishing; deselecting "none" on its own is a no-op.
func (s FinishingSelection) Deselect(id string) FinishingSelection {
	if id == NoFinishingID {
		return s
	}
	var out []FinishingProcess
	for _, p := range s.processes {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return FinishingSelection{processes: out}
}

// Toggle selects p when checked is true and deselects it otherwise.
func (s FinishingSelection) Toggle(p FinishingProcess, checked bool) FinishingSelection {
	if checked {
		return s.Select(p)
	}
	return s.Deselect(p.ID)
}

// IsNone reports whether no named process is selected.
func (s FinishingSelection) IsNone() bool {
	return len(s.processes) == 0
}

// IsSelected reports the checkbox state of id.
func (s FinishingSelection) IsSelected(id string) bool {
	if id == NoFinishingID {
		return s.IsNone()
	}
	for _, p := range s.processes {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Processes returns the selected named processes in selection order.
func (s FinishingSelection) Processes() []FinishingProcess {
	out := make([]FinishingProcess, len(s.processes))
	copy(out, s.processes)
	return out
}

// Names returns the display names of the selected processes, or ["None"].
func (s FinishingSelection) Names() []string {
	if s.IsNone() {
		return []string{"None"}
	}
	names := make([]string, len(s.processes))
	for i, p := range s.processes {
		names[i] = p.Name
	}
	return names
}

// CostPerPiece sums the unit cost of every selected process.
func (s FinishingSelection) CostPerPiece() float64 {
	var total float64
	for _, p := range s.processes {
		total += p.UnitCost
	}
	return total
}

// Summary is the short text shown next to the finishing button.
func (s FinishingSelection) Summary() string {
	switch len(s.processes) {
	case 0:
		return "None"
	case 1:
		return s.processes[0].Name
	default:
		return fmt.Sprintf("%d processes selected", len(s.processes))
	}
}

// Reprice refreshes unit costs from the catalog, dropping processes it no longer lists.
func (s FinishingSelection) Reprice(c FinishingCatalog) FinishingSelection {
	var out []FinishingProcess
	for _, p := range s.processes {
		if fresh, ok := c.Find(p.ID); ok {
			out = append(out, fresh)
		}
	}
	return FinishingSelection{processes: out}
}

// MarshalJSON encodes the selection as the list of selected processes;
// NoFinishing encodes as an empty list.
func (s FinishingSelection) MarshalJSON() ([]byte, error) {
	if s.processes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.processes)
}

// UnmarshalJSON decodes a list of processes, applying the same exclusion
// rules as Select.
func (s *FinishingSelection) UnmarshalJSON(data []byte) error {
	var ps []FinishingProcess
	if err := json.Unmarshal(data, &ps); err != nil {
		return err
	}
	sel := NoFinishing()
	for _, p := range ps {
		if p.ID == NoFinishingID {
			continue
		}
		sel = sel.Select(p)
	}
	*s = sel
	return nil
}
