package model

import "testing"

func testQuote(t *testing.T) Quote {
	t.Helper()
	cat := DefaultCatalog()
	j := baseJob()
	j.SetupCount = 3
	j.Finishing, _ = cat.Finishing.Selection("anodizing", "polishing")
	res, err := Calculate(j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewQuote(cat, j, res)
}

func TestNewQuote(t *testing.T) {
	q := testQuote(t)
	if q.ID == "" {
		t.Error("expected non-empty ID")
	}
	if q.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if q.MaterialName != "Aluminum" {
		t.Errorf("expected Aluminum, got %q", q.MaterialName)
	}
	if len(q.Finishing) != 2 || q.Finishing[0] != "Anodizing" {
		t.Errorf("unexpected finishing names %v", q.Finishing)
	}
	if q.SetupCount != 3 || len(q.Result.Batches) != 3 {
		t.Errorf("expected 3 setups and batches, got %d / %v", q.SetupCount, q.Result.Batches)
	}
}

func TestQuoteStore(t *testing.T) {
	qs := NewQuoteStore()
	a, b, c := testQuote(t), testQuote(t), testQuote(t)
	a.ID, b.ID, c.ID = "a", "b", "c"
	qs.Add(a)
	qs.Add(b)
	qs.Add(c)

	latest := qs.Latest(2)
	if len(latest) != 2 || latest[0].ID != "c" || latest[1].ID != "b" {
		t.Errorf("unexpected latest %v", latest)
	}
	if qs.FindByID("b") == nil {
		t.Error("expected to find b")
	}
	if !qs.Remove("b") {
		t.Error("expected remove to succeed")
	}
	if qs.Remove("b") {
		t.Error("second remove should fail")
	}
	if qs.FindByID("b") != nil {
		t.Error("b should be gone")
	}

	qs.Trim(1)
	if len(qs.Quotes) != 1 || qs.Quotes[0].ID != "c" {
		t.Errorf("expected only c after trim, got %v", qs.Quotes)
	}
}
