package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/store"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) { return "", errors.New("offline") }
func (failingStore) Set(context.Context, string, string) error    { return errors.New("offline") }
func (failingStore) Delete(context.Context, string) error         { return errors.New("offline") }

func TestLoadMaterialCostsDefaultsWhenAbsent(t *testing.T) {
	got := LoadMaterialCosts(context.Background(), store.NewMemoryStore())
	if got["aluminum"] != 4.5 || len(got) != 9 {
		t.Errorf("expected defaults, got %v", got)
	}
}

func TestSaveAndLoadMaterialCosts(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	table := model.DefaultMaterialCostTable()
	_ = table.Set("copper", 11.25)
	if err := SaveMaterialCosts(ctx, s, table); err != nil {
		t.Fatalf("SaveMaterialCosts failed: %v", err)
	}

	got := LoadMaterialCosts(ctx, s)
	if got["copper"] != 11.25 {
		t.Errorf("expected copper=11.25, got %f", got["copper"])
	}
}

func TestLoadMaterialCostsMalformed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, MaterialCostsKey, "{{{")

	got := LoadMaterialCosts(ctx, s)
	if got["steel"] != 2.5 {
		t.Errorf("expected defaults for malformed entry, got %v", got)
	}
}

func TestLoadMaterialCostsPartialEntry(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, MaterialCostsKey, `{"steel": 3.5, "brass": -1, "gold": 60}`)

	got := LoadMaterialCosts(ctx, s)
	if got["steel"] != 3.5 || got["brass"] != 8.0 {
		t.Errorf("unexpected merge result %v", got)
	}
	if _, ok := got["gold"]; ok {
		t.Error("unknown material should be dropped")
	}
}

func TestLoadMaterialCostsStoreError(t *testing.T) {
	got := LoadMaterialCosts(context.Background(), failingStore{})
	if len(got) != 9 {
		t.Errorf("expected defaults on store error, got %v", got)
	}
}

func TestSaveMaterialCostsRejectsInvalid(t *testing.T) {
	err := SaveMaterialCosts(context.Background(), store.NewMemoryStore(), model.MaterialCostTable{"steel": 0})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestResetMaterialCosts(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, MaterialCostsKey, `{"steel": 3.5}`)

	got, err := ResetMaterialCosts(ctx, s)
	if err != nil {
		t.Fatalf("ResetMaterialCosts failed: %v", err)
	}
	if got["steel"] != 2.5 {
		t.Errorf("expected default steel, got %f", got["steel"])
	}
	if _, err := s.Get(ctx, MaterialCostsKey); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected key removed, got %v", err)
	}
}

func TestSaveAndLoadConsent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if _, ok, err := LoadConsent(ctx, s); ok || err != nil {
		t.Fatalf("expected no decision yet, got ok=%v err=%v", ok, err)
	}

	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if _, err := SaveConsent(ctx, s, model.ConsentRequired, at); err != nil {
		t.Fatalf("SaveConsent failed: %v", err)
	}
	raw, _ := s.Get(ctx, ConsentTimestampKey)
	if raw != "2024-03-01T12:30:00Z" {
		t.Errorf("unexpected timestamp %q", raw)
	}

	c, ok, err := LoadConsent(ctx, s)
	if err != nil || !ok {
		t.Fatalf("LoadConsent failed: ok=%v err=%v", ok, err)
	}
	if c.Level != model.ConsentRequired || !c.Timestamp.Equal(at) {
		t.Errorf("unexpected consent %+v", c)
	}
}

func TestLoadConsentIgnoresUnknownValue(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, ConsentKey, "maybe")
	if _, ok, err := LoadConsent(ctx, s); ok || err != nil {
		t.Errorf("expected unknown value to be ignored, got ok=%v err=%v", ok, err)
	}
	if _, err := SaveConsent(ctx, s, "maybe", time.Now()); err == nil {
		t.Error("expected error for invalid level")
	}
}
