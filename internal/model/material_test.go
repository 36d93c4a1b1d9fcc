package model

import (
	"math"
	"testing"
)

func TestDefaultMaterialsDensityConsistency(t *testing.T) {
	// lb/in³ = g/cm³ * 16.387064 / 1000 * 2.20462
	for _, m := range DefaultMaterials() {
		want := m.DensityMetric * CubicCmPerCubicInch / gramsPerKg * PoundsPerKg
		if math.Abs(want-m.DensityImperial)/want > 0.01 {
			t.Errorf("%s: imperial density %f, expected about %f", m.ID, m.DensityImperial, want)
		}
	}
	if len(DefaultMaterials()) != 9 {
		t.Errorf("expected 9 catalog materials, got %d", len(DefaultMaterials()))
	}
}

func TestMergeMaterialCosts(t *testing.T) {
	got := MergeMaterialCosts(map[string]float64{
		"steel":       3.1,
		"unobtainium": 99,
		"brass":       -2,
		"copper":      0,
	})
	if got["steel"] != 3.1 {
		t.Errorf("expected steel override 3.1, got %f", got["steel"])
	}
	if _, ok := got["unobtainium"]; ok {
		t.Error("unknown materials should be dropped")
	}
	if got["brass"] != 8.0 || got["copper"] != 9.0 {
		t.Error("non-positive overrides should keep defaults")
	}
	if len(got) != 9 {
		t.Errorf("expected full table, got %d entries", len(got))
	}
}

func TestDecodeMaterialCostTable(t *testing.T) {
	got, err := DecodeMaterialCostTable([]byte(`{"aluminum": 5.25}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["aluminum"] != 5.25 || got["titanium"] != 35.0 {
		t.Errorf("unexpected table %v", got)
	}

	for _, bad := range []string{`not json`, `null`, `[1,2]`, `{"steel":"cheap"}`} {
		if _, err := DecodeMaterialCostTable([]byte(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestMaterialCostTableSet(t *testing.T) {
	tbl := DefaultMaterialCostTable()
	if err := tbl.Set("steel", 2.75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl["steel"] != 2.75 {
		t.Errorf("expected 2.75, got %f", tbl["steel"])
	}
	if err := tbl.Set("steel", 0); err == nil {
		t.Error("expected error for zero cost")
	}
	if err := tbl.Set("custom", 1); err == nil {
		t.Error("expected error for non-catalog material")
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestSelectMaterial(t *testing.T) {
	cat := DefaultCatalog()
	in := MaterialInput{MaterialID: CustomMaterialID, Density: 3.3, CostPerMass: 12, Units: UnitsSAE}

	steel := cat.SelectMaterial(in, "steel")
	if steel.Density != 0.284 {
		t.Errorf("expected SAE steel density 0.284, got %f", steel.Density)
	}
	if math.Abs(steel.CostPerMass-2.5/PoundsPerKg) > 1e-12 {
		t.Errorf("expected $/lb price, got %f", steel.CostPerMass)
	}

	custom := cat.SelectMaterial(steel, CustomMaterialID)
	if custom.Density != steel.Density || custom.CostPerMass != steel.CostPerMass {
		t.Error("custom material should keep the current values")
	}
	if cat.MaterialName(CustomMaterialID) != "Custom Material" {
		t.Errorf("unexpected name %q", cat.MaterialName(CustomMaterialID))
	}
}

func TestSelectMaterialUsesCostTable(t *testing.T) {
	tbl := DefaultMaterialCostTable()
	_ = tbl.Set("brass", 10)
	cat := DefaultCatalog().WithCosts(tbl)
	in := cat.NewMaterialInput("brass", UnitsMetric)
	if in.CostPerMass != 10 {
		t.Errorf("expected 10, got %f", in.CostPerMass)
	}
}

func TestSwitchUnitsNamedMaterial(t *testing.T) {
	cat := DefaultCatalog()
	in := cat.NewMaterialInput("aluminum", UnitsMetric)
	in.Volume = 163.87064

	sae := cat.SwitchUnits(in, UnitsSAE)
	if math.Abs(sae.Volume-10) > 1e-9 {
		t.Errorf("expected 10 in³, got %f", sae.Volume)
	}
	if sae.Density != 0.0975 {
		t.Errorf("expected catalog SAE density, got %f", sae.Density)
	}
	if math.Abs(sae.CostPerMass-4.5/PoundsPerKg) > 1e-12 {
		t.Errorf("unexpected $/lb %f", sae.CostPerMass)
	}

	back := cat.SwitchUnits(sae, UnitsMetric)
	if Round2(back.Volume) != Round2(in.Volume) {
		t.Errorf("round trip volume %f != %f", back.Volume, in.Volume)
	}
	if math.Abs(back.CostPerMass-4.5) > 1e-9 {
		t.Errorf("round trip cost %f", back.CostPerMass)
	}
	if back.Density != 2.7 {
		t.Errorf("expected metric density 2.7, got %f", back.Density)
	}
}

func TestSwitchUnitsCustomKeepsDensity(t *testing.T) {
	cat := DefaultCatalog()
	in := MaterialInput{MaterialID: CustomMaterialID, Volume: 50, Density: 5.5, CostPerMass: 11, Units: UnitsMetric}
	out := cat.SwitchUnits(in, UnitsSAE)
	if out.Density != 5.5 {
		t.Errorf("custom density should not change, got %f", out.Density)
	}
	if out.Units != UnitsSAE {
		t.Errorf("expected SAE, got %s", out.Units)
	}
}

func TestSwitchUnitsSameRegime(t *testing.T) {
	cat := DefaultCatalog()
	in := cat.NewMaterialInput("copper", UnitsMetric)
	in.Volume = 12
	out := cat.SwitchUnits(in, UnitsMetric)
	if out != in {
		t.Errorf("expected no change, got %+v", out)
	}
}

func TestCompareMaterials(t *testing.T) {
	cat := DefaultCatalog()
	rows, err := cat.CompareMaterials(1000, UnitsMetric, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(rows))
	}
	if rows[0].MaterialID != "aluminum" {
		t.Errorf("expected catalog order, got %s first", rows[0].MaterialID)
	}
	// 1000 cm³ aluminum = 2.7 kg * 4.5 * 2
	if math.Abs(rows[0].TotalCost-24.3) > 1e-9 {
		t.Errorf("expected 24.3, got %f", rows[0].TotalCost)
	}
	best, ok := CheapestMaterial(rows)
	if !ok || best.MaterialID != "plastic-abs" {
		t.Errorf("expected plastic-abs cheapest, got %s", best.MaterialID)
	}
	if _, err := cat.CompareMaterials(0, UnitsMetric, 1); err == nil {
		t.Error("expected error for zero volume")
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	for _, v := range []float64{0.5, 1, 100, 12345.678} {
		sae := ConvertVolume(v, UnitsMetric, UnitsSAE)
		back := ConvertVolume(sae, UnitsSAE, UnitsMetric)
		if Round2(back) != Round2(v) {
			t.Errorf("volume round trip %f -> %f", v, back)
		}
		c := ConvertCostPerMass(ConvertCostPerMass(v, UnitsSAE, UnitsMetric), UnitsMetric, UnitsSAE)
		if Round2(c) != Round2(v) {
			t.Errorf("cost round trip %f -> %f", v, c)
		}
	}
	if got := ConvertLength(25.4, UnitsMetric, UnitsSAE); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 in, got %f", got)
	}
}

func TestParseUnitSystem(t *testing.T) {
	for in, want := range map[string]UnitSystem{"metric": UnitsMetric, "MM": UnitsMetric, "sae": UnitsSAE, " imperial ": UnitsSAE} {
		got, err := ParseUnitSystem(in)
		if err != nil || got != want {
			t.Errorf("ParseUnitSystem(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseUnitSystem("furlongs"); err == nil {
		t.Error("expected error for unknown unit system")
	}
	var zero UnitSystem
	if !zero.IsMetric() || zero.VolumeUnit() != "cm³" {
		t.Error("zero value should behave as metric")
	}
}
