package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/MachCost/internal/model"
)

func TestValuesFromJobDefaults(t *testing.T) {
	j := model.DefaultJobParameters(model.DefaultCatalog(), model.UnitsMetric)
	v := ValuesFromJob(j)

	assert.Equal(t, "", v.MachineHours)
	assert.Equal(t, "75", v.MachineRate)
	assert.Equal(t, "60", v.SetupRate)
	assert.Equal(t, "65", v.ProgrammingRate)
	assert.Equal(t, "1", v.Quantity)
	assert.Equal(t, "1", v.SetupCount)
	assert.Equal(t, "", v.ToolCost)
	assert.Equal(t, "20", v.MarkupPercent)
	assert.Equal(t, "aluminum", v.MaterialID)
	assert.Equal(t, "2.7", v.Density)
	assert.Equal(t, "4.5", v.CostPerMass)
	assert.Equal(t, "", v.Volume)
}

func TestFormValuesJob(t *testing.T) {
	v := FormValues{
		MachineHours:   "1",
		MachineMinutes: "30",
		SetupMinutes:   "45",
		MachineRate:    "80",
		SetupRate:      "60",
		Quantity:       "10",
		SetupCount:     "2",
		ToolCost:       " 25.5 ",
		MaterialID:     "steel",
		Volume:         "100",
		Density:        "7.85",
		CostPerMass:    "2.5",
	}
	sel, err := model.DefaultFinishingCatalog().Selection("anodizing")
	require.NoError(t, err)

	j, err := v.Job(model.UnitsMetric, sel)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, j.MachineTime.InHours(), 1e-9)
	assert.InDelta(t, 0.75, j.SetupTime.InHours(), 1e-9)
	assert.True(t, j.ProgrammingTime.IsZero())
	assert.Equal(t, 10, j.Quantity)
	assert.Equal(t, 2, j.SetupCount)
	assert.InDelta(t, 25.5, j.ToolCost, 1e-9)
	assert.Equal(t, []string{"Anodizing"}, j.Finishing.Names())
	assert.Equal(t, "steel", j.Material.MaterialID)
	assert.Equal(t, model.UnitsMetric, j.Units())
	assert.InDelta(t, 100, j.Material.Volume, 1e-9)
}

func TestFormValuesJobRejectsText(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*FormValues)
		field string
	}{
		{"machine rate", func(v *FormValues) { v.MachineRate = "abc" }, "machine_rate"},
		{"quantity fraction", func(v *FormValues) { v.Quantity = "1.5" }, "quantity"},
		{"setup minutes", func(v *FormValues) { v.SetupMinutes = "ten" }, "setup_time"},
		{"volume", func(v *FormValues) { v.Volume = "NaN" }, "volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValuesFromJob(model.DefaultJobParameters(model.DefaultCatalog(), model.UnitsMetric))
			tt.edit(&v)
			_, err := v.Job(model.UnitsMetric, model.NoFinishing())
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestFormValuesRoundTrip(t *testing.T) {
	j := model.DefaultJobParameters(model.DefaultCatalog(), model.UnitsSAE)
	j.MachineTime = model.TimeSpan{Hours: 2, Minutes: 15}
	j.ToolCost = 40
	j.Material.Volume = 3.5

	got, err := ValuesFromJob(j).Job(model.UnitsSAE, j.Finishing)
	require.NoError(t, err)
	assert.Equal(t, j, got)
}

func TestFormValuesGeometry(t *testing.T) {
	v := FormValues{Length: "100", Width: "50", Thickness: "20"}
	g := v.Geometry()
	assert.Equal(t, model.ShapeRectangular, g.Shape())

	vol, err := model.CalculateVolume(g, model.UnitsMetric)
	require.NoError(t, err)
	assert.InDelta(t, 100, vol, 1e-9)
}
