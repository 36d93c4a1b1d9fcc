package server

import (
	"fmt"

	"github.com/piwi3910/MachCost/internal/model"
)

// MaterialRequest is the material section of an estimate. Density and
// price default to the catalog values of MaterialID when omitted. A volume
// of zero is computed from Geometry when one is given.
type MaterialRequest struct {
	MaterialID  string              `json:"material_id"`
	Volume      float64             `json:"volume" validate:"gte=0"`
	Density     *float64            `json:"density,omitempty" validate:"omitempty,gte=0"`
	CostPerMass *float64            `json:"cost_per_mass,omitempty" validate:"omitempty,gte=0"`
	Geometry    *model.PartGeometry `json:"geometry,omitempty"`
}

// EstimateRequest carries the estimate form. Omitted rates and markup fall
// back to the configured defaults.
type EstimateRequest struct {
	Units    string `json:"units" validate:"omitempty,oneof=metric sae"`
	Customer string `json:"customer" validate:"max=120"`

	MachineTime        model.TimeSpan `json:"machine_time"`
	SetupTime          model.TimeSpan `json:"setup_time"`
	ProgrammingTime    model.TimeSpan `json:"programming_time"`
	IncludeProgramming bool           `json:"include_programming"`

	MachineRate     *float64 `json:"machine_rate,omitempty" validate:"omitempty,gte=0"`
	SetupRate       *float64 `json:"setup_rate,omitempty" validate:"omitempty,gte=0"`
	ProgrammingRate *float64 `json:"programming_rate,omitempty" validate:"omitempty,gte=0"`

	Quantity   int `json:"quantity" validate:"required,min=1"`
	SetupCount int `json:"setup_count" validate:"omitempty,min=1"`

	ToolCost      float64  `json:"tool_cost" validate:"gte=0"`
	MarkupEnabled bool     `json:"markup_enabled"`
	MarkupPercent *float64 `json:"markup_percent,omitempty" validate:"omitempty,gte=0"`

	Finishing []string        `json:"finishing" validate:"dive,required"`
	Material  MaterialRequest `json:"material"`
}

// Job converts the request into job parameters on top of defaults.
func (req EstimateRequest) Job(cat model.Catalog, defaults model.AppConfig) (model.JobParameters, error) {
	units := defaults.DefaultUnits
	if req.Units != "" {
		parsed, err := model.ParseUnitSystem(req.Units)
		if err != nil {
			return model.JobParameters{}, &model.ValidationError{Field: "units", Message: err.Error()}
		}
		units = parsed
	}
	if units == "" {
		units = model.UnitsMetric
	}

	j := model.DefaultJobParameters(cat, units)
	defaults.ApplyToJob(&j, cat)

	j.MachineTime = req.MachineTime
	j.SetupTime = req.SetupTime
	j.ProgrammingTime = req.ProgrammingTime
	j.IncludeProgramming = req.IncludeProgramming
	if req.MachineRate != nil {
		j.MachineRate = *req.MachineRate
	}
	if req.SetupRate != nil {
		j.SetupRate = *req.SetupRate
	}
	if req.ProgrammingRate != nil {
		j.ProgrammingRate = *req.ProgrammingRate
	}
	j.Quantity = req.Quantity
	j.SetupCount = 1
	if req.SetupCount > 0 {
		j.SetupCount = req.SetupCount
	}
	j.ToolCost = req.ToolCost
	j.MarkupEnabled = req.MarkupEnabled
	if req.MarkupPercent != nil {
		j.MarkupPercent = *req.MarkupPercent
	}

	sel, err := cat.Finishing.Selection(req.Finishing...)
	if err != nil {
		return model.JobParameters{}, err
	}
	j.Finishing = sel

	m, err := req.Material.input(cat, j.Material)
	if err != nil {
		return model.JobParameters{}, err
	}
	j.Material = m
	return j, nil
}

func (mr MaterialRequest) input(cat model.Catalog, base model.MaterialInput) (model.MaterialInput, error) {
	in := base
	if mr.MaterialID != "" {
		if _, ok := cat.Material(mr.MaterialID); !ok && mr.MaterialID != model.CustomMaterialID {
			return in, &model.ValidationError{Field: "material_id", Message: fmt.Sprintf("unknown material %q", mr.MaterialID)}
		}
		in = cat.SelectMaterial(in, mr.MaterialID)
	}
	if mr.Density != nil {
		in.Density = *mr.Density
	}
	if mr.CostPerMass != nil {
		in.CostPerMass = *mr.CostPerMass
	}

	in.Volume = mr.Volume
	if in.Volume == 0 && mr.Geometry != nil {
		v, err := model.CalculateVolume(*mr.Geometry, in.Units)
		if err != nil {
			return in, err
		}
		in.Volume = v
	}
	return in, nil
}

type VolumeRequest struct {
	Units string `json:"units" validate:"omitempty,oneof=metric sae"`
	model.PartGeometry
}

type BatchRequest struct {
	Quantity   int `json:"quantity" validate:"required,min=1"`
	SetupCount int `json:"setup_count" validate:"required,min=1"`
}

type ConvertRequest struct {
	From        string  `json:"from" validate:"required,oneof=metric sae"`
	To          string  `json:"to" validate:"required,oneof=metric sae"`
	MaterialID  string  `json:"material_id"`
	Volume      float64 `json:"volume" validate:"gte=0"`
	Density     float64 `json:"density" validate:"gte=0"`
	CostPerMass float64 `json:"cost_per_mass" validate:"gte=0"`
}

type MaterialCostsRequest struct {
	Costs map[string]float64 `json:"costs" validate:"required"`
}

type CompareRequest struct {
	Units    string  `json:"units" validate:"omitempty,oneof=metric sae"`
	Volume   float64 `json:"volume" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"omitempty,min=1"`
}

type ConsentRequest struct {
	Level string `json:"level" validate:"required,oneof=all required"`
}

type LeadTimeRequest struct {
	Start  string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	Amount int    `json:"amount" validate:"gte=0"`
	Unit   string `json:"unit" validate:"required"`
}
