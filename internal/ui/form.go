package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/MachCost/internal/model"
)

// FormValues is the raw text of every estimate form field. Keeping the
// form as strings lets Undo restore exactly what was typed.
type FormValues struct {
	MachineHours       string
	MachineMinutes     string
	SetupHours         string
	SetupMinutes       string
	ProgrammingHours   string
	ProgrammingMinutes string
	IncludeProgramming bool

	MachineRate     string
	SetupRate       string
	ProgrammingRate string

	Quantity   string
	SetupCount string
	ToolCost   string

	MarkupEnabled bool
	MarkupPercent string

	MaterialID  string
	Volume      string
	Density     string
	CostPerMass string

	Length    string
	Width     string
	Thickness string
	Diameter  string
}

// ValuesFromJob renders job parameters into form text. Zero times, tool
// cost and volume are left blank.
func ValuesFromJob(j model.JobParameters) FormValues {
	return FormValues{
		MachineHours:       blankZero(j.MachineTime.Hours),
		MachineMinutes:     blankZero(j.MachineTime.Minutes),
		SetupHours:         blankZero(j.SetupTime.Hours),
		SetupMinutes:       blankZero(j.SetupTime.Minutes),
		ProgrammingHours:   blankZero(j.ProgrammingTime.Hours),
		ProgrammingMinutes: blankZero(j.ProgrammingTime.Minutes),
		IncludeProgramming: j.IncludeProgramming,
		MachineRate:        formatNumber(j.MachineRate),
		SetupRate:          formatNumber(j.SetupRate),
		ProgrammingRate:    formatNumber(j.ProgrammingRate),
		Quantity:           strconv.Itoa(j.Quantity),
		SetupCount:         strconv.Itoa(j.SetupCount),
		ToolCost:           blankZero(j.ToolCost),
		MarkupEnabled:      j.MarkupEnabled,
		MarkupPercent:      formatNumber(j.MarkupPercent),
		MaterialID:         j.Material.MaterialID,
		Volume:             blankZero(j.Material.Volume),
		Density:            formatNumber(j.Material.Density),
		CostPerMass:        formatNumber(j.Material.CostPerMass),
	}
}

// Job parses the form. Blank numeric fields read as zero; anything else
// that is not a number is a *model.ValidationError for that field.
func (v FormValues) Job(units model.UnitSystem, finishing model.FinishingSelection) (model.JobParameters, error) {
	p := &fieldParser{}
	j := model.JobParameters{
		MachineTime:        model.TimeSpan{Hours: p.float("machine_time", v.MachineHours), Minutes: p.float("machine_time", v.MachineMinutes)},
		SetupTime:          model.TimeSpan{Hours: p.float("setup_time", v.SetupHours), Minutes: p.float("setup_time", v.SetupMinutes)},
		ProgrammingTime:    model.TimeSpan{Hours: p.float("programming_time", v.ProgrammingHours), Minutes: p.float("programming_time", v.ProgrammingMinutes)},
		IncludeProgramming: v.IncludeProgramming,
		MachineRate:        p.float("machine_rate", v.MachineRate),
		SetupRate:          p.float("setup_rate", v.SetupRate),
		ProgrammingRate:    p.float("programming_rate", v.ProgrammingRate),
		Quantity:           p.int("quantity", v.Quantity),
		SetupCount:         p.int("setup_count", v.SetupCount),
		ToolCost:           p.float("tool_cost", v.ToolCost),
		MarkupEnabled:      v.MarkupEnabled,
		MarkupPercent:      p.float("markup_percent", v.MarkupPercent),
		Finishing:          finishing,
		Material: model.MaterialInput{
			MaterialID:  v.MaterialID,
			Volume:      p.float("volume", v.Volume),
			Density:     p.float("density", v.Density),
			CostPerMass: p.float("cost_per_mass", v.CostPerMass),
			Units:       units,
		},
	}
	if p.err != nil {
		return model.JobParameters{}, p.err
	}
	return j, nil
}

// Geometry returns the part dimensions entered on the material tab.
func (v FormValues) Geometry() model.PartGeometry {
	return model.ParseGeometry(v.Length, v.Width, v.Thickness, v.Diameter)
}

// WithMaterial replaces the material fields.
func (v FormValues) WithMaterial(in model.MaterialInput) FormValues {
	v.MaterialID = in.MaterialID
	v.Volume = blankZero(in.Volume)
	v.Density = formatNumber(in.Density)
	v.CostPerMass = formatNumber(in.CostPerMass)
	return v
}

// ParseMaterial parses only the material fields. Blank fields read as 0;
// other text is a *model.ValidationError.
func (v FormValues) ParseMaterial(units model.UnitSystem) (model.MaterialInput, error) {
	p := &fieldParser{}
	in := model.MaterialInput{
		MaterialID:  v.MaterialID,
		Volume:      p.float("volume", v.Volume),
		Density:     p.float("density", v.Density),
		CostPerMass: p.float("cost_per_mass", v.CostPerMass),
		Units:       units,
	}
	if p.err != nil {
		return model.MaterialInput{}, p.err
	}
	return in, nil
}

type fieldParser struct {
	err error
}

func (p *fieldParser) float(field, s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = &model.ValidationError{Field: field, Message: "must be a number"}
		return 0
	}
	return v
}

func (p *fieldParser) int(field, s string) int {
	s = strings.TrimSpace(s)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = &model.ValidationError{Field: field, Message: "must be a whole number"}
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func blankZero(v float64) string {
	if v == 0 {
		return ""
	}
	return formatNumber(v)
}
