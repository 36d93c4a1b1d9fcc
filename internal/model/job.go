package model

import "math"

// TimeSpan is a duration entered as hours and minutes.
type TimeSpan struct {
	Hours   float64 `json:"hours"`
	Minutes float64 `json:"minutes"`
}

// InHours returns the span as fractional hours.
func (t TimeSpan) InHours() float64 {
	return t.Hours + t.Minutes/60
}

// IsZero reports whether the span is empty.
func (t TimeSpan) IsZero() bool {
	return t.InHours() == 0
}

// SpanFromHours splits fractional hours into whole hours and minutes.
func SpanFromHours(h float64) TimeSpan {
	whole := math.Floor(h)
	return TimeSpan{Hours: whole, Minutes: (h - whole) * 60}
}

// JobParameters holds everything entered on the estimate form.
type JobParameters struct {
	MachineTime        TimeSpan `json:"machine_time"` // per piece
	SetupTime          TimeSpan `json:"setup_time"`   // per setup
	ProgrammingTime    TimeSpan `json:"programming_time"`
	IncludeProgramming bool     `json:"include_programming"`

	MachineRate     float64 `json:"machine_rate"` // currency per hour
	SetupRate       float64 `json:"setup_rate"`
	ProgrammingRate float64 `json:"programming_rate"`

	Quantity   int `json:"quantity"`
	SetupCount int `json:"setup_count"`

	ToolCost      float64 `json:"tool_cost"` // for the whole lot
	MarkupEnabled bool    `json:"markup_enabled"`
	MarkupPercent float64 `json:"markup_percent"`

	Finishing FinishingSelection `json:"finishing"`
	Material  MaterialInput      `json:"material"`
}

// DefaultJobParameters returns the values the form resets to.
func DefaultJobParameters(cat Catalog, units UnitSystem) JobParameters {
	return JobParameters{
		MachineRate:     75,
		SetupRate:       60,
		ProgrammingRate: 65,
		Quantity:        1,
		SetupCount:      1,
		MarkupPercent:   20,
		Finishing:       NoFinishing(),
		Material:        cat.NewMaterialInput("aluminum", units),
	}
}

// Units returns the regime of the material section.
func (j JobParameters) Units() UnitSystem {
	return j.Material.Units
}

// Validate checks the inputs required before a calculation may run. Rates
// are only required for the time components that are actually charged.
func (j JobParameters) Validate() error {
	if j.Quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if j.SetupCount < 1 {
		return &ValidationError{Field: "setup_count", Message: "must be at least 1"}
	}

	spans := []struct {
		field string
		span  TimeSpan
	}{
		{"machine_time", j.MachineTime},
		{"setup_time", j.SetupTime},
		{"programming_time", j.ProgrammingTime},
	}
	for _, s := range spans {
		if s.span.Hours < 0 || s.span.Minutes < 0 || !finite(s.span.InHours()) {
			return &ValidationError{Field: s.field, Message: "cannot be negative"}
		}
	}

	rates := []struct {
		field string
		rate  float64
	}{
		{"machine_rate", j.MachineRate},
		{"setup_rate", j.SetupRate},
		{"programming_rate", j.ProgrammingRate},
	}
	for _, r := range rates {
		if r.rate < 0 || !finite(r.rate) {
			return &ValidationError{Field: r.field, Message: "must be a non-negative number"}
		}
	}

	if !j.MachineTime.IsZero() && !positive(j.MachineRate) {
		return &ValidationError{Field: "machine_rate", Message: "machine hourly rate is required"}
	}
	if !j.SetupTime.IsZero() && !positive(j.SetupRate) {
		return &ValidationError{Field: "setup_rate", Message: "setup hourly rate is required"}
	}
	if j.IncludeProgramming && !positive(j.ProgrammingRate) {
		return &ValidationError{Field: "programming_rate", Message: "programming hourly rate is required"}
	}

	if j.ToolCost < 0 || !finite(j.ToolCost) {
		return &ValidationError{Field: "tool_cost", Message: "cannot be negative"}
	}
	if j.MarkupEnabled && (j.MarkupPercent < 0 || !finite(j.MarkupPercent)) {
		return &ValidationError{Field: "markup_percent", Message: "cannot be negative"}
	}

	m := j.Material
	if m.Volume < 0 || m.Density < 0 || m.CostPerMass < 0 || !finite(m.Volume) || !finite(m.Density) || !finite(m.CostPerMass) {
		return &ValidationError{Field: "material", Message: "volume, density and cost cannot be negative"}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
