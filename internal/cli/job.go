package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/piwi3910/MachCost/internal/importer"
	"github.com/piwi3910/MachCost/internal/model"
)

// JobFlags are the estimate form fields as command-line flags, shared by
// estimate and quote.
type JobFlags struct {
	Units string

	MachineHours       float64
	MachineMinutes     float64
	SetupHours         float64
	SetupMinutes       float64
	ProgrammingHours   float64
	ProgrammingMinutes float64
	IncludeProgramming bool

	MachineRate     float64
	SetupRate       float64
	ProgrammingRate float64

	Quantity int
	Setups   int
	ToolCost float64
	Markup   float64

	Finishing []string

	Material    string
	Volume      float64
	Density     float64
	CostPerMass float64
	Geometry    GeometryFlags

	fs *pflag.FlagSet
}

// GeometryFlags describe the part either by dimensions or by a DXF drawing.
type GeometryFlags struct {
	Length    float64
	Width     float64
	Thickness float64
	Diameter  float64
	DXF       string
}

func (g *GeometryFlags) Bind(fs *pflag.FlagSet) {
	fs.Float64Var(&g.Length, "length", 0, "Part length (mm or in)")
	fs.Float64Var(&g.Width, "width", 0, "Part width (mm or in)")
	fs.Float64Var(&g.Thickness, "thickness", 0, "Part thickness, or cylinder length for a DXF profile (mm or in)")
	fs.Float64Var(&g.Diameter, "diameter", 0, "Bar diameter (mm or in)")
	fs.StringVar(&g.DXF, "dxf", "", "Read the part outline from a DXF drawing; --thickness gives the depth")
}

func (g GeometryFlags) set() bool {
	return g.DXF != "" || g.Length > 0 || g.Width > 0 || g.Thickness > 0 || g.Diameter > 0
}

// Volume returns the material volume described by the flags.
func (g GeometryFlags) Volume(units model.UnitSystem) (float64, model.PartGeometry, error) {
	geom := model.PartGeometry{Length: g.Length, Width: g.Width, Thickness: g.Thickness, Diameter: g.Diameter}
	if g.DXF != "" {
		res := importer.ImportGeometryDXF(g.DXF, g.Thickness)
		if len(res.Errors) > 0 {
			return 0, geom, fmt.Errorf("reading %s: %s", g.DXF, strings.Join(res.Errors, "; "))
		}
		geom = res.Geometry
	}
	v, err := model.CalculateVolume(geom, units)
	return v, geom, err
}

func (f *JobFlags) Bind(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.Units, "units", "", "Unit system: metric or sae (default from preferences)")

	fs.Float64Var(&f.MachineHours, "machine-hours", 0, "Machine time per piece, hours")
	fs.Float64Var(&f.MachineMinutes, "machine-minutes", 0, "Machine time per piece, minutes")
	fs.Float64Var(&f.SetupHours, "setup-hours", 0, "Setup time per setup, hours")
	fs.Float64Var(&f.SetupMinutes, "setup-minutes", 0, "Setup time per setup, minutes")
	fs.Float64Var(&f.ProgrammingHours, "programming-hours", 0, "One-time programming time, hours")
	fs.Float64Var(&f.ProgrammingMinutes, "programming-minutes", 0, "One-time programming time, minutes")
	fs.BoolVar(&f.IncludeProgramming, "include-programming", false, "Charge programming time")

	fs.Float64Var(&f.MachineRate, "machine-rate", 0, "Machine hourly rate (default from preferences)")
	fs.Float64Var(&f.SetupRate, "setup-rate", 0, "Setup hourly rate (default from preferences)")
	fs.Float64Var(&f.ProgrammingRate, "programming-rate", 0, "Programming hourly rate (default from preferences)")

	fs.IntVarP(&f.Quantity, "quantity", "q", 1, "Number of pieces")
	fs.IntVar(&f.Setups, "setups", 1, "Number of setups")
	fs.Float64Var(&f.ToolCost, "tool-cost", 0, "Tooling cost for the whole lot")
	fs.Float64Var(&f.Markup, "markup", 0, "Apply this markup percentage")

	fs.StringSliceVar(&f.Finishing, "finishing", nil, "Finishing process IDs, comma separated")

	fs.StringVarP(&f.Material, "material", "m", "", "Material ID, or \"custom\" with --density and --cost-per-mass")
	fs.Float64Var(&f.Volume, "volume", 0, "Material volume per piece (cm³ or in³)")
	fs.Float64Var(&f.Density, "density", 0, "Density override (g/cm³ or lb/in³)")
	fs.Float64Var(&f.CostPerMass, "cost-per-mass", 0, "Material price override ($/kg or $/lb)")
	f.Geometry.Bind(fs)
}

func (f *JobFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// Job builds job parameters from the flags on top of the preferences.
func (f *JobFlags) Job(cat model.Catalog, appCfg model.AppConfig) (model.JobParameters, error) {
	units := appCfg.DefaultUnits
	if f.Units != "" {
		u, err := model.ParseUnitSystem(f.Units)
		if err != nil {
			return model.JobParameters{}, &model.ValidationError{Field: "units", Message: err.Error()}
		}
		units = u
	}
	if units == "" {
		units = model.UnitsMetric
	}

	j := model.DefaultJobParameters(cat, units)
	appCfg.ApplyToJob(&j, cat)

	j.MachineTime = model.TimeSpan{Hours: f.MachineHours, Minutes: f.MachineMinutes}
	j.SetupTime = model.TimeSpan{Hours: f.SetupHours, Minutes: f.SetupMinutes}
	j.ProgrammingTime = model.TimeSpan{Hours: f.ProgrammingHours, Minutes: f.ProgrammingMinutes}
	j.IncludeProgramming = f.IncludeProgramming
	if f.changed("machine-rate") {
		j.MachineRate = f.MachineRate
	}
	if f.changed("setup-rate") {
		j.SetupRate = f.SetupRate
	}
	if f.changed("programming-rate") {
		j.ProgrammingRate = f.ProgrammingRate
	}
	j.Quantity = f.Quantity
	j.SetupCount = f.Setups
	j.ToolCost = f.ToolCost
	if f.changed("markup") {
		j.MarkupEnabled = true
		j.MarkupPercent = f.Markup
	}

	sel, err := cat.Finishing.Selection(f.Finishing...)
	if err != nil {
		return model.JobParameters{}, err
	}
	j.Finishing = sel

	if f.Material != "" {
		if _, ok := cat.Material(f.Material); !ok && f.Material != model.CustomMaterialID {
			return model.JobParameters{}, &model.ValidationError{Field: "material", Message: fmt.Sprintf("unknown material %q", f.Material)}
		}
		j.Material = cat.SelectMaterial(j.Material, f.Material)
	}
	if f.changed("density") {
		j.Material.Density = f.Density
	}
	if f.changed("cost-per-mass") {
		j.Material.CostPerMass = f.CostPerMass
	}

	switch {
	case f.Volume > 0:
		j.Material.Volume = f.Volume
	case f.Geometry.set():
		v, _, err := f.Geometry.Volume(units)
		if err != nil {
			return model.JobParameters{}, err
		}
		j.Material.Volume = v
	}
	return j, nil
}
