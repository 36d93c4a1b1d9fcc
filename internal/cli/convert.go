package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/MachCost/internal/model"
)

type ConvertOptions struct {
	GlobalOptions
	From        string
	To          string
	Material    string
	Volume      float64
	Density     float64
	CostPerMass float64

	out io.Writer
}

func NewCmdConvert() *cobra.Command {
	o := &ConvertOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:     "convert",
		Short:   "Convert material volume, density and price between metric and SAE",
		Example: "  machcost convert --from metric --to sae -m aluminum --volume 100 --cost-per-mass 4.5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			defer o.Close()
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ConvertOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.From, "from", "metric", "Source unit system")
	fs.StringVar(&o.To, "to", "sae", "Target unit system")
	fs.StringVarP(&o.Material, "material", "m", model.CustomMaterialID, "Material ID; catalog materials take their density from the catalog")
	fs.Float64Var(&o.Volume, "volume", 0, "Volume in the source unit")
	fs.Float64Var(&o.Density, "density", 0, "Density in the source unit")
	fs.Float64Var(&o.CostPerMass, "cost-per-mass", 0, "Price per kg or lb in the source unit")
}

func (o *ConvertOptions) Run(ctx context.Context, args []string) error {
	from, err := model.ParseUnitSystem(o.From)
	if err != nil {
		return err
	}
	to, err := model.ParseUnitSystem(o.To)
	if err != nil {
		return err
	}
	in := model.MaterialInput{
		MaterialID:  o.Material,
		Volume:      o.Volume,
		Density:     o.Density,
		CostPerMass: o.CostPerMass,
		Units:       from,
	}
	out := model.DefaultCatalog().SwitchUnits(in, to)
	if o.wantJSON() {
		return printJSON(o.out, out)
	}

	w := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\t%s\n", from, to)
	fmt.Fprintf(w, "Volume\t%.4f %s\t%.4f %s\n", in.Volume, from.VolumeUnit(), out.Volume, to.VolumeUnit())
	fmt.Fprintf(w, "Density\t%.4f %s\t%.4f %s\n", in.Density, from.DensityUnit(), out.Density, to.DensityUnit())
	fmt.Fprintf(w, "Price\t%.4f $/%s\t%.4f $/%s\n", in.CostPerMass, from.MassUnit(), out.CostPerMass, to.MassUnit())
	return w.Flush()
}
