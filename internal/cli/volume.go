package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/MachCost/internal/model"
)

type VolumeOptions struct {
	GlobalOptions
	Geometry GeometryFlags
	Units    string

	out io.Writer
}

func NewCmdVolume() *cobra.Command {
	o := &VolumeOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Calculate the material volume of a rectangular block or round bar",
		Example: `  machcost volume --length 100 --width 50 --thickness 20
  machcost volume --units sae --diameter 2 --length 3
  machcost volume --dxf bracket.dxf --thickness 12`,
		Args: cobra.NoArgs,
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

func (o *VolumeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.Geometry.Bind(fs)
	fs.StringVar(&o.Units, "units", "", "Unit system: metric or sae (default from preferences)")
}

func (o *VolumeOptions) Run(ctx context.Context, args []string) error {
	units, err := resolveUnits(o.Units, o.AppConfig())
	if err != nil {
		return err
	}
	v, geom, err := o.Geometry.Volume(units)
	if err != nil {
		return err
	}
	if o.wantJSON() {
		return printJSON(o.out, map[string]any{
			"volume":   v,
			"unit":     units.VolumeUnit(),
			"shape":    geom.Shape().String(),
			"geometry": geom,
		})
	}
	_, err = fmt.Fprintf(o.out, "%s volume: %.3f %s\n", geom.Shape(), v, units.VolumeUnit())
	return err
}

func resolveUnits(raw string, appCfg model.AppConfig) (model.UnitSystem, error) {
	if raw != "" {
		return model.ParseUnitSystem(raw)
	}
	if appCfg.DefaultUnits != "" {
		return appCfg.DefaultUnits, nil
	}
	return model.UnitsMetric, nil
}
