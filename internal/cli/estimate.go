package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/model"
)

type EstimateOptions struct {
	GlobalOptions
	JobFlags
	Breakdown bool

	out io.Writer
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost per piece and lot cost of a machining job",
		Example: `  machcost estimate --machine-hours 1 --setup-hours 2 --setups 2 -q 10 --tool-cost 50
  machcost estimate -m steel --length 100 --width 50 --thickness 20 -q 25 --finishing black-oxide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.JobFlags.Bind(fs)
	fs.BoolVar(&o.Breakdown, "breakdown", false, "Show the per-piece cost breakdown")
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	appCfg := o.AppConfig()
	cat := o.Catalog(ctx, s, appCfg)

	job, err := o.Job(cat, appCfg)
	if err != nil {
		return err
	}
	res, err := model.Calculate(job)
	if err != nil {
		return err
	}
	o.logger.Debug("estimate calculated",
		zap.Int("quantity", job.Quantity),
		zap.Float64("cost_per_piece", res.CostPerPiece))

	if o.wantJSON() {
		return printJSON(o.out, struct {
			Job    model.JobParameters     `json:"job"`
			Result model.CalculationResult `json:"result"`
		}{job, res.Rounded()})
	}
	return printEstimate(o.out, cat, job, res, o.Breakdown)
}

func printEstimate(out io.Writer, cat model.Catalog, job model.JobParameters, res model.CalculationResult, breakdown bool) error {
	units := job.Units()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Units:\t%s\n", units)
	if job.Material.Volume > 0 {
		fmt.Fprintf(w, "Material:\t%s (%.2f %s)\n", cat.MaterialName(job.Material.MaterialID), job.Material.Volume, units.VolumeUnit())
	} else {
		fmt.Fprintf(w, "Material:\tnot included\n")
	}
	fmt.Fprintf(w, "Finishing:\t%s\n", job.Finishing.Summary())
	fmt.Fprintf(w, "Quantity:\t%d\n", job.Quantity)
	fmt.Fprintf(w, "Total machine time:\t%s\n", model.FormatHours(res.TotalMachineTime))
	fmt.Fprintf(w, "Material cost:\t%s\n", model.FormatMoney(res.MaterialCost))
	fmt.Fprintf(w, "Cost per piece:\t%s\n", model.FormatMoney(res.CostPerPiece))
	fmt.Fprintf(w, "Total lot cost:\t%s\n", model.FormatMoney(res.TotalLotCost))
	fmt.Fprintf(w, "Batches:\t%s\n", model.FormatBatches(res.Batches))
	if breakdown {
		b := res.Breakdown
		fmt.Fprintf(w, "\nPer piece\n")
		fmt.Fprintf(w, "  Setup and programming:\t%s\n", model.FormatMoney(b.FixedPerPiece))
		fmt.Fprintf(w, "  Machining:\t%s\n", model.FormatMoney(b.MachineCost/float64(job.Quantity)))
		fmt.Fprintf(w, "  Finishing:\t%s\n", model.FormatMoney(b.FinishingPerPiece))
		fmt.Fprintf(w, "  Tooling:\t%s\n", model.FormatMoney(b.ToolPerPiece))
		fmt.Fprintf(w, "  Material:\t%s\n", model.FormatMoney(b.MaterialPerPiece))
		fmt.Fprintf(w, "  Markup factor:\t%.2f\n", b.MarkupFactor)
	}
	return w.Flush()
}
