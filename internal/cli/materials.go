package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/importer"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

// MaterialsOptions backs every materials subcommand; each uses the fields
// it needs.
type MaterialsOptions struct {
	GlobalOptions
	Units    string
	Volume   float64
	Quantity int
	DryRun   bool

	out io.Writer
}

func NewCmdMaterials() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List, price and compare stock materials",
	}
	cmd.AddCommand(
		newMaterialsSubcommand("list", "List catalog materials with density and price", cobra.NoArgs, (*MaterialsOptions).runList),
		newMaterialsSubcommand("set MATERIAL COST_PER_KG", "Set the price per kg of a material", cobra.ExactArgs(2), (*MaterialsOptions).runSet),
		newMaterialsSubcommand("reset", "Restore the default material prices", cobra.NoArgs, (*MaterialsOptions).runReset),
		newMaterialsSubcommand("import FILE", "Import material prices from a CSV or Excel file", cobra.ExactArgs(1), (*MaterialsOptions).runImport),
		newMaterialsSubcommand("compare", "Price the same volume in every material", cobra.NoArgs, (*MaterialsOptions).runCompare),
	)
	return cmd
}

func newMaterialsSubcommand(use, short string, args cobra.PositionalArgs, run func(*MaterialsOptions, context.Context, []string) error) *cobra.Command {
	o := &MaterialsOptions{GlobalOptions: DefaultGlobalOptions(), Quantity: 1}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			defer o.Close()
			if err := o.Validate(args); err != nil {
				return err
			}
			return run(o, cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *MaterialsOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.Units, "units", "", "Unit system: metric or sae (default from preferences)")
	fs.Float64Var(&o.Volume, "volume", 0, "Volume per piece for compare (cm³ or in³)")
	fs.IntVarP(&o.Quantity, "quantity", "q", o.Quantity, "Number of pieces for compare")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Show what import would change without saving")
}

func (o *MaterialsOptions) runList(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	appCfg := o.AppConfig()
	units, err := resolveUnits(o.Units, appCfg)
	if err != nil {
		return err
	}
	cat := o.Catalog(ctx, s, appCfg)

	type row struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Density     float64 `json:"density"`
		CostPerMass float64 `json:"cost_per_mass"`
	}
	rows := make([]row, 0, len(cat.Materials))
	for _, m := range cat.Materials {
		cost, _ := cat.CostPerMass(m.ID, units)
		rows = append(rows, row{ID: m.ID, Name: m.Name, Density: m.Density(units), CostPerMass: cost})
	}
	if o.wantJSON() {
		return printJSON(o.out, rows)
	}

	w := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tDENSITY (%s)\tPRICE ($/%s)\n", units.DensityUnit(), units.MassUnit())
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.2f\n", r.ID, r.Name, r.Density, r.CostPerMass)
	}
	return w.Flush()
}

func (o *MaterialsOptions) runSet(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	cost, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return &model.ValidationError{Field: "cost_per_kg", Message: fmt.Sprintf("%q is not a number", args[1])}
	}
	table := project.LoadMaterialCosts(ctx, s)
	if err := table.Set(args[0], cost); err != nil {
		return err
	}
	if err := project.SaveMaterialCosts(ctx, s, table); err != nil {
		return err
	}
	o.logger.Info("material price saved", zap.String("material", args[0]), zap.Float64("cost_per_kg", cost))
	_, err = fmt.Fprintf(o.out, "%s: $%.2f/kg\n", args[0], cost)
	return err
}

func (o *MaterialsOptions) runReset(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	if _, err := project.ResetMaterialCosts(ctx, s); err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.out, "Material prices reset to defaults")
	return err
}

func (o *MaterialsOptions) runImport(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	cat := model.DefaultCatalog()
	res := importer.Import(args[0], cat, project.LoadMaterialCosts(ctx, s))
	for _, warn := range res.Warnings {
		o.logger.Warn(warn, zap.String("file", args[0]))
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintln(o.out, "error:", e)
		}
		return fmt.Errorf("import of %s failed with %d errors", args[0], len(res.Errors))
	}
	if !o.DryRun {
		if err := project.SaveMaterialCosts(ctx, s, res.Costs); err != nil {
			return err
		}
	}
	for _, id := range res.Updated {
		fmt.Fprintf(o.out, "%s: $%.2f/kg\n", cat.MaterialName(id), res.Costs[id])
	}
	_, err = fmt.Fprintf(o.out, "%d material prices imported\n", len(res.Updated))
	return err
}

func (o *MaterialsOptions) runCompare(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	appCfg := o.AppConfig()
	units, err := resolveUnits(o.Units, appCfg)
	if err != nil {
		return err
	}
	rows, err := o.Catalog(ctx, s, appCfg).CompareMaterials(o.Volume, units, o.Quantity)
	if err != nil {
		return err
	}
	if o.wantJSON() {
		return printJSON(o.out, rows)
	}

	cheapest, _ := model.CheapestMaterial(rows)
	w := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "MATERIAL\tWEIGHT (%s)\tPER PIECE\tTOTAL\t\n", units.MassUnit())
	for _, r := range rows {
		mark := ""
		if r.MaterialID == cheapest.MaterialID {
			mark = "cheapest"
		}
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\t%s\n", r.Name, r.WeightPerPiece, model.FormatMoney(r.CostPerPiece), model.FormatMoney(r.TotalCost), mark)
	}
	return w.Flush()
}

type FinishingOptions struct {
	GlobalOptions
	out io.Writer
}

func NewCmdFinishing() *cobra.Command {
	o := &FinishingOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "finishing",
		Short: "List finishing processes and their per-piece price",
		Args:  cobra.NoArgs,
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

func (o *FinishingOptions) Run(ctx context.Context, args []string) error {
	fin := o.AppConfig().ApplyFinishingCosts(model.DefaultCatalog()).Finishing
	if o.wantJSON() {
		return printJSON(o.out, fin)
	}
	w := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPER PIECE")
	for _, p := range fin {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, model.FormatMoney(p.UnitCost))
	}
	return w.Flush()
}
