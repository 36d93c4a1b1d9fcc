package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/export"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

type QuoteOptions struct {
	GlobalOptions
	JobFlags
	Customer string
	OutFile  string
	NoSave   bool

	format string
	out    io.Writer
}

func NewCmdQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Produce quote documents and browse saved quotes",
	}
	for _, format := range []string{"html", "pdf", "xlsx"} {
		cmd.AddCommand(newQuoteDocumentCmd(format))
	}
	cmd.AddCommand(newQuoteListCmd())
	return cmd
}

func newQuoteDocumentCmd(format string) *cobra.Command {
	o := &QuoteOptions{GlobalOptions: DefaultGlobalOptions(), format: format}
	cmd := &cobra.Command{
		Use:     format,
		Short:   fmt.Sprintf("Calculate a job and write the quote as %s", format),
		Example: fmt.Sprintf("  machcost quote %s --customer ACME -m aluminum --volume 120 --machine-hours 0.5 -q 20", format),
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

func (o *QuoteOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.JobFlags.Bind(fs)
	fs.StringVar(&o.Customer, "customer", "", "Customer name printed on the quote")
	fs.StringVarP(&o.OutFile, "file", "f", "", "Output file (default quote-<id>.<format> in the current directory)")
	fs.BoolVar(&o.NoSave, "no-save", false, "Do not add the quote to the saved history")
}

func (o *QuoteOptions) Run(ctx context.Context, args []string) error {
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
	q := model.NewQuote(cat, job, res)
	q.Customer = o.Customer

	path := o.OutFile
	if path == "" {
		path = export.FileName(q, o.format)
	}

	switch o.format {
	case "html":
		err = export.ExportQuoteHTML(path, q)
	case "pdf":
		err = export.ExportQuotePDF(path, q)
	case "xlsx":
		var comparison []model.MaterialComparison
		if job.Material.Volume > 0 {
			comparison, _ = cat.CompareMaterials(job.Material.Volume, job.Units(), job.Quantity)
		}
		err = export.ExportQuoteXLSX(path, q, comparison)
	default:
		err = fmt.Errorf("unknown quote format %q", o.format)
	}
	if err != nil {
		return err
	}

	if !o.NoSave {
		if err := project.AppendQuote(o.cfg.QuotesPath(), q, appCfg.MaxSavedQuotes); err != nil {
			o.logger.Warn("failed to save quote", zap.String("quote_id", q.ID), zap.Error(err))
		}
	}
	o.logger.Info("quote written", zap.String("quote_id", q.ID), zap.String("path", path))
	_, err = fmt.Fprintf(o.out, "%s: %s per piece, %s total -> %s\n", q.Title(), model.FormatMoney(res.CostPerPiece), model.FormatMoney(res.TotalLotCost), path)
	return err
}

type QuoteListOptions struct {
	GlobalOptions
	Limit int

	out io.Writer
}

func newQuoteListCmd() *cobra.Command {
	o := &QuoteListOptions{GlobalOptions: DefaultGlobalOptions(), Limit: 20}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved quotes, newest first",
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
	o.GlobalOptions.Bind(cmd.Flags())
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", o.Limit, "Maximum number of quotes to show")
	return cmd
}

func (o *QuoteListOptions) Run(ctx context.Context, args []string) error {
	qs, err := project.LoadQuotes(o.cfg.QuotesPath())
	if err != nil {
		return fmt.Errorf("reading saved quotes: %w", err)
	}
	latest := qs.Latest(o.Limit)
	if o.wantJSON() {
		return printJSON(o.out, latest)
	}
	w := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tCUSTOMER\tMATERIAL\tQTY\tPER PIECE\tTOTAL")
	for _, q := range latest {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", q.ID, q.CreatedAt, q.Customer, q.MaterialName, q.Quantity,
			model.FormatMoney(q.Result.CostPerPiece), model.FormatMoney(q.Result.TotalLotCost))
	}
	return w.Flush()
}
