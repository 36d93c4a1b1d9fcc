package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MachCost/internal/model"
)

const dateLayout = "2006-01-02"

type LeadTimeOptions struct {
	GlobalOptions
	Start  string
	Amount int
	Unit   string

	now func() time.Time
	out io.Writer
}

func NewCmdLeadTime() *cobra.Command {
	o := &LeadTimeOptions{GlobalOptions: DefaultGlobalOptions(), Unit: "days", now: time.Now}
	cmd := &cobra.Command{
		Use:     "leadtime",
		Short:   "Calculate a delivery date from a lead time",
		Example: "  machcost leadtime --amount 3 --unit weeks\n  machcost leadtime --start 2026-01-31 --amount 1 --unit months",
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
	o.GlobalOptions.Bind(cmd.Flags())
	cmd.Flags().StringVar(&o.Start, "start", "", "Start date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVarP(&o.Amount, "amount", "n", 0, "Lead time amount")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", o.Unit, "days, weeks, months or years")
	return cmd
}

func (o *LeadTimeOptions) Run(ctx context.Context, args []string) error {
	start := o.now()
	if o.Start != "" {
		parsed, err := time.Parse(dateLayout, o.Start)
		if err != nil {
			return &model.ValidationError{Field: "start", Message: "must be a date formatted as " + dateLayout}
		}
		start = parsed
	}
	unit, err := model.ParseLeadTimeUnit(o.Unit)
	if err != nil {
		return err
	}
	delivery, err := model.AddLeadTime(start, o.Amount, unit)
	if err != nil {
		return err
	}
	if o.wantJSON() {
		return printJSON(o.out, map[string]string{
			"start":    start.Format(dateLayout),
			"delivery": delivery.Format(dateLayout),
		})
	}
	_, err = fmt.Fprintf(o.out, "Delivery: %s (%s)\n", delivery.Format(dateLayout), delivery.Weekday())
	return err
}
