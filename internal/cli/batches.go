package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/MachCost/internal/model"
)

type BatchesOptions struct {
	GlobalOptions
	Quantity int
	Setups   int

	out io.Writer
}

func NewCmdBatches() *cobra.Command {
	o := &BatchesOptions{GlobalOptions: DefaultGlobalOptions(), Quantity: 1, Setups: 1}
	cmd := &cobra.Command{
		Use:     "batches",
		Short:   "Split a lot into batches, one per setup",
		Example: "  machcost batches -q 7 --setups 2",
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

func (o *BatchesOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.IntVarP(&o.Quantity, "quantity", "q", o.Quantity, "Number of pieces")
	fs.IntVar(&o.Setups, "setups", o.Setups, "Number of setups")
}

func (o *BatchesOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Quantity < 1 {
		return &model.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if o.Setups < 1 {
		return &model.ValidationError{Field: "setups", Message: "must be at least 1"}
	}
	return nil
}

func (o *BatchesOptions) Run(ctx context.Context, args []string) error {
	b := model.DistributeBatches(o.Quantity, o.Setups)
	if o.wantJSON() {
		return printJSON(o.out, b)
	}
	_, err := fmt.Fprintln(o.out, model.FormatBatches(b))
	return err
}
