package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

type ConsentOptions struct {
	GlobalOptions
	out io.Writer
}

func NewCmdConsent() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consent",
		Short: "Show or record the optional-content consent choice",
	}
	cmd.AddCommand(
		newConsentCmd("show", "Show the recorded choice", cobra.NoArgs, (*ConsentOptions).runShow),
		newConsentCmd("set all|required", "Record a choice", cobra.ExactArgs(1), (*ConsentOptions).runSet),
	)
	return cmd
}

func newConsentCmd(use, short string, args cobra.PositionalArgs, run func(*ConsentOptions, context.Context, []string) error) *cobra.Command {
	o := &ConsentOptions{GlobalOptions: DefaultGlobalOptions()}
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

func (o *ConsentOptions) runShow(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	c, ok, err := project.LoadConsent(ctx, s)
	if err != nil {
		return err
	}
	if o.wantJSON() {
		return printJSON(o.out, map[string]any{"decided": ok, "consent": c})
	}
	if !ok {
		_, err = fmt.Fprintln(o.out, "No choice recorded")
		return err
	}
	_, err = fmt.Fprintf(o.out, "%s (since %s)\n", c.Level, c.Timestamp.Format(time.RFC3339))
	return err
}

func (o *ConsentOptions) runSet(ctx context.Context, args []string) error {
	level, err := model.ParseConsentLevel(args[0])
	if err != nil {
		return err
	}
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	c, err := project.SaveConsent(ctx, s, level, time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.out, "Consent recorded: %s\n", c.Level)
	return err
}
