package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MachCost/internal/project"
)

type DataOptions struct {
	GlobalOptions
	out io.Writer
}

// NewCmdData groups backup and restore of preferences, prices and quotes.
func NewCmdData() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Back up or restore preferences, material prices and saved quotes",
	}
	cmd.AddCommand(
		newDataCmd("export FILE", "Write a JSON backup", (*DataOptions).runExport),
		newDataCmd("import FILE", "Restore a JSON backup, replacing current data", (*DataOptions).runImport),
	)
	return cmd
}

func newDataCmd(use, short string, run func(*DataOptions, context.Context, []string) error) *cobra.Command {
	o := &DataOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
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

func (o *DataOptions) runExport(ctx context.Context, args []string) error {
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	quotes, err := project.LoadQuotes(o.cfg.QuotesPath())
	if err != nil {
		return fmt.Errorf("reading saved quotes: %w", err)
	}
	if err := project.ExportAllData(args[0], o.AppConfig(), project.LoadMaterialCosts(ctx, s), quotes); err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.out, "Backup written to %s (%d quotes)\n", args[0], len(quotes.Quotes))
	return err
}

func (o *DataOptions) runImport(ctx context.Context, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(o.cfg.AppConfigPath(), backup.Config); err != nil {
		return err
	}
	if err := project.SaveMaterialCosts(ctx, s, backup.MaterialCosts); err != nil {
		return err
	}
	if err := project.SaveQuotes(o.cfg.QuotesPath(), backup.Quotes); err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.out, "Restored backup from %s (version %s, %d quotes)\n", args[0], backup.Version, len(backup.Quotes.Quotes))
	return err
}
