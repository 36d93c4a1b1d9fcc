package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the machcost command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machcost [command] [flags]",
		Short: "machcost estimates CNC machining costs per piece and per lot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(NewCmdEstimate())
	cmd.AddCommand(NewCmdVolume())
	cmd.AddCommand(NewCmdBatches())
	cmd.AddCommand(NewCmdConvert())
	cmd.AddCommand(NewCmdMaterials())
	cmd.AddCommand(NewCmdFinishing())
	cmd.AddCommand(NewCmdQuote())
	cmd.AddCommand(NewCmdLeadTime())
	cmd.AddCommand(NewCmdConsent())
	cmd.AddCommand(NewCmdData())
	cmd.AddCommand(NewCmdServe())
	return cmd
}
