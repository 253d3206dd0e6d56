// Package commands wires the aida CLI.
package commands

import (
	"github.com/oakensoul/aida"
	"github.com/oakensoul/aida/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the aida CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "aida",
		Short: "Scaffold generator and updater for Claude Code plugins",
		Long: `aida generates Claude Code plugin scaffolds and keeps them in sync
with its templates as they evolve.

• Scaffold python, node or shell plugins with sensible defaults
• Scan existing plugins for drift against the current templates
• Apply per-file update strategies with backups and atomic writes`,
		Version: aida.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
