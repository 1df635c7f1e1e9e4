package app

import (
	"fmt"

	"github.com/spf13/cobra"

	exportcmd "github.com/costops/fleetbook/cmd/fleetbook/cmd/export"
	reconcilecmd "github.com/costops/fleetbook/cmd/fleetbook/cmd/reconcile"
	runcmd "github.com/costops/fleetbook/cmd/fleetbook/cmd/run"
	"github.com/costops/fleetbook/internal/cmd/globals"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(reconcilecmd.NewCommand(a))
	rootCmd.AddCommand(exportcmd.NewCommand(a))
	rootCmd.AddCommand(runcmd.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fleetbook %s (commit %s, built %s)\n",
				a.version, a.commit, a.date)
			return err
		},
	}
}

// Defaults exposes configured defaults to command constructors.
func (a *App) Defaults() globals.Defaults {
	return globals.Defaults{
		MatchThreshold:   a.config.MatchThreshold,
		ExcludePool:      a.config.ExcludePool,
		OutputDir:        a.config.OutputDir,
		InvoiceEncoding:  a.config.InvoiceEncoding,
		InvoiceSeparator: a.config.InvoiceSeparator,
		InvoiceMetaRows:  a.config.InvoiceMetaRows,
	}
}
