// Package cmd defines and implements the CLI commands for the harvester executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvester",
		Short: "Harvests RFP and grant-call documents from configured portals",
		Long: `harvester periodically visits a fixed set of institutional landing
pages, downloads newly published RFP and grant-call documents (PDF and Word),
extracts issue dates and deadlines, and maintains a deduplicated JSON catalog
of everything discovered.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; defaults and environment apply otherwise)")

	cmd.AddCommand(newHarvestCmd())
	cmd.AddCommand(newSourcesCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
