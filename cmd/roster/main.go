// Command roster serves the parking shift roster and offers a few operator
// commands around it. main only wires dependencies together; no business
// logic belongs here.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "Parking shift roster built from the shared arrivals spreadsheet",
		Long: `roster reads the arrival and departure rows of the shared spreadsheet,
builds the roster of one day for the parking shift, and saves edited rosters
into tabs named after the date (DD.MM.YYYY).

Configuration comes from environment variables; see "roster serve --help".`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newShowCmd(), newMigrateCmd())
	return root
}
