package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/parking-roster/internal/config"
	"github.com/pkordes/parking-roster/internal/roster"
	"github.com/pkordes/parking-roster/internal/session"
)

func newShowCmd() *cobra.Command {
	var (
		date  string
		saved bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the roster of a day in the terminal",
		Long: `Show builds the roster of one day from the source tab and prints it as a
table. With --saved it prints the snapshot tab saved for that day instead,
including the shift group headers.

Examples:
  # Today's roster
  roster show

  # The roster of 1 June 2025
  roster show --date 01.06.2025

  # What was saved for that day
  roster show --date 2025-06-01 --saved`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, ok := roster.ParseDate(date)
			if !ok {
				return fmt.Errorf("invalid date %q: want DD.MM.YYYY or YYYY-MM-DD", date)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runShow(cmd, cfg, day, saved)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", time.Now().Format("2006-01-02"), "Day to show (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().BoolVar(&saved, "saved", false, "Show the saved snapshot tab instead of the live roster")
	return cmd
}

func runShow(cmd *cobra.Command, cfg config.Config, day time.Time, saved bool) error {
	ctx := cmd.Context()
	// Logs go to stderr so the table on stdout stays clean.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	sheets, closeSheets, err := openSheets(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSheets()

	svc, err := newRosterService(cfg, sheets, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if saved {
		table, err := svc.Snapshot(ctx, day)
		if err != nil {
			return err
		}
		return writeTitled(out, "Uloženo "+roster.FormatDate(day), renderPrintTable(table))
	}

	table, err := svc.Roster(ctx, session.NewRowCache(), day)
	if err != nil {
		return err
	}
	if table.Empty() {
		_, err := fmt.Fprintf(out, "Pro datum %s nejsou ve zdrojovém listu žádné záznamy.\n", roster.FormatDate(day))
		return err
	}
	return writeTitled(out, "Směna "+roster.FormatDate(day), renderRoster(table))
}

func writeTitled(w io.Writer, title, body string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(title), body)
	return err
}
