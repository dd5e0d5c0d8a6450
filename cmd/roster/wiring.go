package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/parking-roster/internal/config"
	"github.com/pkordes/parking-roster/internal/repo"
	"github.com/pkordes/parking-roster/internal/roster"
	"github.com/pkordes/parking-roster/internal/service"
)

// newLogger returns the JSON logger used by every command. Unknown levels
// fall back to info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openSheets connects the configured spreadsheet backend. The returned
// close function releases its resources and is never nil.
func openSheets(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.SheetRepo, func(), error) {
	switch cfg.Backend {
	case config.BackendGoogle:
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read google credentials: %w", err)
		}
		sheets, err := repo.NewGoogleSheetRepo(ctx, cfg.SpreadsheetID, creds)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using google sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
		return sheets, func() {}, nil

	case config.BackendWorkbook:
		log.Info("using workbook backend", "path", cfg.WorkbookPath)
		return repo.NewWorkbookSheetRepo(cfg.WorkbookPath), func() {}, nil

	case config.BackendPostgres:
		// New does not open connections; the Ping below does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		log.Info("using postgres backend")
		return repo.NewPostgresSheetRepo(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown sheet backend %q", cfg.Backend)
	}
}

// newRosterService builds the RosterService for cfg on top of sheets.
func newRosterService(cfg config.Config, sheets repo.SheetRepo, log *slog.Logger) (*service.RosterService, error) {
	layout, err := roster.ParseLayout(cfg.SourceColumns)
	if err != nil {
		return nil, fmt.Errorf("SOURCE_COLUMNS: %w", err)
	}
	return service.NewRosterService(sheets, cfg.SourceTab, layout, log), nil
}
