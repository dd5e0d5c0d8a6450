package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pkordes/parking-roster/internal/config"
	"github.com/pkordes/parking-roster/internal/handler"
	"github.com/pkordes/parking-roster/internal/middleware"
	"github.com/pkordes/parking-roster/internal/service"
	"github.com/pkordes/parking-roster/internal/session"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the roster web server",
		Long: `Start the HTTP server with the roster page at / and the JSON API at /api.

Environment:
  SHEET_BACKEND            google (default), xlsx or postgres
  SPREADSHEET_ID           Google spreadsheet id (google)
  GOOGLE_CREDENTIALS_FILE  service-account key (default service_account.json)
  WORKBOOK_PATH            .xlsx file (xlsx)
  DATABASE_URL             Postgres connection string (postgres)
  SOURCE_TAB               tab with the source rows (default "Data 2026")
  SOURCE_COLUMNS           layout overrides, e.g. "name=K:Jméno,plate=N"
  PORT, LOG_LEVEL, CORS_ORIGINS, SESSION_TTL, MAX_BODY_BYTES`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// The flag wins over PORT when given explicitly.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "TCP port to listen on (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Spreadsheet ------------------------------------------------------
	sheets, closeSheets, err := openSheets(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open spreadsheet backend", "error", err)
		return err
	}
	defer closeSheets()

	rosterSvc, err := newRosterService(cfg, sheets, logger)
	if err != nil {
		logger.Error("invalid source layout", "error", err)
		return err
	}
	exportSvc := service.NewExportService(rosterSvc)
	sessions := session.NewManager(cfg.SessionTTL, logger)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(rosterSvc, exportSvc, sessions, logger).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Reading the source tab from Google can take a few seconds on a cold
	// cache, hence the longer write timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error("server error", "error", err)
		return err
	case <-stop:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
