// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend selects where the shared spreadsheet lives.
type Backend string

// Supported spreadsheet backends.
const (
	BackendGoogle   Backend = "google"
	BackendWorkbook Backend = "xlsx"
	BackendPostgres Backend = "postgres"
)

// Config holds all configuration values for the roster server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8080"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Backend is the spreadsheet backend. Defaults to google.
	Backend Backend

	// SpreadsheetID identifies the Google spreadsheet. Required for google.
	SpreadsheetID string

	// CredentialsFile is the service-account JSON key used for google.
	// Defaults to "service_account.json".
	CredentialsFile string

	// WorkbookPath is the .xlsx file used for xlsx. Required for xlsx.
	WorkbookPath string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// SourceTab is the tab holding the arrival/departure rows.
	// Defaults to "Data 2026".
	SourceTab string

	// SourceColumns overrides the source column layout, for example
	// "name=K:Jméno,plate=N". Empty keeps the default layout.
	SourceColumns string

	// SessionTTL is how long an idle session keeps its cached rows.
	// Defaults to 12h.
	SessionTTL time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080")),
		Backend:         Backend(getEnv("SHEET_BACKEND", string(BackendGoogle))),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "service_account.json"),
		WorkbookPath:    os.Getenv("WORKBOOK_PATH"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SourceTab:       getEnv("SOURCE_TAB", "Data 2026"),
		SourceColumns:   os.Getenv("SOURCE_COLUMNS"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "12h")); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL: must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}

	var missing []string

	switch cfg.Backend {
	case BackendGoogle:
		if cfg.SpreadsheetID == "" {
			missing = append(missing, "SPREADSHEET_ID")
		}
	case BackendWorkbook:
		if cfg.WorkbookPath == "" {
			missing = append(missing, "WORKBOOK_PATH")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("SHEET_BACKEND: unknown backend %q (want google, xlsx or postgres)", cfg.Backend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
