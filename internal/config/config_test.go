package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/parking-roster/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "SHEET_BACKEND", "SPREADSHEET_ID",
		"GOOGLE_CREDENTIALS_FILE", "WORKBOOK_PATH", "DATABASE_URL", "SOURCE_TAB",
		"SOURCE_COLUMNS", "SESSION_TTL", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required SPREADSHEET_ID is provided.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPREADSHEET_ID", "1AbCdEf")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:8080"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendGoogle, cfg.Backend)
	require.Equal(t, "1AbCdEf", cfg.SpreadsheetID)
	require.Equal(t, "service_account.json", cfg.CredentialsFile)
	require.Equal(t, "Data 2026", cfg.SourceTab)
	require.Empty(t, cfg.SourceColumns)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEET_BACKEND", "xlsx")
	t.Setenv("WORKBOOK_PATH", "/data/roster.xlsx")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SOURCE_TAB", "Data 2027")
	t.Setenv("SOURCE_COLUMNS", "name=K:Jméno")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendWorkbook, cfg.Backend)
	require.Equal(t, "/data/roster.xlsx", cfg.WorkbookPath)
	require.Equal(t, "Data 2027", cfg.SourceTab)
	require.Equal(t, "name=K:Jméno", cfg.SourceColumns)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

// TestLoad_missingRequired verifies that each backend names the variable it
// needs when that variable is not set.
func TestLoad_missingRequired(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"", "SPREADSHEET_ID"},
		{"google", "SPREADSHEET_ID"},
		{"xlsx", "WORKBOOK_PATH"},
		{"postgres", "DATABASE_URL"},
	}
	for _, tc := range tests {
		t.Run(tc.want+"/"+tc.backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SHEET_BACKEND", tc.backend)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad_unknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEET_BACKEND", "csv")

	_, err := config.Load()

	require.ErrorContains(t, err, "SHEET_BACKEND")
}

func TestLoad_badSessionTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPREADSHEET_ID", "1AbCdEf")
	t.Setenv("SESSION_TTL", "forever")

	_, err := config.Load()

	require.ErrorContains(t, err, "SESSION_TTL")
}

func TestLoad_badMaxBodyBytes(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPREADSHEET_ID", "1AbCdEf")
	t.Setenv("MAX_BODY_BYTES", "1MB")

	_, err := config.Load()

	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
