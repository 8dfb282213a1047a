package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gatherkit")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 25, cfg.Database.MaxConnections)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "development", cfg.Environment)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gatherkit")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "50")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 50, cfg.Database.MaxConnections)
	require.Equal(t, "production", cfg.Environment)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gatherkit")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "bogus", Format: "json"})
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
