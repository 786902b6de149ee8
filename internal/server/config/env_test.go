package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvDatabaseDSN, "postgres://env")
	t.Setenv(EnvAccessTokenTTL, "2h")
	t.Setenv(EnvExternalSessionTTL, "45s")
	t.Setenv(EnvGoogleClientID, "id")
	t.Setenv(EnvGoogleClientSecret, "secret")
	t.Setenv(EnvAllowedOrigins, "https://a, https://b")
	t.Setenv(EnvSeedDemoData, "false")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 45*time.Second, cfg.ExternalSessionValidity)
	assert.True(t, cfg.GoogleConfigured())
	assert.Equal(t, []string{"https://a", "https://b"}, cfg.AllowedOrigins)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, ":8000", cfg.ListenAddr)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HRPORTAL_FRONTEND_URL=https://dotenv.example\n"), 0o600))
	os.Args = []string{"testbin", "-env", path}

	t.Setenv(EnvFrontendURL, "")
	require.NoError(t, os.Unsetenv(EnvFrontendURL))

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "https://dotenv.example", cfg.FrontendURL)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvSeedDemoData, "perhaps")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
