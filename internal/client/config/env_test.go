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

	t.Setenv(EnvAPIBaseURL, "http://env-host:8000")
	t.Setenv(EnvSearchDebounce, "120ms")
	t.Setenv(EnvSearchLimit, "7")
	t.Setenv(EnvRequestTimeout, "3s")
	t.Setenv(EnvSearchRoles, "admin, hr_manager")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://env-host:8000", cfg.APIBaseURL)
	assert.Equal(t, 120*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 7, cfg.SearchLimit)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"admin", "hr_manager"}, cfg.AuthorizedSearchRoles)
	assert.Equal(t, "bearer+cookie", cfg.CredentialPolicy)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HRPORTAL_TOKEN_DB=/tmp/tokens.db\nHRPORTAL_LOG_LEVEL=debug\n"), 0o600))
	os.Args = []string{"testbin", "-env", path}

	// The process environment wins over the file.
	t.Setenv(EnvLogLevel, "warn")
	// Register cleanup for the variable the file sets.
	t.Setenv(EnvTokenDBPath, "")
	require.NoError(t, os.Unsetenv(EnvTokenDBPath))

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "/tmp/tokens.db", cfg.TokenDBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvSearchDebounce, "soon")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
