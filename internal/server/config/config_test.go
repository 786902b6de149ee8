package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.ListenAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, c.ExternalSessionValidity)
	assert.Equal(t, "http://localhost:3000", c.FrontendURL)
	assert.Equal(t, "hrportal_session", c.CookieName)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.False(t, c.GoogleConfigured())
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, ":8000", c.ListenAddr)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
}

func TestLoadConfig_FlagsWinOverEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", ":9999"}
	t.Setenv(EnvListenAddr, ":7777")
	t.Setenv(EnvSecretKey, "from-env")

	c := LoadConfig()

	assert.Equal(t, ":9999", c.ListenAddr)
	assert.Equal(t, "from-env", c.SecretKey)
}

func TestGoogleConfigured(t *testing.T) {
	c := Config{GoogleClientID: "id"}
	assert.False(t, c.GoogleConfigured())
	c.GoogleClientSecret = "secret"
	assert.True(t, c.GoogleConfigured())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	c := base()
	c.SecretKey = ""
	assert.Error(t, c.Validate())

	c = base()
	c.ListenAddr = ""
	assert.Error(t, c.Validate())

	c = base()
	c.ExternalSessionValidity = 0
	assert.Error(t, c.Validate())

	c = base()
	c.CookieName = ""
	assert.Error(t, c.Validate())
}
