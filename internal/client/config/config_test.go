package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.APIBaseURL)
	assert.Equal(t, "hrportal.db", c.TokenDBPath)
	assert.Equal(t, 300*time.Millisecond, c.SearchDebounce)
	assert.Equal(t, 10, c.SearchLimit)
	assert.Equal(t, 128, c.SearchCacheSize)
	assert.Equal(t, 30*time.Second, c.SearchCacheTTL)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "bearer+cookie", c.CredentialPolicy)
	assert.Equal(t, []string{"admin", "hr_admin", "hr_manager"}, c.AuthorizedSearchRoles)
	assert.Equal(t, "/dashboard", c.StartRoute)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 10, cfg.SearchLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https base", mutate: func(c *Config) { c.APIBaseURL = "https://hr.example.com/api" }},
		{name: "no scheme", mutate: func(c *Config) { c.APIBaseURL = "localhost:8000" }, wantErr: true},
		{name: "ftp scheme", mutate: func(c *Config) { c.APIBaseURL = "ftp://host" }, wantErr: true},
		{name: "unknown policy", mutate: func(c *Config) { c.CredentialPolicy = "magic" }, wantErr: true},
		{name: "zero limit", mutate: func(c *Config) { c.SearchLimit = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"admin", "hr_admin"}, splitList(" admin, ,hr_admin "))
	assert.Nil(t, splitList(""))
}
