// Package config handles configuration for the reference backend,
// including defaults, environment, JSON overlay and command-line flags.
package config

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/common"
)

// Config holds runtime settings for the HR portal backend.
//
// Fields:
//   - ListenAddr: bind address for the REST endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps everything in memory.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use
//     the default outside development.
//   - AccessTokenValidityDuration: access token and session cookie lifetime.
//   - ExternalSessionValidity: how long a one-time external session id may
//     be exchanged after the Google callback.
//   - FrontendURL: where the Google callback redirects to.
//   - GoogleClientID / GoogleClientSecret / GoogleRedirectURL: OAuth client;
//     external login is disabled while the id or secret is empty.
//   - CookieName: name of the session cookie.
//   - AllowedOrigins: CORS origins allowed to send credentials.
type Config struct {
	ListenAddr                  string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ExternalSessionValidity     time.Duration
	FrontendURL                 string
	GoogleClientID              string
	GoogleClientSecret          string
	GoogleRedirectURL           string
	CookieName                  string
	AllowedOrigins              []string
	LogLevel                    string
	SeedDemoData                bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.ExternalSessionValidity = 5 * time.Minute
	c.FrontendURL = "http://localhost:3000"
	c.GoogleClientID = ""
	c.GoogleClientSecret = ""
	c.GoogleRedirectURL = "http://localhost:8000/auth/google/callback"
	c.CookieName = common.SessionCookieName
	c.AllowedOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
	c.SeedDemoData = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// GoogleConfigured reports whether external login can be offered.
func (c *Config) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Validate reports settings the backend cannot start with.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address must not be empty")
	}
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	if c.AccessTokenValidityDuration <= 0 || c.ExternalSessionValidity <= 0 {
		return errors.New("token validity durations must be positive")
	}
	if c.CookieName == "" {
		return errors.New("cookie name must not be empty")
	}
	return nil
}
