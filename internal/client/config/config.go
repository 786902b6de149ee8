package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/client/transport"
)

// Config holds runtime settings for the HR portal console.
//
// Durations are time.Duration values; RequestTimeout of zero means calls
// are only bounded by their context.
type Config struct {
	APIBaseURL            string
	TokenDBPath           string
	SearchDebounce        time.Duration
	SearchLimit           int
	SearchCacheSize       int
	SearchCacheTTL        time.Duration
	RequestTimeout        time.Duration
	CredentialPolicy      string
	AuthorizedSearchRoles []string
	LogLevel              string
	StartRoute            string
	// Fragment is the location fragment the console was entered with,
	// e.g. "session_id=..." after an external login.
	Fragment string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.TokenDBPath = "hrportal.db"
	c.SearchDebounce = 300 * time.Millisecond
	c.SearchLimit = 10
	c.SearchCacheSize = 128
	c.SearchCacheTTL = 30 * time.Second
	c.RequestTimeout = 0
	c.CredentialPolicy = string(transport.PolicyBearerAndCookie)
	c.AuthorizedSearchRoles = []string{"admin", "hr_admin", "hr_manager"}
	c.LogLevel = "info"
	c.StartRoute = "/dashboard"
	c.Fragment = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded from a .env file), JSON and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the console cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if _, err := transport.ParsePolicy(c.CredentialPolicy); err != nil {
		return err
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	if c.SearchDebounce < 0 || c.RequestTimeout < 0 || c.SearchCacheTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
