package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/hrportal/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL       = "HRPORTAL_API_BASE_URL"
	EnvTokenDBPath      = "HRPORTAL_TOKEN_DB"
	EnvSearchDebounce   = "HRPORTAL_SEARCH_DEBOUNCE"
	EnvSearchLimit      = "HRPORTAL_SEARCH_LIMIT"
	EnvSearchCacheTTL   = "HRPORTAL_SEARCH_CACHE_TTL"
	EnvRequestTimeout   = "HRPORTAL_REQUEST_TIMEOUT"
	EnvCredentialPolicy = "HRPORTAL_CREDENTIAL_POLICY"
	EnvSearchRoles      = "HRPORTAL_SEARCH_ROLES"
	EnvLogLevel         = "HRPORTAL_LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. When -env names a
// dotenv file its entries are loaded first without replacing variables the
// process already has. Durations use time.ParseDuration syntax ("300ms").
// Panics on unreadable files or malformed values.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvTokenDBPath); ok {
		cfg.TokenDBPath = v
	}
	if v, ok := os.LookupEnv(EnvSearchDebounce); ok {
		cfg.SearchDebounce = mustDuration(EnvSearchDebounce, v)
	}
	if v, ok := os.LookupEnv(EnvSearchLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(EnvSearchLimit + ": " + err.Error())
		}
		cfg.SearchLimit = n
	}
	if v, ok := os.LookupEnv(EnvSearchCacheTTL); ok {
		cfg.SearchCacheTTL = mustDuration(EnvSearchCacheTTL, v)
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(EnvRequestTimeout, v)
	}
	if v, ok := os.LookupEnv(EnvCredentialPolicy); ok {
		cfg.CredentialPolicy = v
	}
	if v, ok := os.LookupEnv(EnvSearchRoles); ok {
		cfg.AuthorizedSearchRoles = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}
