package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hrportal/internal/flagx"
	"github.com/dmitrijs2005/hrportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value; durations accept "300ms"
// or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL            *string         `json:"api_base_url"`
	TokenDBPath           *string         `json:"token_db_path"`
	SearchDebounce        *timex.Duration `json:"search_debounce"`
	SearchLimit           *int            `json:"search_limit"`
	SearchCacheSize       *int            `json:"search_cache_size"`
	SearchCacheTTL        *timex.Duration `json:"search_cache_ttl"`
	RequestTimeout        *timex.Duration `json:"request_timeout"`
	CredentialPolicy      *string         `json:"credential_policy"`
	AuthorizedSearchRoles []string        `json:"authorized_search_roles"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Absent keys keep their current values. Panics on read or unmarshal
// errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.TokenDBPath != nil {
		cfg.TokenDBPath = *jc.TokenDBPath
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.SearchLimit != nil {
		cfg.SearchLimit = *jc.SearchLimit
	}
	if jc.SearchCacheSize != nil {
		cfg.SearchCacheSize = *jc.SearchCacheSize
	}
	if jc.SearchCacheTTL != nil {
		cfg.SearchCacheTTL = jc.SearchCacheTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CredentialPolicy != nil {
		cfg.CredentialPolicy = *jc.CredentialPolicy
	}
	if jc.AuthorizedSearchRoles != nil {
		cfg.AuthorizedSearchRoles = jc.AuthorizedSearchRoles
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
