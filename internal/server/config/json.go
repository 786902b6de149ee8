package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hrportal/internal/flagx"
	"github.com/dmitrijs2005/hrportal/internal/timex"
)

// JsonConfig is the DTO read from the -c/-config file. Pointer fields keep
// absent keys from overwriting earlier sources; durations accept "24h" or
// integer nanoseconds.
type JsonConfig struct {
	ListenAddr                  *string         `json:"listen_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	ExternalSessionValidity     *timex.Duration `json:"external_session_validity"`
	FrontendURL                 *string         `json:"frontend_url"`
	GoogleClientID              *string         `json:"google_client_id"`
	GoogleClientSecret          *string         `json:"google_client_secret"`
	GoogleRedirectURL           *string         `json:"google_redirect_url"`
	CookieName                  *string         `json:"cookie_name"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	LogLevel                    *string         `json:"log_level"`
	SeedDemoData                *bool           `json:"seed_demo_data"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Panics if the file cannot be read or parsed.
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

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.FrontendURL, jc.FrontendURL)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setString(&cfg.GoogleRedirectURL, jc.GoogleRedirectURL)
	setString(&cfg.CookieName, jc.CookieName)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.ExternalSessionValidity != nil {
		cfg.ExternalSessionValidity = jc.ExternalSessionValidity.Duration
	}
	if jc.AllowedOrigins != nil {
		cfg.AllowedOrigins = jc.AllowedOrigins
	}
	if jc.SeedDemoData != nil {
		cfg.SeedDemoData = *jc.SeedDemoData
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
