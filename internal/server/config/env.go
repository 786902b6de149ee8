package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/hrportal/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvListenAddr         = "HRPORTAL_LISTEN_ADDR"
	EnvDatabaseDSN        = "HRPORTAL_DATABASE_DSN"
	EnvSecretKey          = "HRPORTAL_SECRET_KEY"
	EnvAccessTokenTTL     = "HRPORTAL_ACCESS_TOKEN_TTL"
	EnvExternalSessionTTL = "HRPORTAL_EXTERNAL_SESSION_TTL"
	EnvFrontendURL        = "HRPORTAL_FRONTEND_URL"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvGoogleRedirectURL  = "GOOGLE_REDIRECT_URL"
	EnvCookieName         = "HRPORTAL_COOKIE_NAME"
	EnvAllowedOrigins     = "HRPORTAL_ALLOWED_ORIGINS"
	EnvLogLevel           = "HRPORTAL_LOG_LEVEL"
	EnvSeedDemoData       = "HRPORTAL_SEED_DEMO_DATA"
)

// parseEnv overlays Config with environment variables, after loading the
// dotenv file named by -env if there is one. Panics on unreadable files or
// malformed values.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	str := map[string]*string{
		EnvListenAddr:         &cfg.ListenAddr,
		EnvDatabaseDSN:        &cfg.DatabaseDSN,
		EnvSecretKey:          &cfg.SecretKey,
		EnvFrontendURL:        &cfg.FrontendURL,
		EnvGoogleClientID:     &cfg.GoogleClientID,
		EnvGoogleClientSecret: &cfg.GoogleClientSecret,
		EnvGoogleRedirectURL:  &cfg.GoogleRedirectURL,
		EnvCookieName:         &cfg.CookieName,
		EnvLogLevel:           &cfg.LogLevel,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvAccessTokenTTL); ok {
		cfg.AccessTokenValidityDuration = mustDuration(EnvAccessTokenTTL, v)
	}
	if v, ok := os.LookupEnv(EnvExternalSessionTTL); ok {
		cfg.ExternalSessionValidity = mustDuration(EnvExternalSessionTTL, v)
	}
	if v, ok := os.LookupEnv(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvSeedDemoData); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(EnvSeedDemoData + ": " + err.Error())
		}
		cfg.SeedDemoData = b
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
