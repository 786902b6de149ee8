// Package config loads runtime configuration for the HR portal console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (HRPORTAL_*), optionally seeded from a dotenv
//     file given with -env.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations may be strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "token_db_path": "hrportal.db",
//	  "search_debounce": "300ms",
//	  "search_limit": 10,
//	  "search_cache_ttl": "30s",
//	  "request_timeout": "0s",
//	  "credential_policy": "bearer+cookie",
//	  "authorized_search_roles": ["admin", "hr_admin", "hr_manager"],
//	  "log_level": "info"
//	}
package config
