package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string         backend base url
//	-db string        token database path (":memory:" keeps nothing on disk)
//	-debounce int     search debounce (milliseconds)
//	-limit int        search result limit
//	-timeout int      request timeout (seconds, 0 = none)
//	-policy string    credential policy: bearer+cookie, bearer or cookie
//	-roles string     comma-separated roles allowed to search
//	-log string       log level
//	-route string     route to start on
//	-fragment string  location fragment, e.g. session_id=...
//
// os.Args is filtered through flagx.FilterArgs so -c/-config and -env are
// left to their own loaders.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-db", "-debounce", "-limit", "-timeout", "-policy", "-roles", "-log", "-route", "-fragment",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base url")
	fs.StringVar(&cfg.TokenDBPath, "db", cfg.TokenDBPath, "token database path")
	debounce := fs.Int("debounce", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")
	fs.IntVar(&cfg.SearchLimit, "limit", cfg.SearchLimit, "search result limit")
	timeout := fs.Int("timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.CredentialPolicy, "policy", cfg.CredentialPolicy, "credential policy")
	roles := fs.String("roles", strings.Join(cfg.AuthorizedSearchRoles, ","), "roles allowed to search")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.StartRoute, "route", cfg.StartRoute, "route to start on")
	fs.StringVar(&cfg.Fragment, "fragment", cfg.Fragment, "location fragment")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["debounce"] {
		cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
	}
	if set["timeout"] {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	if set["roles"] {
		cfg.AuthorizedSearchRoles = splitList(*roles)
	}
}
