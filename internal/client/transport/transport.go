// Package transport builds the HTTP client every backend call goes through.
//
// Credentials are attached in one place according to a Policy: the bearer
// token read from the token store, the session cookie kept in a cookie jar,
// or both at once. The backend accepts either, and the default sends both.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/logging"
	"github.com/google/uuid"
)

type Policy string

const (
	PolicyBearerAndCookie Policy = "bearer+cookie"
	PolicyBearer          Policy = "bearer"
	PolicyCookie          Policy = "cookie"
)

// ParsePolicy accepts the config spelling of a policy. Empty selects the
// default.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyBearerAndCookie, nil
	case PolicyBearerAndCookie, PolicyBearer, PolicyCookie:
		return p, nil
	default:
		return "", fmt.Errorf("unknown credential policy %q", s)
	}
}

func (p Policy) Bearer() bool {
	return p == PolicyBearerAndCookie || p == PolicyBearer
}

func (p Policy) Cookies() bool {
	return p == PolicyBearerAndCookie || p == PolicyCookie
}

// TokenSource yields the current access token; "" means none is stored.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Options struct {
	Policy Policy
	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration
	// Base is the underlying RoundTripper; nil selects http.DefaultTransport.
	Base   http.RoundTripper
	Logger logging.Logger
}

// New returns an *http.Client that applies the credential policy to every
// request it sends.
func New(tokens TokenSource, opts Options) (*http.Client, error) {
	if opts.Policy == "" {
		opts.Policy = PolicyBearerAndCookie
	}
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	c := &http.Client{
		Timeout: opts.Timeout,
		Transport: &credentialsRoundTripper{
			next:   opts.Base,
			tokens: tokens,
			policy: opts.Policy,
			logger: opts.Logger.With("component", "transport"),
		},
	}

	if opts.Policy.Cookies() {
		jar, err := newSessionJar()
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.Jar = jar
	}
	return c, nil
}

// sessionJar is a cookie jar that can be emptied while the client is in use.
type sessionJar struct {
	mu  sync.Mutex
	jar *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &sessionJar{jar: jar}, nil
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

func (j *sessionJar) reset() {
	jar, _ := cookiejar.New(nil) // only fails on a bad PublicSuffixList
	j.mu.Lock()
	j.jar = jar
	j.mu.Unlock()
}

// ClearCookies drops every cookie held by a client built with New. Clients
// without a jar are left alone.
func ClearCookies(c *http.Client) {
	if c == nil {
		return
	}
	if j, ok := c.Jar.(*sessionJar); ok {
		j.reset()
	}
}

type credentialsRoundTripper struct {
	next   http.RoundTripper
	tokens TokenSource
	policy Policy
	logger logging.Logger
}

func (rt *credentialsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	requestID := r.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(common.RequestIDHeaderName, requestID)
	}
	ctx = logging.WithRequestID(ctx, requestID)

	if rt.policy.Bearer() && rt.tokens != nil && r.Header.Get(common.AuthorizationHeaderName) == "" {
		token, err := rt.tokens.Token(ctx)
		if err != nil {
			// the request still goes out; cookies may be enough
			rt.logger.Warn(ctx, "reading access token failed", "error", err)
		}
		if token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	rt.logger.Debug(ctx, "request", "method", r.Method, "path", r.URL.Path)
	return rt.next.RoundTrip(r)
}
