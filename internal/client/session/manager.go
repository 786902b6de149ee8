package session

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
	"github.com/dmitrijs2005/hrportal/internal/client/navigation"
	"github.com/dmitrijs2005/hrportal/internal/client/storage"
	"github.com/dmitrijs2005/hrportal/internal/logging"
)

// AuthAPI is the subset of api.Client the Manager calls.
type AuthAPI interface {
	Me(ctx context.Context) (*api.Identity, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	GoogleSession(ctx context.Context, sessionID string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	GoogleLoginURL() string
}

// cookieClearer is implemented by clients that keep a cookie jar.
type cookieClearer interface {
	ClearCookies()
}

// Navigator is the route state the guard reads and redirects.
type Navigator interface {
	Current() string
	IsPublic(route string) bool
	Navigate(route string)
}

// MountInfo describes how the console was entered.
type MountInfo struct {
	// Fragment is the location fragment, e.g. "session_id=abc" after an
	// external login redirect.
	Fragment string
	// CarriedUser is an identity handed over by the previous screen.
	CarriedUser *api.Identity
}

const checkKey = "me"

type Manager struct {
	api    AuthAPI
	tokens storage.TokenStore
	nav    Navigator
	log    logging.Logger

	group singleflight.Group

	mu        sync.RWMutex
	user      *api.Identity
	state     State
	loading   bool
	resolved  bool
	epoch     uint64
	listeners []func(Snapshot)
}

func NewManager(client AuthAPI, tokens storage.TokenStore, nav Navigator, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		api:     client,
		tokens:  tokens,
		nav:     nav,
		log:     log.With("component", "session"),
		loading: true,
	}
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{User: m.user.Clone(), State: m.state, Loading: m.loading, resolved: m.resolved}
}

// User returns a copy of the current identity, nil when signed out.
func (m *Manager) User() *api.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// OnChange registers fn to be called with a fresh snapshot after every
// session change.
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) notify() {
	m.mu.RLock()
	snap := m.snapshotLocked()
	listeners := slices.Clone(m.listeners)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// HasRole reports whether the current user holds one of roles. Comparison
// ignores case.
func (m *Manager) HasRole(roles ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(r), m.user.Role) {
			return true
		}
	}
	return false
}

func (m *Manager) GoogleLoginURL() string {
	return m.api.GoogleLoginURL()
}

// CheckAuth resolves the viewer's identity against GET /auth/me.
//
// A call made while a check is in flight joins it. Once the first check has
// resolved, further calls are no-ops unless force is set; on a public route
// even a forced call skips the network. A failed check clears the user and,
// outside public routes, redirects to the login page.
//
// The only error returned is ctx.Err() when ctx ends before the shared
// check resolves; the check itself keeps running for the other callers.
func (m *Manager) CheckAuth(ctx context.Context, force bool) error {
	m.mu.Lock()
	switch {
	case m.state == StateChecking:
		epoch := m.epoch
		m.mu.Unlock()
		return m.join(ctx, epoch)
	case m.resolved && !force:
		m.mu.Unlock()
		return nil
	case m.resolved && m.nav.IsPublic(m.nav.Current()):
		m.loading = false
		m.mu.Unlock()
		m.notify()
		return nil
	}
	m.state = StateChecking
	m.loading = true
	epoch := m.epoch
	m.mu.Unlock()
	m.notify()

	return m.join(ctx, epoch)
}

// join waits for the check of the given epoch. Login, logout and a carried
// identity bump the epoch, so a check started afterwards never joins a
// superseded one.
func (m *Manager) join(ctx context.Context, epoch uint64) error {
	key := checkKey + "-" + strconv.FormatUint(epoch, 10)
	ch := m.group.DoChan(key, func() (any, error) {
		return m.resolve(context.WithoutCancel(ctx), epoch), nil
	})
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve performs the network half of CheckAuth. It runs at most once at a
// time through the singleflight group.
func (m *Manager) resolve(ctx context.Context, epoch uint64) *api.Identity {
	m.mu.RLock()
	if m.state != StateChecking || m.epoch != epoch {
		// The check this caller meant to join already finished.
		u := m.user.Clone()
		m.mu.RUnlock()
		return u
	}
	m.mu.RUnlock()

	id, err := m.api.Me(ctx)

	m.mu.Lock()
	if m.epoch != epoch {
		// Login or logout happened meanwhile and owns the state now.
		u := m.user.Clone()
		m.mu.Unlock()
		m.log.Debug(ctx, "discarding superseded identity check")
		return u
	}

	redirect := false
	switch {
	case err == nil:
		m.user = id.Clone()
	case errors.Is(err, api.ErrEmptyBody):
		m.log.Warn(ctx, "identity check returned no usable body, keeping current user", "error", err)
	default:
		m.user = nil
		redirect = !m.nav.IsPublic(m.nav.Current())
		m.log.Info(ctx, "identity check failed", "error", err, "redirect", redirect)
	}
	m.loading = false
	m.resolved = true
	m.state = StateDone
	u := m.user.Clone()
	m.mu.Unlock()

	if redirect {
		m.nav.Navigate(navigation.RouteLogin)
	}
	m.notify()
	return u
}

// HasExternalSessionMarker reports whether a location fragment carries an
// external-session id or token.
func HasExternalSessionMarker(fragment string) bool {
	return strings.Contains(fragment, "session_id=") || strings.Contains(fragment, "token=")
}

// ExternalSessionID extracts the session_id value from a location fragment.
func ExternalSessionID(fragment string) (string, bool) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	for _, part := range strings.Split(fragment, "&") {
		if v, ok := strings.CutPrefix(part, "session_id="); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Mount runs the once-per-load bootstrap.
func (m *Manager) Mount(ctx context.Context, info MountInfo) error {
	if HasExternalSessionMarker(info.Fragment) {
		// The external-session exchange will establish the user.
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.notify()
		return nil
	}

	if info.CarriedUser != nil {
		m.mu.Lock()
		m.epoch++
		m.user = info.CarriedUser.Clone()
		m.loading = false
		m.resolved = true
		m.state = StateDone
		m.mu.Unlock()
		m.notify()
		return nil
	}

	return m.CheckAuth(ctx, false)
}

// Login signs in with email and password. A rejected attempt returns an
// *AuthError carrying the backend's message.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, toAuthError(err)
	}
	m.adopt(ctx, resp.User, resp.AccessToken)
	return resp, nil
}

func (m *Manager) Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	resp, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, toAuthError(err)
	}
	m.adopt(ctx, resp.User, resp.AccessToken)
	return resp, nil
}

// ProcessExternalSession exchanges the session id delivered by the external
// login redirect for an identity.
func (m *Manager) ProcessExternalSession(ctx context.Context, sessionID string) (*api.Identity, error) {
	resp, err := m.api.GoogleSession(ctx, sessionID)
	if err != nil {
		return nil, toAuthError(err)
	}
	m.adopt(ctx, resp.User, resp.AccessToken)
	return resp.User.Clone(), nil
}

func (m *Manager) adopt(ctx context.Context, user *api.Identity, token string) {
	if token != "" {
		if err := m.tokens.SetToken(ctx, token); err != nil {
			m.log.Warn(ctx, "failed to persist access token", "error", err)
		}
	}

	m.mu.Lock()
	m.epoch++
	m.user = user.Clone()
	m.loading = false
	m.resolved = true
	m.state = StateDone
	m.mu.Unlock()

	m.notify()
}

// Logout ends the session. The backend call is best effort; local state is
// always cleared and the viewer lands on the login page.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout request failed", "error", err)
	}
	if err := m.tokens.ClearToken(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear access token", "error", err)
	}
	if cc, ok := m.api.(cookieClearer); ok {
		cc.ClearCookies()
	}

	m.mu.Lock()
	m.epoch++
	m.user = nil
	m.loading = false
	m.resolved = false
	m.state = StateUnchecked
	m.mu.Unlock()

	m.nav.Navigate(navigation.RouteLogin)
	m.notify()
}

// TokenSavedAt reports when the stored access token was written.
func (m *Manager) TokenSavedAt(ctx context.Context) (time.Time, bool) {
	ts, ok, err := m.tokens.SavedAt(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to read token timestamp", "error", err)
		return time.Time{}, false
	}
	return ts, ok
}

// TokenExpiry reports when the stored access token expires.
func (m *Manager) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, err := m.tokens.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to read access token", "error", err)
		return time.Time{}, false
	}
	return storage.TokenExpiry(token)
}
