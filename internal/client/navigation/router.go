// Package navigation tracks where the viewer is in the console and which
// locations may be visited without signing in.
package navigation

import (
	"strings"
	"sync"
)

const (
	RouteLanding       = "/"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteDashboard     = "/dashboard"
	RouteEmployees     = "/employees"
	RouteAttendance    = "/attendance"
	RouteLeave         = "/leave"
	RouteRecruitment   = "/recruitment"
	RoutePerformance   = "/performance"
	RouteAnnouncements = "/announcements"
	RouteReports       = "/reports"
	RouteUsers         = "/users"
)

// KnownRoutes lists every page the console can show.
var KnownRoutes = []string{
	RouteLanding, RouteLogin, RouteRegister, RouteDashboard, RouteEmployees,
	RouteAttendance, RouteLeave, RouteRecruitment, RoutePerformance,
	RouteAnnouncements, RouteReports, RouteUsers,
}

// DefaultPublicRoutes need no authentication.
var DefaultPublicRoutes = []string{RouteLanding, RouteLogin, RouteRegister}

// Listener is called after every route change with the previous and the
// new route.
type Listener func(from, to string)

// Router holds the current route. It is safe for concurrent use; listeners
// run synchronously on the navigating goroutine, outside the lock.
type Router struct {
	mu        sync.RWMutex
	current   string
	history   []string
	public    map[string]struct{}
	listeners []Listener
}

// NewRouter starts at start. A nil publicRoutes selects DefaultPublicRoutes.
func NewRouter(start string, publicRoutes []string) *Router {
	if publicRoutes == nil {
		publicRoutes = DefaultPublicRoutes
	}
	public := make(map[string]struct{}, len(publicRoutes))
	for _, r := range publicRoutes {
		public[Normalize(r)] = struct{}{}
	}
	start = Normalize(start)
	return &Router{current: start, history: []string{start}, public: public}
}

// Normalize trims whitespace, a trailing slash and any query or fragment,
// and ensures a leading slash.
func Normalize(route string) string {
	route = strings.TrimSpace(route)
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = "/"
		}
	}
	return route
}

func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Router) IsPublic(route string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.public[Normalize(route)]
	return ok
}

// CurrentIsPublic reports whether the current route needs no authentication.
func (r *Router) CurrentIsPublic() bool {
	return r.IsPublic(r.Current())
}

// Navigate moves to route. Navigating to the current route is a no-op and
// does not notify listeners.
func (r *Router) Navigate(route string) {
	route = Normalize(route)

	r.mu.Lock()
	from := r.current
	if from == route {
		r.mu.Unlock()
		return
	}
	r.current = route
	r.history = append(r.history, route)
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, route)
	}
}

func (r *Router) OnChange(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// History returns every route visited so far, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

// IsKnown reports whether route is one of KnownRoutes.
func IsKnown(route string) bool {
	route = Normalize(route)
	for _, k := range KnownRoutes {
		if k == route {
			return true
		}
	}
	return false
}
