// Package httpapi is the REST surface of the reference backend: the auth
// routes the console signs in with and the employee search it queries.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/logging"
	"github.com/dmitrijs2005/hrportal/internal/server/auth"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
	"github.com/dmitrijs2005/hrportal/internal/server/services"
)

// UserService is the account logic the auth routes call into.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	StartExternalSession(ctx context.Context, g *auth.GoogleUser) (string, error)
	ConsumeExternalSession(ctx context.Context, id string) (*services.Session, error)
}

type EmployeeService interface {
	Search(ctx context.Context, q string, limit int) ([]models.Employee, error)
}

// GoogleProvider runs the OAuth code flow. A nil provider disables
// external login.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// Options configures a Server.
type Options struct {
	Address        string
	FrontendURL    string
	CookieName     string
	AllowedOrigins []string
	// Registerer receives the HTTP metrics; nil uses a private registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

type Server struct {
	address      string
	frontendURL  string
	cookieName   string
	stateCookie  string
	secureCookie bool

	users     UserService
	employees EmployeeService
	google    GoogleProvider
	logger    logging.Logger
	metrics   *metrics
	router    chi.Router
}

func NewServer(opts Options, l logging.Logger, us UserService, es EmployeeService, google GoogleProvider) *Server {
	if opts.CookieName == "" {
		opts.CookieName = common.SessionCookieName
	}
	if opts.Registerer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}

	s := &Server{
		address:      opts.Address,
		frontendURL:  strings.TrimSuffix(opts.FrontendURL, "/"),
		cookieName:   opts.CookieName,
		stateCookie:  "hrportal_oauth_state",
		secureCookie: strings.HasPrefix(strings.ToLower(opts.FrontendURL), "https://"),
		users:        us,
		employees:    es,
		google:       google,
		logger:       l.With("module", "http_server"),
		metrics:      newMetrics(opts.Registerer, opts.Gatherer),
	}
	s.router = s.routes(opts.AllowedOrigins)
	return s
}

func (s *Server) routes(origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", common.RequestIDHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/logout", s.handleLogout)
		r.Get("/google", s.handleGoogleStart)
		r.Get("/google/callback", s.handleGoogleCallback)
		r.Post("/google-session", s.handleGoogleSession)
		r.With(s.requireAuth).Get("/me", s.handleMe)
	})

	r.With(s.requireAuth).Get("/employees/search", s.handleSearch)
	return r
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
