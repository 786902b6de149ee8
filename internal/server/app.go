// Package server wires the reference backend together: storage, services,
// the optional Google login and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/hrportal/internal/logging"
	"github.com/dmitrijs2005/hrportal/internal/server/auth"
	"github.com/dmitrijs2005/hrportal/internal/server/config"
	"github.com/dmitrijs2005/hrportal/internal/server/httpapi"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hrportal/internal/server/services"
)

const minPurgeInterval = time.Minute

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	userService     *services.UserService
	employeeService *services.EmployeeService
	server          *httpapi.Server
}

// NewApp opens storage and builds the services. An empty DatabaseDSN keeps
// everything in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Info(ctx, "Using PostgreSQL storage")
	} else {
		rm = repomanager.NewMemoryRepositoryManager()
		logger.Warn(ctx, "No database configured, using in-memory storage")
	}

	fail := func(err error) (*App, error) {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	us := services.NewUserService(db, rm, c)
	es := services.NewEmployeeService(db, rm)

	if c.SeedDemoData {
		if err := services.SeedDemoData(ctx, us, es); err != nil {
			return fail(fmt.Errorf("seed: %w", err))
		}
		logger.Info(ctx, "Demo data seeded")
	}

	var google httpapi.GoogleProvider
	if c.GoogleConfigured() {
		g, err := auth.NewGoogleOAuth(c.GoogleClientID, c.GoogleClientSecret, c.GoogleRedirectURL)
		if err != nil {
			return fail(err)
		}
		google = g
	} else {
		logger.Info(ctx, "Google login disabled")
	}

	srv := httpapi.NewServer(httpapi.Options{
		Address:        c.ListenAddr,
		FrontendURL:    c.FrontendURL,
		CookieName:     c.CookieName,
		AllowedOrigins: c.AllowedOrigins,
	}, logger, us, es, google)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		userService:     us,
		employeeService: es,
		server:          srv,
	}, nil
}

// Run serves HTTP and purges expired external sessions until ctx is done.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.server.Run(ctx) })
	g.Go(func() error {
		app.purgeLoop(ctx, app.purgeInterval())
		return nil
	})
	return g.Wait()
}

func (app *App) purgeInterval() time.Duration {
	if d := app.config.ExternalSessionValidity; d > minPurgeInterval {
		return d
	}
	return minPurgeInterval
}

func (app *App) purgeLoop(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			app.purgeOnce(ctx)
		}
	}
}

func (app *App) purgeOnce(ctx context.Context) {
	n, err := app.userService.PurgeExpiredSessions(ctx)
	if err != nil {
		app.logger.Error(ctx, "purging external sessions failed", "error", err)
		return
	}
	if n > 0 {
		app.logger.Debug(ctx, "purged external sessions", "count", n)
	}
}

// Close releases the database, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
