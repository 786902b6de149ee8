package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
	"github.com/dmitrijs2005/hrportal/internal/client/config"
	"github.com/dmitrijs2005/hrportal/internal/client/navigation"
	"github.com/dmitrijs2005/hrportal/internal/client/search"
	"github.com/dmitrijs2005/hrportal/internal/client/session"
	"github.com/dmitrijs2005/hrportal/internal/client/storage"
	"github.com/dmitrijs2005/hrportal/internal/client/transport"
	"github.com/dmitrijs2005/hrportal/internal/client/tui"
	"github.com/dmitrijs2005/hrportal/internal/logging"
)

type App struct {
	config   *config.Config
	session  *session.Manager
	router   *navigation.Router
	searcher *search.Searcher
	log      logging.Logger
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// searchUI shows the search surface and returns the picked employee.
	searchUI func(ctx context.Context) (*api.EmployeeSummary, error)
}

// NewApp opens the token store and wires the REST client, session and
// search around it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.TokenDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing token store: %w", err)
	}
	tokens := storage.NewSQLiteTokenStore(db)

	policy, err := transport.ParsePolicy(c.CredentialPolicy)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	hc, err := transport.New(tokens, transport.Options{Policy: policy, Timeout: c.RequestTimeout, Logger: log})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	client, err := api.NewHTTPClient(c.APIBaseURL, hc)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	router := navigation.NewRouter(c.StartRoute, nil)
	mgr := session.NewManager(client, tokens, router, log)
	searcher := search.New(client, search.Options{
		Debounce:  c.SearchDebounce,
		Limit:     c.SearchLimit,
		CacheSize: c.SearchCacheSize,
		CacheTTL:  c.SearchCacheTTL,
		Logger:    log,
	})

	a := newApp(c, mgr, router, searcher, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, mgr *session.Manager, router *navigation.Router, searcher *search.Searcher,
	log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.NewNop()
	}
	a := &App{
		config:   c,
		session:  mgr,
		router:   router,
		searcher: searcher,
		log:      log.With("component", "cli"),
		reader:   reader,
		out:      out,
	}
	a.searchUI = func(ctx context.Context) (*api.EmployeeSummary, error) {
		return tui.Run(ctx, tui.New(a.searcher, a.session, a.config.AuthorizedSearchRoles))
	}

	router.OnChange(func(from, to string) {
		a.log.Debug(context.Background(), "route changed", "from", from, "to", to)
	})
	mgr.OnChange(func(s session.Snapshot) {
		if s.User == nil {
			// cached results belong to the previous viewer
			searcher.PurgeCache()
		}
	})
	return a
}

// Run bootstraps the session and serves the REPL until the user exits or
// ctx ends.
func (a *App) Run(ctx context.Context) error {
	a.println("Welcome to the HR Portal console (type 'help' for commands)")

	if err := a.session.Mount(ctx, session.MountInfo{Fragment: a.config.Fragment}); err != nil {
		return err
	}
	if id, ok := session.ExternalSessionID(a.config.Fragment); ok {
		// rejections were already reported; only a dead context stops the console
		err := a.completeExternalSession(ctx, id)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	} else if !a.router.CurrentIsPublic() && a.session.User() == nil {
		a.router.Navigate(navigation.RouteLogin)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the token store.
func (a *App) Close() error {
	a.searcher.Close()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) getStatus() string {
	s := a.router.Current()
	if u := a.session.User(); u != nil {
		s += " " + u.Email
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
