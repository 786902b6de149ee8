// Package search implements the employee quick-search: keystrokes are
// debounced, short queries never reach the network, and a reply is only
// shown if no newer lookup has started since it was issued.
package search

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
	"github.com/dmitrijs2005/hrportal/internal/logging"
)

const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultLimit     = 10
	DefaultCacheSize = 128
	DefaultCacheTTL  = 30 * time.Second

	// MinQueryRunes is the shortest trimmed query sent to the backend.
	MinQueryRunes = 2

	ShortQueryHint = "Type at least 2 characters to search"
)

// Lookup is the backend call behind the search box.
type Lookup interface {
	SearchEmployees(ctx context.Context, query string, limit int) ([]api.EmployeeSummary, error)
}

// State is what the search surface renders.
type State struct {
	Query   string
	Results []api.EmployeeSummary
	Loading bool
	Hint    string
	Open    bool
}

type Options struct {
	Debounce time.Duration
	Limit    int
	// CacheSize and CacheTTL size the result cache; either one at zero
	// disables it.
	CacheSize int
	CacheTTL  time.Duration
	Logger    logging.Logger
}

// DefaultOptions returns the standard debounce, limit and cache settings.
func DefaultOptions() Options {
	return Options{
		Debounce:  DefaultDebounce,
		Limit:     DefaultLimit,
		CacheSize: DefaultCacheSize,
		CacheTTL:  DefaultCacheTTL,
	}
}

type Searcher struct {
	lookup    Lookup
	limit     int
	debouncer *Debouncer
	cache     *resultCache
	log       logging.Logger

	mu    sync.Mutex
	state State
	// inputSeq invalidates debounced lookups armed before the latest
	// Input or Close.
	inputSeq uint64
	// gen identifies the latest lookup; replies of older ones are dropped.
	gen       uint64
	cancel    context.CancelFunc
	listeners []func(State)
}

func New(lookup Lookup, opts Options) *Searcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Searcher{
		lookup:    lookup,
		limit:     opts.Limit,
		debouncer: NewDebouncer(opts.Debounce),
		cache:     newResultCache(opts.CacheSize, opts.CacheTTL),
		log:       opts.Logger.With("component", "search"),
		state:     State{Results: []api.EmployeeSummary{}},
	}
}

// Snapshot returns a copy of the current state.
func (s *Searcher) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Searcher) snapshotLocked() State {
	st := s.state
	st.Results = cloneResults(s.state.Results)
	return st
}

// OnChange registers fn to receive the state after every change. fn runs
// on the goroutine that made the change and must not block.
func (s *Searcher) OnChange(fn func(State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Searcher) notify() {
	s.mu.Lock()
	st := s.snapshotLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(st)
	}
}

// Input records the raw query and re-arms the debounce timer.
func (s *Searcher) Input(q string) {
	s.mu.Lock()
	s.state.Query = q
	s.inputSeq++
	seq := s.inputSeq
	s.mu.Unlock()
	s.notify()

	s.debouncer.Debounce(func() { s.run(seq, q) })
}

// Flush runs the pending lookup now instead of waiting for the quiet
// period. It blocks until the lookup finishes.
func (s *Searcher) Flush() {
	s.debouncer.Cancel()
	s.mu.Lock()
	seq, q := s.inputSeq, s.state.Query
	s.mu.Unlock()
	s.run(seq, q)
}

func (s *Searcher) run(seq uint64, q string) {
	query := strings.TrimSpace(q)

	s.mu.Lock()
	if seq != s.inputSeq {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if utf8.RuneCountInString(query) < MinQueryRunes {
		s.state.Results = []api.EmployeeSummary{}
		s.state.Loading = false
		s.state.Hint = ShortQueryHint
		s.mu.Unlock()
		s.notify()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state.Loading = true
	s.state.Hint = ""
	s.mu.Unlock()
	s.notify()
	defer cancel()

	results, err := s.fetch(ctx, query)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale search reply", "query", query)
		return
	}
	s.cancel = nil
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Warn(ctx, "employee search failed", "query", query, "error", err)
		}
		results = []api.EmployeeSummary{}
	}
	s.state.Results = results
	s.state.Loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Searcher) fetch(ctx context.Context, query string) ([]api.EmployeeSummary, error) {
	if cached, ok := s.cache.get(query, s.limit); ok {
		s.log.Debug(ctx, "search cache hit", "query", query)
		return cached, nil
	}
	results, err := s.lookup.SearchEmployees(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []api.EmployeeSummary{}
	}
	s.cache.add(query, s.limit, results)
	return results, nil
}

func (s *Searcher) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Open
}

// Open shows the search surface with an empty query. Opening an open
// surface is a no-op.
func (s *Searcher) Open() {
	s.mu.Lock()
	if s.state.Open {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.state.Open = true
	s.mu.Unlock()
	s.notify()
}

// Close hides the surface, drops the pending and in-flight lookups and
// clears query and results. Closing a closed surface is a no-op.
func (s *Searcher) Close() {
	s.debouncer.Cancel()

	s.mu.Lock()
	if !s.state.Open {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Searcher) Toggle() {
	if s.IsOpen() {
		s.Close()
		return
	}
	s.Open()
}

func (s *Searcher) resetLocked() {
	s.inputSeq++
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = State{Results: []api.EmployeeSummary{}}
}

// PurgeCache drops every cached result, e.g. after logout.
func (s *Searcher) PurgeCache() {
	s.cache.purge()
}
