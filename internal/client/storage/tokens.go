package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hrportal/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenKey = "access_token"
	savedAtKey     = "access_token_saved_at"
)

// TokenStore is the single keyed slot holding the access token. Login,
// register and the external-session exchange write it, logout clears it,
// and the transport reads it on every call.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	// SavedAt reports when the current token was stored; ok is false when
	// no token is stored.
	SavedAt(ctx context.Context) (t time.Time, ok bool, err error)
}

// SQLiteTokenStore keeps the token in the metadata table so it survives
// restarts of the console.
type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

func (s *SQLiteTokenStore) Token(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, accessTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetToken writes the token and the time it was saved in one transaction.
func (s *SQLiteTokenStore) SetToken(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, accessTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

func (s *SQLiteTokenStore) ClearToken(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, accessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, savedAtKey)
	})
}

// SavedAt reports when the current token was stored.
func (s *SQLiteTokenStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if err != nil || v == nil {
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse saved_at: %w", err)
	}
	return ts, true, nil
}

// MemoryTokenStore keeps the token in process memory only.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	token   string
	savedAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.savedAt = time.Now().UTC()
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) ClearToken(context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.savedAt = time.Time{}
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) SavedAt(context.Context) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedAt, s.token != "", nil
}

// TokenExpiry reads the exp claim of a JWT access token. The signature is
// not verified: the client only uses the value for display.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
