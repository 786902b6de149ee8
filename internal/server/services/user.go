// Package services contains the backend's business logic. This file
// implements UserService: password and Google sign-in, registration,
// token verification and the one-time external session exchange.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/dbx"
	"github.com/dmitrijs2005/hrportal/internal/server/auth"
	"github.com/dmitrijs2005/hrportal/internal/server/config"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/repomanager"
)

// Session is a signed-in user together with the access token minted for it.
type Session struct {
	User        *models.User
	AccessToken string
	Expires     time.Time
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	externalSessionValidity     time.Duration
	now                         func() time.Time
}

// NewUserService constructs a UserService. db may be nil when m keeps its
// data in memory.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		externalSessionValidity:     cfg.ExternalSessionValidity,
		now:                         time.Now,
	}
}

// Register creates an employee-role account. Blank fields yield
// common.ErrorValidation; a taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	u, err := s.createUser(ctx, s.db, &models.User{Name: name, Email: email, PasswordHash: hash, Role: models.RoleEmployee})
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// CreateUser stores u as is, hashing password when given. Used for seeding
// accounts with a role other than employee.
func (s *UserService) CreateUser(ctx context.Context, u *models.User, password string) (*models.User, error) {
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		u.PasswordHash = hash
	}
	return s.createUser(ctx, s.db, u)
}

func (s *UserService) createUser(ctx context.Context, db dbx.DBTX, u *models.User) (*models.User, error) {
	created, err := s.repomanager.Users(db).Create(ctx, u)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Login verifies email and password. Unknown emails and wrong passwords
// both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}
	return s.issue(u)
}

// Authenticate resolves an access token to the user it was minted for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return u, nil
}

// StartExternalSession finds or creates the account for a Google profile
// and mints a one-time session id for it.
func (s *UserService) StartExternalSession(ctx context.Context, g *auth.GoogleUser) (string, error) {
	id, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}

	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).GetUserByEmail(ctx, g.Email)
		if errors.Is(err, common.ErrorNotFound) {
			name := g.Name
			if name == "" {
				name = g.Email
			}
			u, err = s.createUser(ctx, tx, &models.User{Name: name, Email: g.Email, Role: models.RoleEmployee})
		}
		if err != nil {
			return err
		}
		return s.repomanager.ExternalSessions(tx).Create(ctx, u.ID, id, s.externalSessionValidity)
	})
	if err != nil {
		return "", fmt.Errorf("error starting external session: %w", err)
	}
	return id, nil
}

// ConsumeExternalSession redeems a session id minted by
// StartExternalSession. Each id works once; unknown ids yield
// common.ErrorUnauthorized and expired ones common.ErrSessionExpired.
func (s *UserService) ConsumeExternalSession(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, common.ErrorUnauthorized
	}

	var u *models.User
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		es, err := s.repomanager.ExternalSessions(tx).Consume(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return err
		}
		if es.Expires.Before(s.now()) {
			return common.ErrSessionExpired
		}
		u, err = s.repomanager.Users(tx).GetUserByID(ctx, es.UserID)
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrSessionExpired) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return s.issue(u)
}

// PurgeExpiredSessions drops external sessions nobody redeemed in time.
func (s *UserService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repomanager.ExternalSessions(s.db).DeleteExpired(ctx, s.now())
}

// --- helpers below ---

func (s *UserService) issue(u *models.User) (*Session, error) {
	token, err := auth.GenerateToken(u.ID, u.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: u, AccessToken: token, Expires: s.now().Add(s.accessTokenValidityDuration)}, nil
}

// withTx runs fn in a transaction, or directly when the service has no
// database.
func (s *UserService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}
