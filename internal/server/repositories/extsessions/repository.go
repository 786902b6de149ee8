// Package extsessions stores the one-time session ids minted after an
// external (Google) login.
package extsessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

// Repository defines operations for issuing and redeeming external sessions.
type Repository interface {
	// Create stores session id for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, id string, validity time.Duration) error

	// Consume removes the session and returns it. Each id can be consumed
	// once; unknown ids yield common.ErrorNotFound. Expiry is left to the
	// caller.
	Consume(ctx context.Context, id string) (*models.ExternalSession, error)

	// DeleteExpired drops sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
