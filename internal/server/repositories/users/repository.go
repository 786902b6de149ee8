// Package users stores portal accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

type Repository interface {
	// Create stores user and assigns its ID when empty. A second account with
	// the same email, compared case-insensitively, yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
