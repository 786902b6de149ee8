// Package employees stores the employee directory searched from the
// console.
package employees

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	// Search returns up to limit employees whose first name, last name,
	// employee code or email contains q, ignoring case, ordered by last
	// name then first name.
	Search(ctx context.Context, q string, limit int) ([]models.Employee, error)
}

// likePattern escapes LIKE wildcards in q and wraps it for a substring match.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
