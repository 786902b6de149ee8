package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/hrportal/internal/server/models"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/repomanager"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
	// MinSearchRunes is the shortest query that is looked up at all.
	MinSearchRunes = 2
)

type EmployeeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager) *EmployeeService {
	return &EmployeeService{db: db, repomanager: m}
}

// ClampLimit bounds limit to [1, MaxSearchLimit].
func ClampLimit(limit int) int {
	switch {
	case limit < 1:
		return 1
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	}
	return limit
}

// Search returns employees matching q. Queries shorter than MinSearchRunes
// after trimming return an empty list without touching storage.
func (s *EmployeeService) Search(ctx context.Context, q string, limit int) ([]models.Employee, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinSearchRunes {
		return []models.Employee{}, nil
	}
	out, err := s.repomanager.Employees(s.db).Search(ctx, q, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("error searching employees: %w", err)
	}
	return out, nil
}

func (s *EmployeeService) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	return s.repomanager.Employees(s.db).Create(ctx, e)
}
