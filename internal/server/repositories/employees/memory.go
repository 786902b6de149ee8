package employees

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

// MemoryRepository keeps the directory in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Employee
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, e *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.rows {
		if strings.EqualFold(x.EmpCode, e.EmpCode) {
			return nil, common.ErrorAlreadyExists
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.rows = append(r.rows, *e)
	return e, nil
}

func (r *MemoryRepository) Search(_ context.Context, q string, limit int) ([]models.Employee, error) {
	needle := strings.ToLower(q)
	contains := func(s *string) bool {
		return s != nil && strings.Contains(strings.ToLower(*s), needle)
	}

	r.mu.RLock()
	out := []models.Employee{}
	for _, e := range r.rows {
		if contains(&e.FirstName) || contains(&e.LastName) || contains(&e.EmpCode) || contains(e.Email) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
