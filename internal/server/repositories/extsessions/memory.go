package extsessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]models.ExternalSession
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: map[string]models.ExternalSession{}}
}

func (r *MemoryRepository) Create(_ context.Context, userID string, id string, validity time.Duration) error {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		return common.ErrorAlreadyExists
	}
	r.sessions[id] = models.ExternalSession{ID: id, UserID: userID, Expires: now.Add(validity), CreatedAt: now}
	return nil
}

func (r *MemoryRepository) Consume(_ context.Context, id string) (*models.ExternalSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.sessions, id)
	return &s, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expires.Before(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
