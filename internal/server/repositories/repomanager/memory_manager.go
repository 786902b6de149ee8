package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hrportal/internal/dbx"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/extsessions"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process memory. The db handle
// passed to the factories is ignored, so services may pass nil.
type MemoryRepositoryManager struct {
	users     *users.MemoryRepository
	employees *employees.MemoryRepository
	sessions  *extsessions.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		employees: employees.NewMemoryRepository(),
		sessions:  extsessions.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Employees(dbx.DBTX) employees.Repository { return m.employees }

func (m *MemoryRepositoryManager) ExternalSessions(dbx.DBTX) extsessions.Repository {
	return m.sessions
}
