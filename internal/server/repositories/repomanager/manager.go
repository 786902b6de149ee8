// Package repomanager hands out repositories bound to a database handle,
// so services can run the same code against the pool, a transaction or
// process memory.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hrportal/internal/dbx"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/extsessions"
	"github.com/dmitrijs2005/hrportal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Employees(db dbx.DBTX) employees.Repository
	ExternalSessions(db dbx.DBTX) extsessions.Repository
}
