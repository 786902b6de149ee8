package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/dbx"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (id, first_name, last_name, emp_code, department_name, email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		e.ID, e.FirstName, e.LastName, e.EmpCode, e.DepartmentName, e.Email, e.Status); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Search(ctx context.Context, q string, limit int) ([]models.Employee, error) {
	query := `
		SELECT id, first_name, last_name, emp_code, department_name, email, status
		FROM employees
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR emp_code ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		var (
			e          models.Employee
			dept, mail sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.EmpCode, &dept, &mail, &e.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if dept.Valid {
			e.DepartmentName = &dept.String
		}
		if mail.Valid {
			e.Email = &mail.String
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
