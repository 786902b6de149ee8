package employees

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const searchQ = `(?s)^\s*SELECT\s+id,\s*first_name,\s*last_name,\s*emp_code,\s*department_name,\s*email,\s*status\s+FROM\s+employees\s+WHERE\s+first_name\s+ILIKE\s+\$1.*ORDER\s+BY\s+last_name,\s*first_name\s+LIMIT\s+\$2\s*$`

func TestSearch_Rows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "emp_code", "department_name", "email", "status"}).
		AddRow("e1", "John", "Doe", "E-1", "Finance", "john@example.com", "active").
		AddRow("e2", "Johanna", "Eck", "E-2", nil, nil, "on_leave")
	mock.ExpectQuery(searchQ).
		WithArgs("%jo%", 10).
		WillReturnRows(rows)

	got, err := repo.Search(context.Background(), "jo", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].DepartmentName == nil || *got[0].DepartmentName != "Finance" {
		t.Fatalf("unexpected department: %+v", got[0])
	}
	if got[1].DepartmentName != nil || got[1].Email != nil {
		t.Fatalf("expected NULL columns to stay nil: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearch_EscapesWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(searchQ).
		WithArgs(`%50\%\_a%`, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "emp_code", "department_name", "email", "status"}))

	got, err := repo.Search(context.Background(), "50%_a", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestSearch_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(searchQ).WillReturnError(errors.New("db err"))

	_, err := repo.Search(context.Background(), "jo", 10)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+employees\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*$`
	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "Ann", "Lee", "E-7", nil, nil, "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	e, err := repo.Create(context.Background(), &models.Employee{FirstName: "Ann", LastName: "Lee", EmpCode: "E-7", Status: "active"})
	if err != nil || e.ID == "" {
		t.Fatalf("Create: %+v, %v", e, err)
	}

	_, err = repo.Create(context.Background(), &models.Employee{EmpCode: "E-7"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}
