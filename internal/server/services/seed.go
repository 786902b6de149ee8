package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "hrportal-demo"

func strp(s string) *string { return &s }

// demoUsers cover each role the console distinguishes.
var demoUsers = []models.User{
	{Name: "Helen Admin", Email: "admin@hrportal.example", Role: models.RoleAdmin},
	{Name: "Harriet Reyes", Email: "hr@hrportal.example", Role: models.RoleHRAdmin},
	{Name: "Marco Ng", Email: "manager@hrportal.example", Role: models.RoleHRManager},
	{Name: "Erin Employee", Email: "employee@hrportal.example", Role: models.RoleEmployee},
}

var demoEmployees = []models.Employee{
	{FirstName: "John", LastName: "Doe", EmpCode: "EMP-001", DepartmentName: strp("Engineering"), Email: strp("john.doe@hrportal.example"), Status: "active"},
	{FirstName: "Jane", LastName: "Doe", EmpCode: "EMP-002", DepartmentName: strp("Finance"), Email: strp("jane.doe@hrportal.example"), Status: "active"},
	{FirstName: "Johanna", LastName: "Berg", EmpCode: "EMP-003", DepartmentName: strp("People"), Email: strp("johanna.berg@hrportal.example"), Status: "on_leave"},
	{FirstName: "Ann", LastName: "Lee", EmpCode: "EMP-004", DepartmentName: strp("Finance"), Status: "active"},
	{FirstName: "Marco", LastName: "Ng", EmpCode: "EMP-005", DepartmentName: strp("People"), Email: strp("manager@hrportal.example"), Status: "active"},
	{FirstName: "Priya", LastName: "Shah", EmpCode: "EMP-006", Email: strp("priya.shah@hrportal.example"), Status: "probation"},
	{FirstName: "Tom", LastName: "Johnson", EmpCode: "EMP-007", DepartmentName: strp("Sales"), Status: "terminated"},
}

// SeedDemoData creates the demo accounts and directory. Rows that already
// exist are left alone, so seeding twice is harmless.
func SeedDemoData(ctx context.Context, us *UserService, es *EmployeeService) error {
	for _, u := range demoUsers {
		u := u
		if _, err := us.CreateUser(ctx, &u, DemoPassword); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
			return err
		}
	}
	for _, e := range demoEmployees {
		e := e
		if _, err := es.Create(ctx, &e); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
			return err
		}
	}
	return nil
}
