package models

// Employee is one row of the employee directory as returned by search.
type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	EmpCode        string
	DepartmentName *string
	Email          *string
	Status         string
}
