package api

import "encoding/json"

// Identity is the authenticated viewer's profile.
type Identity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

// Clone returns a deep copy so holders cannot mutate the original.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	if i.EmployeeID != nil {
		id := *i.EmployeeID
		c.EmployeeID = &id
	}
	return &c
}

// AuthResponse is the payload of login, register and the external-session
// exchange. Raw keeps the undecoded body for callers that need more fields.
type AuthResponse struct {
	User        *Identity       `json:"user"`
	AccessToken string          `json:"access_token,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// EmployeeSummary is one row of the employee lookup.
type EmployeeSummary struct {
	EmployeeID     string  `json:"employee_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	EmpCode        string  `json:"emp_code"`
	DepartmentName *string `json:"department_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Status         string  `json:"status"`
}

// FullName joins first and last name.
func (e EmployeeSummary) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleSessionRequest struct {
	SessionID string `json:"session_id"`
}
