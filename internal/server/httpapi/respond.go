package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/hrportal/internal/server/models"
)

// identity is the public shape of a user.
type identity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func toIdentity(u *models.User) identity {
	return identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, EmployeeID: u.EmployeeID}
}

type authResponse struct {
	User        identity `json:"user"`
	AccessToken string   `json:"access_token"`
}

// externalSessionResponse is the identity flattened next to the token.
type externalSessionResponse struct {
	identity
	AccessToken string `json:"access_token"`
}

type employeeSummary struct {
	EmployeeID     string  `json:"employee_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	EmpCode        string  `json:"emp_code"`
	DepartmentName *string `json:"department_name"`
	Email          *string `json:"email"`
	Status         string  `json:"status"`
}

func toSummaries(es []models.Employee) []employeeSummary {
	out := make([]employeeSummary, 0, len(es))
	for _, e := range es {
		out = append(out, employeeSummary{
			EmployeeID:     e.ID,
			FirstName:      e.FirstName,
			LastName:       e.LastName,
			EmpCode:        e.EmpCode,
			DepartmentName: e.DepartmentName,
			Email:          e.Email,
			Status:         e.Status,
		})
	}
	return out
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

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDetail writes the {"detail": msg} error envelope the console parses.
func writeDetail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}
