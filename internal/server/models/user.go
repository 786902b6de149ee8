// Package models defines server-side data models persisted in the database.
package models

import "time"

// Roles known to the portal. Search is offered to the HR roles and admin.
const (
	RoleAdmin     = "admin"
	RoleHRAdmin   = "hr_admin"
	RoleHRManager = "hr_manager"
	RoleEmployee  = "employee"
)

// User is an account that can sign in to the portal. PasswordHash is empty
// for accounts created through Google.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   *string
	CreatedAt    time.Time
}
