package model

import "time"

// Role is the single role a User holds. The set is closed; code that switches
// over roles must deny anything it does not list.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent, RoleCompany:
		return true
	default:
		return false
	}
}

// User is a person or organisation account. CompanyName is set for faculty
// employed by a company.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CompanyName *string   `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

// StudentSummary is the public projection of a student used in allocation listings.
type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
