package model

import "time"

// Internship is a posting students can apply to until its deadline.
type Internship struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CompanyName *string   `json:"company_name,omitempty"`
	CreatedBy   string    `json:"created_by"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplicationStatus is the state of an internship application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	default:
		return false
	}
}

// InternshipApplication links a student to an internship.
type InternshipApplication struct {
	ID            string            `json:"id"`
	InternshipID  string            `json:"internship_id"`
	StudentID     string            `json:"student_id"`
	Status        ApplicationStatus `json:"status"`
	ResumePath    string            `json:"resume_path"`
	Feedback      *string           `json:"feedback,omitempty"`
	Phone         string            `json:"phone"`
	Semester      string            `json:"semester"`
	DegreeProgram string            `json:"degree_program"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
