package model

import "time"

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocumentTypeOfferLetter   DocumentType = "offer_letter"
	DocumentTypeMonthlyReport DocumentType = "monthly_report"
	DocumentTypeAttendance    DocumentType = "attendance"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeOfferLetter, DocumentTypeMonthlyReport, DocumentTypeAttendance:
		return true
	default:
		return false
	}
}

// DocumentStatus is the review state of a document.
type DocumentStatus string

const (
	DocumentStatusDraft       DocumentStatus = "draft"
	DocumentStatusSubmitted   DocumentStatus = "submitted"
	DocumentStatusUnderReview DocumentStatus = "under_review"
	DocumentStatusApproved    DocumentStatus = "approved"
	DocumentStatusRejected    DocumentStatus = "rejected"
)

// Valid reports whether s is one of the five document statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusSubmitted, DocumentStatusUnderReview,
		DocumentStatusApproved, DocumentStatusRejected:
		return true
	default:
		return false
	}
}

// Document represents a stored file owned by a user, typically a student.
// It stays free of persistence tags so it can travel across layers.
type Document struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Type             DocumentType   `json:"type"`
	Filename         string         `json:"filename"`
	StoragePath      string         `json:"storage_path"`
	Size             int64          `json:"size"`
	ContentType      string         `json:"content_type"`
	Status           DocumentStatus `json:"status"`
	CompanyName      *string        `json:"company_name,omitempty"`
	InternshipDomain *string        `json:"internship_domain,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// DocumentFeedback is one entry of the append-only review log of a document.
type DocumentFeedback struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	FacultyID  string    `json:"faculty_id"`
	Feedback   string    `json:"feedback"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
