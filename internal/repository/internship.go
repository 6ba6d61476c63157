package repository

import (
	"context"

	"internhub/internal/model"
)

// InternshipRepository persists internship postings.
type InternshipRepository interface {
	Create(ctx context.Context, in *model.Internship) (*model.Internship, error)
	// FindByID returns an internship by ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Internship, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Internship], error)
}

// ApplicationRepository persists internship applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.InternshipApplication) (*model.InternshipApplication, error)
	// FindByID returns an application by ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.InternshipApplication, error)
	// UpdateStatus moves an application from status from to status to and, when
	// feedback is non-nil, overwrites the feedback. It returns sql.ErrNoRows when
	// the row is missing or no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to model.ApplicationStatus, feedback *string) (*model.InternshipApplication, error)
	ListByInternship(ctx context.Context, internshipID string) ([]model.InternshipApplication, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.InternshipApplication, error)
	// HasOpenApplication reports whether the student holds a pending or accepted
	// application for the internship.
	HasOpenApplication(ctx context.Context, internshipID, studentID string) (bool, error)
}
