package repository

import (
	"context"

	"internhub/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByUser returns a page of a user's documents, newest first.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateStatus moves a document from status from to status to and returns the
	// updated row. It returns sql.ErrNoRows when the row is missing or no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus) (*model.Document, error)

	// LatestApprovedOfferLetter returns the user's most recent approved offer letter,
	// or nil when there is none.
	LatestApprovedOfferLetter(ctx context.Context, userID string) (*model.Document, error)

	// ListApprovedOfferLettersByCompany returns approved offer letters naming company,
	// excluding those owned by excludeUserID, oldest first.
	ListApprovedOfferLettersByCompany(ctx context.Context, company, excludeUserID string) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository stores the append-only document feedback log.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.DocumentFeedback) (*model.DocumentFeedback, error)
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentFeedback, error)
}
