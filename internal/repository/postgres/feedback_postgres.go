package postgres

import (
	"context"
	"database/sql"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// FeedbackPostgres stores document feedback entries.
type FeedbackPostgres struct {
	db *sql.DB
}

func NewFeedbackPostgres(db *sql.DB) *FeedbackPostgres {
	return &FeedbackPostgres{db: db}
}

var _ repository.FeedbackRepository = (*FeedbackPostgres)(nil)

func scanFeedback(s scanner) (*model.DocumentFeedback, error) {
	var (
		fb     model.DocumentFeedback
		rating sql.NullInt16
	)
	if err := s.Scan(&fb.ID, &fb.DocumentID, &fb.FacultyID, &fb.Feedback, &rating, &fb.CreatedAt); err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int16)
		fb.Rating = &v
	}
	return &fb, nil
}

func (r *FeedbackPostgres) Create(ctx context.Context, fb *model.DocumentFeedback) (*model.DocumentFeedback, error) {
	const q = `
		INSERT INTO document_feedback (id, document_id, faculty_id, feedback, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, document_id, faculty_id, feedback, rating, created_at
	`
	var rating sql.NullInt16
	if fb.Rating != nil {
		rating = sql.NullInt16{Int16: int16(*fb.Rating), Valid: true}
	}
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		fb.ID, fb.DocumentID, fb.FacultyID, fb.Feedback, rating, fb.CreatedAt)
	return scanFeedback(row)
}

func (r *FeedbackPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentFeedback, error) {
	const q = `
		SELECT id, document_id, faculty_id, feedback, rating, created_at
		FROM document_feedback
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentFeedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *fb)
	}
	return items, rows.Err()
}
