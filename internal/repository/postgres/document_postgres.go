package postgres

import (
	"context"
	"database/sql"
	"errors"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, user_id, type, filename, storage_path, size, content_type, status,
		company_name, internship_domain, created_at, updated_at`

func scanDocument(s scanner) (*model.Document, error) {
	var (
		d       model.Document
		status  sql.NullString
		company sql.NullString
		domain  sql.NullString
		docType string
	)
	if err := s.Scan(
		&d.ID,
		&d.UserID,
		&docType,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&status,
		&company,
		&domain,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.Type = model.DocumentType(docType)
	// A NULL status is a document nobody has touched yet.
	d.Status = model.DocumentStatusDraft
	if status.Valid && status.String != "" {
		d.Status = model.DocumentStatus(status.String)
	}
	d.CompanyName = nullableString(company)
	d.InternshipDomain = nullableString(domain)
	return &d, nil
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, user_id, type, filename, storage_path, size, content_type, status,
			company_name, internship_domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		doc.ID,
		doc.UserID,
		string(doc.Type),
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		string(doc.Status),
		toNullString(doc.CompanyName),
		toNullString(doc.InternshipDomain),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

// ListByUser returns a user's documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	var total int
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	items, err := r.queryDocuments(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateStatus sets a document's status and bumps updated_at, only while the
// stored status still equals from. NULL counts as draft.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, id string, from, to model.DocumentStatus) (*model.Document, error) {
	const q = `
		UPDATE documents SET status = $2, updated_at = now()
		WHERE id = $1 AND COALESCE(status, 'draft') = $3
		RETURNING ` + documentColumns
	return scanDocument(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id, string(to), string(from)))
}

// LatestApprovedOfferLetter returns the newest approved offer letter of a user, or nil.
func (r *DocumentPostgres) LatestApprovedOfferLetter(ctx context.Context, userID string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1 AND type = 'offer_letter' AND status = 'approved'
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	d, err := scanDocument(database.Conn(ctx, r.db).QueryRowContext(ctx, q, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// ListApprovedOfferLettersByCompany returns other users' approved offer letters for a company.
func (r *DocumentPostgres) ListApprovedOfferLettersByCompany(ctx context.Context, company, excludeUserID string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + `
		FROM documents
		WHERE type = 'offer_letter' AND status = 'approved' AND company_name = $1 AND user_id <> $2
		ORDER BY created_at ASC, id ASC`
	return r.queryDocuments(ctx, q, company, excludeUserID)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, q, id)
	return err
}
