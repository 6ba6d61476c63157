package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internhub/internal/model"
	"internhub/internal/repository"
)

var documentCols = []string{"id", "user_id", "type", "filename", "storage_path", "size", "content_type",
	"status", "company_name", "internship_domain", "created_at", "updated_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	company := "Acme"
	doc := &model.Document{
		ID:          "doc-1",
		UserID:      "student-1",
		Type:        model.DocumentTypeOfferLetter,
		Filename:    "offer.pdf",
		StoragePath: "documents/student-1/offer.pdf",
		Size:        123,
		ContentType: "application/pdf",
		Status:      model.DocumentStatusDraft,
		CompanyName: &company,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rows := sqlmock.NewRows(documentCols).
		AddRow(doc.ID, doc.UserID, "offer_letter", doc.Filename, doc.StoragePath, doc.Size, doc.ContentType,
			"draft", company, nil, now, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, "offer_letter", doc.Filename, doc.StoragePath, doc.Size, doc.ContentType,
			"draft", company, nil, now, now).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	require.NotNil(t, result.CompanyName)
	assert.Equal(t, "Acme", *result.CompanyName)
	assert.Nil(t, result.InternshipDomain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found with null status reads as draft", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-1", "student-1", "monthly_report", "r.pdf", "documents/r.pdf", 100, "application/pdf",
				nil, nil, "backend", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, model.DocumentStatusDraft, doc.Status)
		assert.Equal(t, model.DocumentTypeMonthlyReport, doc.Type)
		require.NotNil(t, doc.InternshipDomain)
		assert.Equal(t, "backend", *doc.InternshipDomain)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE user_id").
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(documentCols).
		AddRow("doc-1", "student-1", "attendance", "a.pdf", "documents/a.pdf", 100, "application/pdf",
			"submitted", nil, nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE user_id = (.+) ORDER BY").
		WithArgs("student-1", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByUser(ctx, "student-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, model.DocumentStatusSubmitted, res.Items[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	rows := sqlmock.NewRows(documentCols).
		AddRow("doc-1", "student-1", "attendance", "a.pdf", "documents/a.pdf", 100, "application/pdf",
			"approved", nil, nil, time.Now(), time.Now())

	mock.ExpectQuery(`UPDATE documents SET status = \$2, updated_at = now\(\) WHERE id = \$1 AND COALESCE\(status, 'draft'\) = \$3`).
		WithArgs("doc-1", "approved", "submitted").
		WillReturnRows(rows)

	doc, err := repo.UpdateStatus(context.Background(), "doc-1", model.DocumentStatusSubmitted, model.DocumentStatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, model.DocumentStatusApproved, doc.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateStatus_StatusMoved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectQuery(`UPDATE documents SET status = (.+) WHERE id = \$1 AND COALESCE\(status, 'draft'\) = \$3`).
		WithArgs("doc-1", "submitted", "draft").
		WillReturnRows(sqlmock.NewRows(documentCols))

	doc, err := repo.UpdateStatus(context.Background(), "doc-1", model.DocumentStatusDraft, model.DocumentStatusSubmitted)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_LatestApprovedOfferLetter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-1", "student-1", "offer_letter", "o.pdf", "documents/o.pdf", 100, "application/pdf",
				"approved", "Acme", nil, time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE user_id = (.+) AND type = 'offer_letter' AND status = 'approved'").
			WithArgs("student-1").
			WillReturnRows(rows)

		doc, err := repo.LatestApprovedOfferLetter(ctx, "student-1")

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "Acme", *doc.CompanyName)
	})

	t.Run("none", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("student-2").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.LatestApprovedOfferLetter(ctx, "student-2")

		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("store failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("student-3").
			WillReturnError(errors.New("conn reset"))

		doc, err := repo.LatestApprovedOfferLetter(ctx, "student-3")

		assert.Error(t, err)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListApprovedOfferLettersByCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	rows := sqlmock.NewRows(documentCols).
		AddRow("doc-2", "student-2", "offer_letter", "o.pdf", "documents/o2.pdf", 100, "application/pdf",
			"approved", "Acme", nil, time.Now(), time.Now()).
		AddRow("doc-3", "student-3", "offer_letter", "o.pdf", "documents/o3.pdf", 100, "application/pdf",
			"approved", "Acme", nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE type = 'offer_letter' AND status = 'approved' AND company_name").
		WithArgs("Acme", "student-1").
		WillReturnRows(rows)

	docs, err := repo.ListApprovedOfferLettersByCompany(context.Background(), "Acme", "student-1")

	assert.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "student-2", docs[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), "doc-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
