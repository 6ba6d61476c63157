package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"internhub/internal/database"
	"internhub/internal/metrics"
	"internhub/internal/model"
	"internhub/internal/repository"
	"internhub/internal/storage"
	"internhub/internal/workflow"
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// UploadInput describes a document file streamed in by a student.
type UploadInput struct {
	Reader           io.Reader
	Filename         string
	ContentType      string
	Size             int64
	Type             model.DocumentType
	CompanyName      *string
	InternshipDomain *string
}

// DocumentStatusUpdate is a requested status change with optional review feedback.
type DocumentStatusUpdate struct {
	Status   string
	Feedback *string
	Rating   *int
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload streams the content to object storage, saves metadata as a draft, and
	// removes the stored object again if the database insert fails.
	Upload(ctx context.Context, actor model.Actor, in UploadInput) (*model.Document, error)

	// List returns a page of userID's documents. An empty userID lists the actor's own.
	List(ctx context.Context, actor model.Actor, userID string, limit, offset int) (*DocumentListResult, error)

	Get(ctx context.Context, actor model.Actor, id string) (*model.Document, error)

	// DownloadURL returns a presigned GET URL for the document's file.
	DownloadURL(ctx context.Context, actor model.Actor, id string) (string, error)

	// Delete removes a document from storage, then deletes its record.
	Delete(ctx context.Context, actor model.Actor, id string) error

	// UpdateStatus moves a document to a new status, recording faculty feedback
	// in the same transaction when present.
	UpdateStatus(ctx context.Context, actor model.Actor, id string, upd DocumentStatusUpdate) (*model.Document, error)

	ListFeedback(ctx context.Context, actor model.Actor, id string) ([]model.DocumentFeedback, error)
}

type documentService struct {
	tx            database.Transactor
	store         storage.Storage
	repo          repository.DocumentRepository
	feedback      repository.FeedbackRepository
	metrics       *metrics.Domain
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	tx database.Transactor,
	store storage.Storage,
	repo repository.DocumentRepository,
	feedback repository.FeedbackRepository,
	m *metrics.Domain,
	presignExpiry time.Duration,
) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &documentService{
		tx:            tx,
		store:         store,
		repo:          repo,
		feedback:      feedback,
		metrics:       m,
		presignExpiry: presignExpiry,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *documentService) Upload(ctx context.Context, actor model.Actor, in UploadInput) (*model.Document, error) {
	if actor.Role != model.RoleStudent {
		return nil, fmt.Errorf("%w: only students upload documents", workflow.ErrForbidden)
	}
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if !in.Type.Valid() {
		return nil, validationError("unknown document type %q", in.Type)
	}
	company := trimmedOrNil(in.CompanyName)
	if in.Type == model.DocumentTypeOfferLetter && company == nil {
		return nil, validationError("company_name is required for offer letters")
	}

	key := storage.ObjectKey(storage.PrefixDocuments, actor.ID, in.Filename)
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:               uuid.New().String(),
		UserID:           actor.ID,
		Type:             in.Type,
		Filename:         path.Base(objInfo.Key),
		StoragePath:      objInfo.Key,
		Size:             objInfo.Size,
		ContentType:      objInfo.ContentType,
		Status:           model.DocumentStatusDraft,
		CompanyName:      company,
		InternshipDomain: trimmedOrNil(in.InternshipDomain),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, actor model.Actor, userID string, limit, offset int) (*DocumentListResult, error) {
	if userID == "" {
		userID = actor.ID
	}
	if userID != actor.ID && actor.Role != model.RoleFaculty && actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot list another user's documents", workflow.ErrForbidden)
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) find(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// statusMoved explains an update that matched no row: the document is gone or
// its status changed after it was authorized.
func (s *documentService) statusMoved(ctx context.Context, id string, target model.DocumentStatus) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return workflow.StatusMoved(string(current.Status), string(target))
}

func (s *documentService) Get(ctx context.Context, actor model.Actor, id string) (*model.Document, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanReadDocument(actor, doc) {
		return nil, fmt.Errorf("%w: document belongs to another user", workflow.ErrForbidden)
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, actor model.Actor, id string) (string, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *documentService) Delete(ctx context.Context, actor model.Actor, id string) error {
	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !workflow.CanDeleteDocument(actor, doc) {
		return fmt.Errorf("%w: document cannot be deleted by this user", workflow.ErrForbidden)
	}
	// Storage first; a failure keeps the row so the object is not orphaned.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) UpdateStatus(ctx context.Context, actor model.Actor, id string, upd DocumentStatusUpdate) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.UpdateStatus")
	defer span.End()

	target, err := workflow.ParseDocumentStatus(upd.Status)
	if err != nil {
		return nil, err
	}

	// Feedback from anyone but faculty is dropped; the status change still applies.
	feedback := trimmedOrNil(upd.Feedback)
	withFeedback := (feedback != nil || upd.Rating != nil) && actor.Role == model.RoleFaculty
	if withFeedback && upd.Rating != nil && (*upd.Rating < 1 || *upd.Rating > 5) {
		return nil, ErrInvalidRating
	}

	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.AuthorizeDocumentStatus(actor, doc, target); err != nil {
		return nil, err
	}

	var updated *model.Document
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.UpdateStatus(ctx, id, doc.Status, target)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return s.statusMoved(ctx, id, target)
			}
			return fmt.Errorf("update document status: %w", err)
		}
		if !withFeedback {
			return nil
		}
		fb := &model.DocumentFeedback{
			ID:         uuid.New().String(),
			DocumentID: id,
			FacultyID:  actor.ID,
			Rating:     upd.Rating,
			CreatedAt:  time.Now().UTC(),
		}
		if feedback != nil {
			fb.Feedback = *feedback
		}
		if _, err := s.feedback.Create(ctx, fb); err != nil {
			return fmt.Errorf("create feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.StatusChanged("document", string(target))
	return updated, nil
}

func (s *documentService) ListFeedback(ctx context.Context, actor model.Actor, id string) ([]model.DocumentFeedback, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.feedback.ListByDocument(ctx, id)
}
