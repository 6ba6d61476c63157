package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"internhub/internal/logger"
	"internhub/internal/metrics"
	"internhub/internal/model"
	"internhub/internal/repository"
	"internhub/internal/storage"
	"internhub/internal/workflow"
)

// ResumeFile is the single resume attached to an application.
type ResumeFile struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// ApplyInput is a student's application to an internship.
type ApplyInput struct {
	InternshipID  string
	Phone         string
	Semester      string
	DegreeProgram string
	Resume        *ResumeFile
}

// ApplicationService handles internship applications and their review.
type ApplicationService interface {
	// Apply records a pending application after checking the deadline and
	// storing the resume.
	Apply(ctx context.Context, actor model.Actor, in ApplyInput) (*model.InternshipApplication, error)

	// UpdateStatus moves an application to status. Feedback is stored only
	// when the target is accepted or rejected.
	UpdateStatus(ctx context.Context, actor model.Actor, id, status string, feedback *string) (*model.InternshipApplication, error)

	Get(ctx context.Context, actor model.Actor, id string) (*model.InternshipApplication, error)
	ListForInternship(ctx context.Context, actor model.Actor, internshipID string) ([]model.InternshipApplication, error)
	ListMine(ctx context.Context, actor model.Actor) ([]model.InternshipApplication, error)
}

type applicationService struct {
	store       storage.Storage
	apps        repository.ApplicationRepository
	internships repository.InternshipRepository
	metrics     *metrics.Domain
	now         func() time.Time
}

func NewApplicationService(
	store storage.Storage,
	apps repository.ApplicationRepository,
	internships repository.InternshipRepository,
	m *metrics.Domain,
) ApplicationService {
	return &applicationService{
		store:       store,
		apps:        apps,
		internships: internships,
		metrics:     m,
		now:         time.Now,
	}
}

// deadlinePassed compares calendar dates in UTC, so the deadline day itself is still open.
func deadlinePassed(now, deadline time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = deadline.UTC().Date()
	last := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.After(last)
}

func (s *applicationService) Apply(ctx context.Context, actor model.Actor, in ApplyInput) (*model.InternshipApplication, error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Apply")
	defer span.End()
	span.SetAttributes(attribute.String("internship.id", in.InternshipID))

	if actor.Role != model.RoleStudent {
		return nil, fmt.Errorf("%w: only students can apply", workflow.ErrForbidden)
	}

	phone := strings.TrimSpace(in.Phone)
	semester := strings.TrimSpace(in.Semester)
	program := strings.TrimSpace(in.DegreeProgram)
	switch {
	case phone == "":
		return nil, validationError("phone is required")
	case semester == "":
		return nil, validationError("semester is required")
	case program == "":
		return nil, validationError("degree_program is required")
	}
	if in.Resume == nil || in.Resume.Reader == nil {
		return nil, ErrResumeRequired
	}

	internship, err := findInternship(ctx, s.internships, in.InternshipID)
	if err != nil {
		return nil, err
	}
	if deadlinePassed(s.now(), internship.Deadline) {
		return nil, ErrDeadlinePassed
	}

	open, err := s.apps.HasOpenApplication(ctx, internship.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing applications: %w", err)
	}
	if open {
		return nil, ErrDuplicateApplication
	}

	key := storage.ObjectKey(storage.PrefixResumes, internship.ID, in.Resume.Filename)
	objInfo, err := s.store.Put(ctx, key, in.Resume.Reader, storage.PutObjectOptions{
		Size:        in.Resume.Size,
		ContentType: in.Resume.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Resume.Filename,
			"student-id":        actor.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	now := s.now().UTC()
	app, err := s.apps.Create(ctx, &model.InternshipApplication{
		ID:            uuid.New().String(),
		InternshipID:  internship.ID,
		StudentID:     actor.ID,
		Status:        model.ApplicationStatusPending,
		ResumePath:    objInfo.Key,
		Phone:         phone,
		Semester:      semester,
		DegreeProgram: program,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, objInfo.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	log := logger.With("application")
	log.Info().
		Str("application_id", app.ID).
		Str("internship_id", internship.ID).
		Str("student_id", actor.ID).
		Msg("application submitted")
	return app, nil
}

func (s *applicationService) find(ctx context.Context, id string) (*model.InternshipApplication, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// internshipOf returns nil when the internship row is gone; permission checks
// then treat the caller as not being its creator.
func (s *applicationService) internshipOf(ctx context.Context, app *model.InternshipApplication) (*model.Internship, error) {
	in, err := s.internships.FindByID(ctx, app.InternshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return in, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actor model.Actor, id, status string, feedback *string) (*model.InternshipApplication, error) {
	target, err := workflow.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}
	app, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	internship, err := s.internshipOf(ctx, app)
	if err != nil {
		return nil, err
	}
	if err := workflow.AuthorizeApplicationStatus(actor, app, internship, target); err != nil {
		return nil, err
	}

	var fb *string
	if target == model.ApplicationStatusAccepted || target == model.ApplicationStatusRejected {
		fb = trimmedOrNil(feedback)
	}

	updated, err := s.apps.UpdateStatus(ctx, id, app.Status, target, fb)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, ferr := s.find(ctx, id)
			if ferr != nil {
				return nil, ferr
			}
			return nil, workflow.StatusMoved(string(current.Status), string(target))
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	s.metrics.StatusChanged("application", string(target))
	return updated, nil
}

func (s *applicationService) Get(ctx context.Context, actor model.Actor, id string) (*model.InternshipApplication, error) {
	app, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	internship, err := s.internshipOf(ctx, app)
	if err != nil {
		return nil, err
	}
	if !workflow.CanReadApplication(actor, app, internship) {
		return nil, fmt.Errorf("%w: cannot view this application", workflow.ErrForbidden)
	}
	return app, nil
}

func (s *applicationService) ListForInternship(ctx context.Context, actor model.Actor, internshipID string) ([]model.InternshipApplication, error) {
	internship, err := findInternship(ctx, s.internships, internshipID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanListApplications(actor, internship) {
		return nil, fmt.Errorf("%w: only the internship creator may list applications", workflow.ErrForbidden)
	}
	return s.apps.ListByInternship(ctx, internshipID)
}

func (s *applicationService) ListMine(ctx context.Context, actor model.Actor) ([]model.InternshipApplication, error) {
	if actor.Role != model.RoleStudent {
		return nil, fmt.Errorf("%w: only students have applications", workflow.ErrForbidden)
	}
	return s.apps.ListByStudent(ctx, actor.ID)
}
