package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"internhub/internal/model"
	"internhub/internal/repository"
	"internhub/internal/workflow"
)

// InternshipListResult is the service-level DTO for paginated internships.
type InternshipListResult struct {
	Items []model.Internship `json:"data"`
	Total int                `json:"total"`
}

// CreateInternshipInput describes a new internship posting.
type CreateInternshipInput struct {
	Title       string
	Description string
	CompanyName *string
	Deadline    time.Time
}

// InternshipService manages internship postings.
type InternshipService interface {
	Create(ctx context.Context, actor model.Actor, in CreateInternshipInput) (*model.Internship, error)
	Get(ctx context.Context, id string) (*model.Internship, error)
	List(ctx context.Context, limit, offset int) (*InternshipListResult, error)
}

type internshipService struct {
	repo repository.InternshipRepository
}

func NewInternshipService(repo repository.InternshipRepository) InternshipService {
	return &internshipService{repo: repo}
}

func (s *internshipService) Create(ctx context.Context, actor model.Actor, in CreateInternshipInput) (*model.Internship, error) {
	switch actor.Role {
	case model.RoleFaculty, model.RoleCompany, model.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: role %q cannot post internships", workflow.ErrForbidden, actor.Role)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	if in.Deadline.IsZero() {
		return nil, validationError("deadline is required")
	}

	return s.repo.Create(ctx, &model.Internship{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CompanyName: trimmedOrNil(in.CompanyName),
		CreatedBy:   actor.ID,
		Deadline:    in.Deadline.UTC(),
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *internshipService) Get(ctx context.Context, id string) (*model.Internship, error) {
	return findInternship(ctx, s.repo, id)
}

func findInternship(ctx context.Context, repo repository.InternshipRepository, id string) (*model.Internship, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	in, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	return in, nil
}

func (s *internshipService) List(ctx context.Context, limit, offset int) (*InternshipListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &InternshipListResult{Items: res.Items, Total: res.Total}, nil
}
