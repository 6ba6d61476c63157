package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"internhub/internal/model"
	"internhub/internal/repository"
)

type MockInternshipRepository struct {
	mock.Mock
}

func (m *MockInternshipRepository) Create(ctx context.Context, in *model.Internship) (*model.Internship, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) FindByID(ctx context.Context, id string) (*model.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Internship), args.Error(1)
}

func (m *MockInternshipRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Internship], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Internship]), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.InternshipApplication) (*model.InternshipApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.InternshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to model.ApplicationStatus, feedback *string) (*model.InternshipApplication, error) {
	args := m.Called(ctx, id, from, to, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByInternship(ctx context.Context, internshipID string) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationRepository) HasOpenApplication(ctx context.Context, internshipID, studentID string) (bool, error) {
	args := m.Called(ctx, internshipID, studentID)
	return args.Bool(0), args.Error(1)
}
