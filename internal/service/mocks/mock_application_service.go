package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"internhub/internal/model"
	"internhub/internal/service"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, actor model.Actor, in service.ApplyInput) (*model.InternshipApplication, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, actor model.Actor, id, status string, feedback *string) (*model.InternshipApplication, error) {
	args := m.Called(ctx, actor, id, status, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, actor model.Actor, id string) (*model.InternshipApplication, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationService) ListForInternship(ctx context.Context, actor model.Actor, internshipID string) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, actor, internshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

func (m *MockApplicationService) ListMine(ctx context.Context, actor model.Actor) ([]model.InternshipApplication, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InternshipApplication), args.Error(1)
}

type MockInternshipService struct {
	mock.Mock
}

func (m *MockInternshipService) Create(ctx context.Context, actor model.Actor, in service.CreateInternshipInput) (*model.Internship, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Internship), args.Error(1)
}

func (m *MockInternshipService) Get(ctx context.Context, id string) (*model.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Internship), args.Error(1)
}

func (m *MockInternshipService) List(ctx context.Context, limit, offset int) (*service.InternshipListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InternshipListResult), args.Error(1)
}
