package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"internhub/internal/model"
)

type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) Lock(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationRepository) Create(ctx context.Context, a *model.FacultyAllocation) (*model.FacultyAllocation, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindByStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]model.FacultyAllocation, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListByFaculty(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error) {
	args := m.Called(ctx, facultyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationRepository) CountActiveByFaculty(ctx context.Context, facultyID string) (int, error) {
	args := m.Called(ctx, facultyID)
	return args.Int(0), args.Error(1)
}
