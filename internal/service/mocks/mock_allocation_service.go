package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"internhub/internal/model"
)

type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) AllocateStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationService) CreateAllocation(ctx context.Context, facultyID, studentID string) (*model.FacultyAllocation, error) {
	args := m.Called(ctx, facultyID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationService) FacultyStudentCount(ctx context.Context, facultyID string) (int, error) {
	args := m.Called(ctx, facultyID)
	return args.Int(0), args.Error(1)
}

func (m *MockAllocationService) FacultyStudents(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error) {
	args := m.Called(ctx, facultyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FacultyAllocation), args.Error(1)
}

func (m *MockAllocationService) FacultyWorkloads(ctx context.Context) ([]model.FacultyWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FacultyWorkload), args.Error(1)
}

func (m *MockAllocationService) UnallocatedStudents(ctx context.Context) ([]model.StudentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudentSummary), args.Error(1)
}

func (m *MockAllocationService) BulkAllocate(ctx context.Context) (*model.BulkAllocationResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BulkAllocationResult), args.Error(1)
}
