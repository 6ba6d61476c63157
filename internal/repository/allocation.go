package repository

import (
	"context"

	"internhub/internal/model"
)

// AllocationRepository persists faculty/student allocations.
type AllocationRepository interface {
	// Lock serializes allocation writers for the rest of the current transaction.
	// It must be called inside a transaction.
	Lock(ctx context.Context) error

	Create(ctx context.Context, a *model.FacultyAllocation) (*model.FacultyAllocation, error)

	// FindByStudent returns the student's earliest allocation of any status, or nil.
	FindByStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error)

	// ListByStudents returns allocations of any of studentIDs, oldest first.
	ListByStudents(ctx context.Context, studentIDs []string) ([]model.FacultyAllocation, error)

	// ListByFaculty returns the faculty member's allocations, oldest first.
	ListByFaculty(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error)

	// CountActiveByFaculty counts the faculty member's active allocations.
	CountActiveByFaculty(ctx context.Context, facultyID string) (int, error)
}
