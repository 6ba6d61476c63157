package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	ErrIDRequired     = fmt.Errorf("%w: id is required", ErrValidation)
	ErrReaderNil      = fmt.Errorf("%w: reader is nil", ErrValidation)
	ErrResumeRequired = fmt.Errorf("%w: exactly one resume file is required", ErrValidation)
	ErrInvalidRating  = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)

	ErrDocumentNotFound    = fmt.Errorf("document %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrInternshipNotFound  = fmt.Errorf("internship %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)

	ErrAlreadyAllocated     = errors.New("student is already allocated")
	ErrFacultyAtCapacity    = errors.New("faculty member has reached the student limit")
	ErrDuplicateApplication = errors.New("student already has an open application for this internship")
	ErrDeadlinePassed       = errors.New("application deadline has passed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
