// Package workflow holds the status transition rules for documents and
// internship applications. Rules are pure functions of the actor, the current
// record and the requested status; callers load state and persist results.
package workflow

import (
	"errors"
	"fmt"

	"internhub/internal/model"
)

var (
	// ErrForbidden means the actor's role or ownership does not allow the change at all.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition means the actor may change status, but not along this edge.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidStatus means the requested status is not a known value.
	ErrInvalidStatus = errors.New("invalid status")
)

// ParseDocumentStatus validates a requested document status.
func ParseDocumentStatus(s string) (model.DocumentStatus, error) {
	st := model.DocumentStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// ParseApplicationStatus validates a requested application status.
func ParseApplicationStatus(s string) (model.ApplicationStatus, error) {
	st := model.ApplicationStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// StatusMoved reports a write that lost a race: the stored status is no
// longer the one the transition was authorized against.
func StatusMoved(current, to string) error {
	return fmt.Errorf("%w: status is now %s, cannot move to %s", ErrInvalidTransition, current, to)
}

func transitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
