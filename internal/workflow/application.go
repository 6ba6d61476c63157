package workflow

import (
	"fmt"

	"internhub/internal/model"
)

type applicationEdge struct {
	from model.ApplicationStatus
	to   model.ApplicationStatus
}

var (
	studentApplicationEdges = map[applicationEdge]bool{
		{model.ApplicationStatusPending, model.ApplicationStatusWithdrawn}: true,
	}
	facultyApplicationEdges = map[applicationEdge]bool{
		{model.ApplicationStatusPending, model.ApplicationStatusAccepted}: true,
		{model.ApplicationStatusPending, model.ApplicationStatusRejected}: true,
	}
)

// AuthorizeApplicationStatus checks whether actor may move app to target.
// internship is the posting app belongs to; its creator is the only faculty
// member allowed to decide on the application.
func AuthorizeApplicationStatus(actor model.Actor, app *model.InternshipApplication, internship *model.Internship, target model.ApplicationStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	edge := applicationEdge{app.Status, target}

	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleStudent:
		if app.StudentID != actor.ID {
			return fmt.Errorf("%w: application belongs to another student", ErrForbidden)
		}
		if !studentApplicationEdges[edge] {
			return transitionError(string(app.Status), string(target))
		}
		return nil
	case model.RoleFaculty:
		if internship == nil || internship.CreatedBy != actor.ID {
			return fmt.Errorf("%w: only the internship creator may decide", ErrForbidden)
		}
		if !facultyApplicationEdges[edge] {
			return transitionError(string(app.Status), string(target))
		}
		return nil
	case model.RoleCompany:
		return fmt.Errorf("%w: companies cannot change application status", ErrForbidden)
	default:
		return fmt.Errorf("%w: unknown role %q", ErrForbidden, actor.Role)
	}
}

// CanReadApplication reports whether actor may view app.
func CanReadApplication(actor model.Actor, app *model.InternshipApplication, internship *model.Internship) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleStudent:
		return app.StudentID == actor.ID
	case model.RoleFaculty, model.RoleCompany:
		return internship != nil && internship.CreatedBy == actor.ID
	default:
		return false
	}
}

// CanListApplications reports whether actor may list every application of internship.
func CanListApplications(actor model.Actor, internship *model.Internship) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleFaculty, model.RoleCompany:
		return internship.CreatedBy == actor.ID
	default:
		return false
	}
}
