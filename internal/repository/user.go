package repository

import (
	"context"

	"internhub/internal/model"
)

// UserRepository reads user accounts. Listings use the table's natural
// order (created_at, id), which the allocation tie-breaks rely on.
type UserRepository interface {
	// FindByID returns a user by ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// ListByRole returns every user holding role.
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)

	// ListFacultyByCompany returns faculty users whose company name equals company.
	ListFacultyByCompany(ctx context.Context, company string) ([]model.User, error)

	// ListUnallocatedStudents returns students with no allocation row of any status.
	ListUnallocatedStudents(ctx context.Context) ([]model.User, error)
}
