package postgres

import (
	"context"
	"database/sql"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// UserPostgres reads users. Every listing is ordered by (created_at, id) so
// callers see a stable natural order.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `u.id, u.name, u.email, u.role, u.company_name, u.created_at`

func scanUser(s scanner) (*model.User, error) {
	var (
		u       model.User
		role    string
		company sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &role, &company, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.CompanyName = nullableString(company)
	return &u, nil
}

func (r *UserPostgres) queryUsers(ctx context.Context, q string, args ...any) ([]model.User, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	return scanUser(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users u WHERE u.role = $1 ORDER BY u.created_at ASC, u.id ASC`
	return r.queryUsers(ctx, q, string(role))
}

func (r *UserPostgres) ListFacultyByCompany(ctx context.Context, company string) ([]model.User, error) {
	const q = `SELECT ` + userColumns + `
		FROM users u
		WHERE u.role = 'faculty' AND u.company_name = $1
		ORDER BY u.created_at ASC, u.id ASC`
	return r.queryUsers(ctx, q, company)
}

func (r *UserPostgres) ListUnallocatedStudents(ctx context.Context) ([]model.User, error) {
	const q = `SELECT ` + userColumns + `
		FROM users u
		WHERE u.role = 'student'
		  AND NOT EXISTS (SELECT 1 FROM faculty_allocations fa WHERE fa.student_id = u.id)
		ORDER BY u.created_at ASC, u.id ASC`
	return r.queryUsers(ctx, q)
}
