package postgres

import (
	"context"
	"database/sql"
	"errors"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// allocationLockKey identifies the advisory lock guarding allocation writes.
const allocationLockKey int64 = 0x616c6c6f63 // "alloc"

// AllocationPostgres persists faculty allocations.
type AllocationPostgres struct {
	db *sql.DB
}

func NewAllocationPostgres(db *sql.DB) *AllocationPostgres {
	return &AllocationPostgres{db: db}
}

var _ repository.AllocationRepository = (*AllocationPostgres)(nil)

const allocationColumns = `id, faculty_id, student_id, status, created_at`

func scanAllocation(s scanner) (*model.FacultyAllocation, error) {
	var (
		a      model.FacultyAllocation
		status string
	)
	if err := s.Scan(&a.ID, &a.FacultyID, &a.StudentID, &status, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Status = model.AllocationStatus(status)
	return &a, nil
}

func (r *AllocationPostgres) queryAllocations(ctx context.Context, q string, args ...any) ([]model.FacultyAllocation, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FacultyAllocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Lock takes a transaction-scoped advisory lock; it is released on commit or rollback.
func (r *AllocationPostgres) Lock(ctx context.Context) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, allocationLockKey)
	return err
}

func (r *AllocationPostgres) Create(ctx context.Context, a *model.FacultyAllocation) (*model.FacultyAllocation, error) {
	const q = `
		INSERT INTO faculty_allocations (id, faculty_id, student_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + allocationColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		a.ID, a.FacultyID, a.StudentID, string(a.Status), a.CreatedAt)
	return scanAllocation(row)
}

func (r *AllocationPostgres) FindByStudent(ctx context.Context, studentID string) (*model.FacultyAllocation, error) {
	const q = `SELECT ` + allocationColumns + `
		FROM faculty_allocations
		WHERE student_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT 1`
	a, err := scanAllocation(database.Conn(ctx, r.db).QueryRowContext(ctx, q, studentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AllocationPostgres) ListByStudents(ctx context.Context, studentIDs []string) ([]model.FacultyAllocation, error) {
	if len(studentIDs) == 0 {
		return []model.FacultyAllocation{}, nil
	}
	args := make([]any, len(studentIDs))
	for i, id := range studentIDs {
		args[i] = id
	}
	q := `SELECT ` + allocationColumns + `
		FROM faculty_allocations
		WHERE student_id IN (` + placeholders(1, len(studentIDs)) + `)
		ORDER BY created_at ASC, id ASC`
	return r.queryAllocations(ctx, q, args...)
}

func (r *AllocationPostgres) ListByFaculty(ctx context.Context, facultyID string) ([]model.FacultyAllocation, error) {
	const q = `SELECT ` + allocationColumns + `
		FROM faculty_allocations
		WHERE faculty_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.queryAllocations(ctx, q, facultyID)
}

func (r *AllocationPostgres) CountActiveByFaculty(ctx context.Context, facultyID string) (int, error) {
	const q = `SELECT COUNT(*) FROM faculty_allocations WHERE faculty_id = $1 AND status = 'active'`
	var n int
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q, facultyID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
