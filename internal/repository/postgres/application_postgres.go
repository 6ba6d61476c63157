package postgres

import (
	"context"
	"database/sql"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// ApplicationPostgres persists internship applications.
type ApplicationPostgres struct {
	db *sql.DB
}

func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `id, internship_id, student_id, status, resume_path, feedback,
		phone, semester, degree_program, created_at, updated_at`

func scanApplication(s scanner) (*model.InternshipApplication, error) {
	var (
		a        model.InternshipApplication
		status   string
		feedback sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.InternshipID,
		&a.StudentID,
		&status,
		&a.ResumePath,
		&feedback,
		&a.Phone,
		&a.Semester,
		&a.DegreeProgram,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = model.ApplicationStatus(status)
	a.Feedback = nullableString(feedback)
	return &a, nil
}

func (r *ApplicationPostgres) queryApplications(ctx context.Context, q string, args ...any) ([]model.InternshipApplication, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.InternshipApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *ApplicationPostgres) Create(ctx context.Context, app *model.InternshipApplication) (*model.InternshipApplication, error) {
	const q = `
		INSERT INTO internship_applications (id, internship_id, student_id, status, resume_path, feedback,
			phone, semester, degree_program, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + applicationColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		app.ID,
		app.InternshipID,
		app.StudentID,
		string(app.Status),
		app.ResumePath,
		toNullString(app.Feedback),
		app.Phone,
		app.Semester,
		app.DegreeProgram,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return scanApplication(row)
}

func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.InternshipApplication, error) {
	const q = `SELECT ` + applicationColumns + ` FROM internship_applications WHERE id = $1`
	return scanApplication(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

// UpdateStatus keeps the stored feedback when feedback is nil. The row is only
// touched while its status still equals from.
func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, id string, from, to model.ApplicationStatus, feedback *string) (*model.InternshipApplication, error) {
	const q = `
		UPDATE internship_applications
		SET status = $2, feedback = COALESCE($3, feedback), updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING ` + applicationColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q, id, string(to), toNullString(feedback), string(from))
	return scanApplication(row)
}

func (r *ApplicationPostgres) ListByInternship(ctx context.Context, internshipID string) ([]model.InternshipApplication, error) {
	const q = `SELECT ` + applicationColumns + `
		FROM internship_applications
		WHERE internship_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.queryApplications(ctx, q, internshipID)
}

func (r *ApplicationPostgres) ListByStudent(ctx context.Context, studentID string) ([]model.InternshipApplication, error) {
	const q = `SELECT ` + applicationColumns + `
		FROM internship_applications
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.queryApplications(ctx, q, studentID)
}

func (r *ApplicationPostgres) HasOpenApplication(ctx context.Context, internshipID, studentID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM internship_applications
			WHERE internship_id = $1 AND student_id = $2 AND status IN ('pending', 'accepted')
		)`
	var exists bool
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, q, internshipID, studentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
