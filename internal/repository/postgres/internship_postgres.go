package postgres

import (
	"context"
	"database/sql"

	"internhub/internal/database"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// InternshipPostgres persists internship postings.
type InternshipPostgres struct {
	db *sql.DB
}

func NewInternshipPostgres(db *sql.DB) *InternshipPostgres {
	return &InternshipPostgres{db: db}
}

var _ repository.InternshipRepository = (*InternshipPostgres)(nil)

const internshipColumns = `id, title, description, company_name, created_by, deadline, created_at`

func scanInternship(s scanner) (*model.Internship, error) {
	var (
		in      model.Internship
		company sql.NullString
	)
	if err := s.Scan(&in.ID, &in.Title, &in.Description, &company, &in.CreatedBy, &in.Deadline, &in.CreatedAt); err != nil {
		return nil, err
	}
	in.CompanyName = nullableString(company)
	return &in, nil
}

func (r *InternshipPostgres) Create(ctx context.Context, in *model.Internship) (*model.Internship, error) {
	const q = `
		INSERT INTO internships (id, title, description, company_name, created_by, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + internshipColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		in.ID, in.Title, in.Description, toNullString(in.CompanyName), in.CreatedBy, in.Deadline, in.CreatedAt)
	return scanInternship(row)
}

func (r *InternshipPostgres) FindByID(ctx context.Context, id string) (*model.Internship, error) {
	const q = `SELECT ` + internshipColumns + ` FROM internships WHERE id = $1`
	return scanInternship(database.Conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *InternshipPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Internship], error) {
	conn := database.Conn(ctx, r.db)

	var total int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM internships`).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + internshipColumns + `
		FROM internships
		ORDER BY deadline ASC, id ASC
		LIMIT $1 OFFSET $2`
	rows, err := conn.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Internship, 0)
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Internship]{Items: items, Total: total}, nil
}
