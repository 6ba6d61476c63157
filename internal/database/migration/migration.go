package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"internhub/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last table step; its presence means the schema is in place.
const sentinelTable = "public.internship_applications"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL,
  email        TEXT        NOT NULL UNIQUE,
  role         TEXT        NOT NULL CHECK (role IN ('admin', 'faculty', 'student', 'company')),
  company_name TEXT,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_role_company",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_role_company ON users (role, company_name);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id           UUID        NOT NULL REFERENCES users (id),
  type              TEXT        NOT NULL CHECK (type IN ('offer_letter', 'monthly_report', 'attendance')),
  filename          TEXT        NOT NULL,
  storage_path      TEXT        NOT NULL UNIQUE,
  size              BIGINT      NOT NULL CHECK (size >= 0),
  content_type      TEXT        NOT NULL,
  status            TEXT        DEFAULT 'draft' CHECK (status IN ('draft', 'submitted', 'under_review', 'approved', 'rejected')),
  company_name      TEXT,
  internship_domain TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_user_type_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_user_type_status ON documents (user_id, type, status);`,
	},
	{
		Name: "create_index_documents_company_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_company_name ON documents (company_name);`,
	},
	{
		Name: "create_table_document_feedback",
		SQL: `CREATE TABLE IF NOT EXISTS document_feedback (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  faculty_id  UUID        NOT NULL REFERENCES users (id),
  feedback    TEXT        NOT NULL,
  rating      SMALLINT    CHECK (rating BETWEEN 1 AND 5),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_feedback_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_feedback_document ON document_feedback (document_id, created_at);`,
	},
	{
		Name: "create_table_faculty_allocations",
		SQL: `CREATE TABLE IF NOT EXISTS faculty_allocations (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  faculty_id UUID        NOT NULL REFERENCES users (id),
  student_id UUID        NOT NULL REFERENCES users (id),
  status     TEXT        NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_faculty_allocations_faculty_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_faculty_allocations_faculty_status ON faculty_allocations (faculty_id, status);`,
	},
	{
		Name: "create_index_faculty_allocations_student",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_faculty_allocations_student ON faculty_allocations (student_id);`,
	},
	{
		Name: "create_table_internships",
		SQL: `CREATE TABLE IF NOT EXISTS internships (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title        TEXT        NOT NULL,
  description  TEXT        NOT NULL DEFAULT '',
  company_name TEXT,
  created_by   UUID        NOT NULL REFERENCES users (id),
  deadline     TIMESTAMPTZ NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_internship_applications",
		SQL: `CREATE TABLE IF NOT EXISTS internship_applications (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  internship_id  UUID        NOT NULL REFERENCES internships (id) ON DELETE CASCADE,
  student_id     UUID        NOT NULL REFERENCES users (id),
  status         TEXT        NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected', 'withdrawn')),
  resume_path    TEXT        NOT NULL,
  feedback       TEXT,
  phone          TEXT        NOT NULL,
  semester       TEXT        NOT NULL,
  degree_program TEXT        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_internship_applications_internship_student",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_internship_applications_internship_student ON internship_applications (internship_id, student_id);`,
	},
}

// EnsureMigrated checks whether the schema exists and runs every step if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logger.With("database")

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Str("db_host", dbHost).Send()

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Str("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)).
			Str("db_host", dbHost).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Send()
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Str("db_host", dbHost).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Str("db_host", dbHost).Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Str("error_message", err.Error()).
				Str("db_host", dbHost).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Str("db_host", dbHost).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Str("db_host", dbHost).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
