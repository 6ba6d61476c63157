package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internhub/internal/database"
	"internhub/internal/model"
)

var allocationCols = []string{"id", "faculty_id", "student_id", "status", "created_at"}

func TestAllocationPostgres_LockInsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationPostgres(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(allocationLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO faculty_allocations").
		WithArgs("alloc-1", "faculty-1", "student-1", "active", now).
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow("alloc-1", "faculty-1", "student-1", "active", now))
	mock.ExpectCommit()

	var created *model.FacultyAllocation
	err = database.NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.Lock(ctx); err != nil {
			return err
		}
		var err error
		created, err = repo.Create(ctx, &model.FacultyAllocation{
			ID: "alloc-1", FacultyID: "faculty-1", StudentID: "student-1",
			Status: model.AllocationStatusActive, CreatedAt: now,
		})
		return err
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AllocationStatusActive, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationPostgres_FindByStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM faculty_allocations WHERE student_id = ?").
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow("alloc-1", "faculty-1", "student-1", "completed", time.Now()))

	a, err := repo.FindByStudent(ctx, "student-1")
	assert.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, model.AllocationStatusCompleted, a.Status)

	mock.ExpectQuery("SELECT (.+) FROM faculty_allocations WHERE student_id = ?").
		WithArgs("student-2").
		WillReturnError(sql.ErrNoRows)

	a, err = repo.FindByStudent(ctx, "student-2")
	assert.NoError(t, err)
	assert.Nil(t, a)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationPostgres_ListByStudents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationPostgres(db)
	ctx := context.Background()

	t.Run("empty input skips the query", func(t *testing.T) {
		items, err := repo.ListByStudents(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("expands placeholders", func(t *testing.T) {
		mock.ExpectQuery(`WHERE student_id IN \(\$1, \$2\)`).
			WithArgs("student-2", "student-3").
			WillReturnRows(sqlmock.NewRows(allocationCols).
				AddRow("alloc-2", "faculty-2", "student-2", "active", time.Now()).
				AddRow("alloc-3", "faculty-1", "student-3", "active", time.Now()))

		items, err := repo.ListByStudents(ctx, []string{"student-2", "student-3"})
		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "faculty-2", items[0].FacultyID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationPostgres_ListByFaculty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM faculty_allocations WHERE faculty_id = ?").
		WithArgs("faculty-1").
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow("alloc-1", "faculty-1", "student-1", "active", time.Now()))

	items, err := repo.ListByFaculty(context.Background(), "faculty-1")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationPostgres_CountActiveByFaculty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAllocationPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM faculty_allocations WHERE faculty_id = (.+) AND status = 'active'").
		WithArgs("faculty-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountActiveByFaculty(context.Background(), "faculty-1")

	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
