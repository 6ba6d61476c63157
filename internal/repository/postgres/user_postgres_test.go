package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internhub/internal/model"
)

var userCols = []string{"id", "name", "email", "role", "company_name", "created_at"}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM users u WHERE u.id = ?").
		WithArgs("faculty-1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("faculty-1", "Dr. Ada", "ada@uni.test", "faculty", "Acme", time.Now()))

	u, err := repo.FindByID(context.Background(), "faculty-1")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleFaculty, u.Role)
	assert.Equal(t, "Acme", *u.CompanyName)

	mock.ExpectQuery("SELECT (.+) FROM users u WHERE u.id = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListByRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM users u WHERE u.role = (.+) ORDER BY u.created_at ASC, u.id ASC").
		WithArgs("faculty").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("faculty-1", "A", "a@uni.test", "faculty", nil, time.Now()).
			AddRow("faculty-2", "B", "b@uni.test", "faculty", nil, time.Now()))

	users, err := repo.ListByRole(context.Background(), model.RoleFaculty)

	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "faculty-1", users[0].ID)
	assert.Nil(t, users[0].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListFacultyByCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM users u WHERE u.role = 'faculty' AND u.company_name = ?").
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("faculty-1", "A", "a@uni.test", "faculty", "Acme", time.Now()))

	users, err := repo.ListFacultyByCompany(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_ListUnallocatedStudents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM users u WHERE u.role = 'student' AND NOT EXISTS").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("student-1", "S", "s@uni.test", "student", nil, time.Now()))

	users, err := repo.ListUnallocatedStudents(context.Background())

	assert.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleStudent, users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
