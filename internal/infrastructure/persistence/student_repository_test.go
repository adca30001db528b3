package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockStudentRepository(t *testing.T) (*GormStudentRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStudentRepository(gormDB), mock, mockDB
}

func TestGormStudentRepository_FindByID(t *testing.T) {
	t.Run("finds existing student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "class"}).
			AddRow(studentID, "Emma", "Dubois", "CM2-A")

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(studentID, 1).
			WillReturnRows(rows)

		student, err := repo.FindByID(context.Background(), studentID)

		assert.NoError(t, err)
		assert.NotNil(t, student)
		assert.Equal(t, "Emma", student.FirstName)
		assert.Equal(t, "CM2-A", student.Class)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(studentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		student, err := repo.FindByID(context.Background(), studentID)

		assert.Nil(t, student)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_FindByClasses(t *testing.T) {
	t.Run("returns empty slice for empty class list", func(t *testing.T) {
		repo, _, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		students, err := repo.FindByClasses(context.Background(), []string{})

		assert.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("finds students across classes", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "class"}).
			AddRow(uuid.New(), "Emma", "Dubois", "CM2-A").
			AddRow(uuid.New(), "Lucas", "Martin", "CM2-B")

		mock.ExpectQuery(`SELECT \* FROM "students" WHERE class IN \(\$1,\$2\)`).
			WithArgs("CM2-A", "CM2-B").
			WillReturnRows(rows)

		students, err := repo.FindByClasses(context.Background(), []string{"CM2-A", "CM2-B"})

		assert.NoError(t, err)
		assert.Len(t, students, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_ListClasses(t *testing.T) {
	t.Run("lists distinct classes sorted", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"class"}).
			AddRow("CM1-A").
			AddRow("CM2-A")

		mock.ExpectQuery(`SELECT DISTINCT "class" FROM "students" ORDER BY class ASC`).
			WillReturnRows(rows)

		classes, err := repo.ListClasses(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []string{"CM1-A", "CM2-A"}, classes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStudentRepository_Delete(t *testing.T) {
	t.Run("returns not found for missing student", func(t *testing.T) {
		repo, mock, mockDB := newMockStudentRepository(t)
		defer mockDB.Close()

		studentID := uuid.New()

		mock.ExpectExec(`DELETE FROM "students" WHERE id = \$1`).
			WithArgs(studentID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), studentID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
