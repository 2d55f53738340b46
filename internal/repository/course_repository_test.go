package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "professor", "room", "color", "credits", "semester", "schedule", "grade"}).
		AddRow(1, "Calculus II", "Dr. Reyes", "B-204", "#4f46e5", 4, "Fall 2026", []byte(`[{"day":"Monday","time":"10:00"}]`), 88.5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, professor, room, color, credits, semester, schedule, grade FROM courses WHERE 1=1 ORDER BY name ASC")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Calculus II", courses[0].Name)
	require.Len(t, courses[0].Schedule, 1)
	assert.Equal(t, "Monday", courses[0].Schedule[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("semester = $1")).
		WithArgs("Fall 2026", "%calc%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "professor", "room", "color", "credits", "semester", "schedule", "grade"}))

	courses, err := repo.List(context.Background(), models.CourseFilter{Semester: "Fall 2026", Search: "Calc"})
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("INSERT INTO courses").
		WithArgs("Calculus II", "Dr. Reyes", "B-204", "#4f46e5", 4, "Fall 2026", sqlmock.AnyArg(), 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	course := &models.Course{
		Name: "Calculus II", Professor: "Dr. Reyes", Room: "B-204", Color: "#4f46e5",
		Credits: 4, Semester: "Fall 2026",
		Schedule: models.ScheduleSlots{{Day: "Monday", Time: "10:00"}},
	}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Equal(t, 7, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateGradeMissing(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET grade = $1 WHERE id = $2")).
		WithArgs(91.2, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateGrade(context.Background(), 42, 91.2)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
