package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type gradeCategoryRepoMock struct {
	categories []models.GradeCategory
}

func (m *gradeCategoryRepoMock) List(_ context.Context, courseID int) ([]models.GradeCategory, error) {
	out := []models.GradeCategory{}
	for _, c := range m.categories {
		if c.CourseID == courseID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *gradeCategoryRepoMock) ListAll(context.Context) ([]models.GradeCategory, error) {
	return m.categories, nil
}

func (m *gradeCategoryRepoMock) GetByID(_ context.Context, id int) (*models.GradeCategory, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			found := m.categories[i]
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *gradeCategoryRepoMock) Create(_ context.Context, category *models.GradeCategory) error {
	category.ID = len(m.categories) + 1
	m.categories = append(m.categories, *category)
	return nil
}

func (m *gradeCategoryRepoMock) Update(_ context.Context, category *models.GradeCategory) error {
	for i := range m.categories {
		if m.categories[i].ID == category.ID {
			m.categories[i] = *category
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *gradeCategoryRepoMock) Delete(_ context.Context, id int) error {
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type gradeCourseRepoMock struct {
	courses []models.Course
}

func (m *gradeCourseRepoMock) List(context.Context, models.CourseFilter) ([]models.Course, error) {
	return m.courses, nil
}

func (m *gradeCourseRepoMock) GetByID(_ context.Context, id int) (*models.Course, error) {
	for i := range m.courses {
		if m.courses[i].ID == id {
			found := m.courses[i]
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *gradeCourseRepoMock) Create(_ context.Context, course *models.Course) error {
	course.ID = len(m.courses) + 1
	m.courses = append(m.courses, *course)
	return nil
}

func (m *gradeCourseRepoMock) Update(_ context.Context, course *models.Course) error {
	for i := range m.courses {
		if m.courses[i].ID == course.ID {
			m.courses[i] = *course
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *gradeCourseRepoMock) UpdateGrade(_ context.Context, id int, grade float64) error {
	for i := range m.courses {
		if m.courses[i].ID == id {
			m.courses[i].Grade = grade
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *gradeCourseRepoMock) Delete(_ context.Context, id int) error {
	for i := range m.courses {
		if m.courses[i].ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestGradeServiceRecalculate(t *testing.T) {
	courses := &gradeCourseRepoMock{courses: []models.Course{{ID: 1, Name: "Calculus II"}}}
	categories := &gradeCategoryRepoMock{categories: []models.GradeCategory{
		{ID: 1, CourseID: 1, Weight: 50, Grades: models.GradeEntries{{Value: 17, MaxValue: 20}}},
		{ID: 2, CourseID: 1, Weight: 50, Grades: models.GradeEntries{{Value: 45, MaxValue: 50}}},
	}}
	svc := NewGradeService(categories, courses, nil, nil)

	grade, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 87.5, grade, 1e-9)
	assert.InDelta(t, 87.5, courses.courses[0].Grade, 1e-9)
}

func TestGradeServiceRecalculateRoundsToTenth(t *testing.T) {
	courses := &gradeCourseRepoMock{courses: []models.Course{{ID: 1}}}
	categories := &gradeCategoryRepoMock{categories: []models.GradeCategory{
		{ID: 1, CourseID: 1, Weight: 100, Grades: models.GradeEntries{{Value: 2, MaxValue: 3}}},
	}}
	svc := NewGradeService(categories, courses, nil, nil)

	grade, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 66.7, grade, 1e-9)
}

func TestGradeServiceRecalculateMissingCourse(t *testing.T) {
	svc := NewGradeService(&gradeCategoryRepoMock{}, &gradeCourseRepoMock{}, nil, nil)

	_, err := svc.Recalculate(context.Background(), 42)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGradeServiceOverview(t *testing.T) {
	courses := &gradeCourseRepoMock{courses: []models.Course{
		{ID: 1, Name: "Calculus II", Credits: 4, Grade: 88},
		{ID: 2, Name: "Chemistry", Credits: 3, Grade: 76},
	}}
	categories := &gradeCategoryRepoMock{categories: []models.GradeCategory{
		{ID: 1, CourseID: 1, Name: "Exams", Weight: 60, Grades: models.GradeEntries{{Value: 88, MaxValue: 100}}},
	}}
	svc := NewGradeService(categories, courses, nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, overview.TotalCredits)
	assert.Equal(t, "4.14", overview.GPA)
	require.Len(t, overview.Courses, 2)
	require.Len(t, overview.Courses[0].Categories, 1)
	assert.Equal(t, 1, overview.Courses[0].Categories[0].ItemCount)
	assert.Empty(t, overview.Courses[1].Categories)
}

func TestGradeServiceCreateCategoryValidation(t *testing.T) {
	svc := NewGradeService(&gradeCategoryRepoMock{}, &gradeCourseRepoMock{}, nil, nil)

	_, err := svc.CreateCategory(context.Background(), UpsertGradeCategoryRequest{Name: "Exams"})
	require.Error(t, err)

	category, err := svc.CreateCategory(context.Background(), UpsertGradeCategoryRequest{
		CourseID: 1,
		Name:     "Exams",
		Weight:   40,
		Grades:   []GradeEntryRequest{{Value: 18, MaxValue: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, category.ID)
	require.Len(t, category.Grades, 1)
}
