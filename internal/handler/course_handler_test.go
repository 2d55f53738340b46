package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/service"
)

type courseRepoMock struct {
	items      []models.Course
	lastFilter models.CourseFilter
}

func (m *courseRepoMock) List(_ context.Context, filter models.CourseFilter) ([]models.Course, error) {
	m.lastFilter = filter
	return m.items, nil
}

func (m *courseRepoMock) GetByID(_ context.Context, id int) (*models.Course, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			found := m.items[i]
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *courseRepoMock) Create(_ context.Context, course *models.Course) error {
	course.ID = len(m.items) + 1
	m.items = append(m.items, *course)
	return nil
}

func (m *courseRepoMock) Update(_ context.Context, course *models.Course) error {
	for i := range m.items {
		if m.items[i].ID == course.ID {
			m.items[i] = *course
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *courseRepoMock) UpdateGrade(_ context.Context, id int, grade float64) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Grade = grade
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *courseRepoMock) Delete(_ context.Context, id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestCourseHandlerListPassesFilter(t *testing.T) {
	repo := &courseRepoMock{items: []models.Course{{ID: 1, Name: "Calculus II"}}}
	h := NewCourseHandler(service.NewCourseService(repo, nil, nil))

	c, w := newAssignmentTestContext(t, http.MethodGet, "/courses?semester=Fall+2026&search=calc", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fall 2026", repo.lastFilter.Semester)
	assert.Equal(t, "calc", repo.lastFilter.Search)
}

func TestCourseHandlerCreateWithSchedule(t *testing.T) {
	repo := &courseRepoMock{}
	h := NewCourseHandler(service.NewCourseService(repo, nil, nil))

	payload := []byte(`{"name":"Calculus II","credits":4,"schedule":[{"day":"Monday","time":"10:00"}]}`)
	c, w := newAssignmentTestContext(t, http.MethodPost, "/courses", payload)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.items, 1)
	require.Len(t, repo.items[0].Schedule, 1)
	assert.Equal(t, "Monday", repo.items[0].Schedule[0].Day)
}

func TestCourseHandlerCreateRejectsBadDay(t *testing.T) {
	h := NewCourseHandler(service.NewCourseService(&courseRepoMock{}, nil, nil))

	payload := []byte(`{"name":"Calculus II","schedule":[{"day":"Funday","time":"10:00"}]}`)
	c, w := newAssignmentTestContext(t, http.MethodPost, "/courses", payload)

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	h := NewCourseHandler(service.NewCourseService(&courseRepoMock{}, nil, nil))

	c, w := newAssignmentTestContext(t, http.MethodGet, "/courses/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseHandlerUpdatePreservesGrade(t *testing.T) {
	repo := &courseRepoMock{items: []models.Course{{ID: 1, Name: "Calculus II", Grade: 88.5}}}
	h := NewCourseHandler(service.NewCourseService(repo, nil, nil))

	payload := []byte(`{"name":"Calculus III","credits":4}`)
	c, w := newAssignmentTestContext(t, http.MethodPut, "/courses/1", payload)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data models.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Calculus III", env.Data.Name)
	assert.InDelta(t, 88.5, env.Data.Grade, 1e-9)
}

func TestCourseHandlerInvalidID(t *testing.T) {
	h := NewCourseHandler(service.NewCourseService(&courseRepoMock{}, nil, nil))

	c, w := newAssignmentTestContext(t, http.MethodDelete, "/courses/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
