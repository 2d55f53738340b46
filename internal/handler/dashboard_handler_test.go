package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/service"
)

type courseListerMock struct {
	courses []models.Course
}

func (m *courseListerMock) List(context.Context, models.CourseFilter) ([]models.Course, error) {
	return m.courses, nil
}

type assignmentListerMock struct {
	assignments []models.Assignment
}

func (m *assignmentListerMock) List(context.Context, models.AssignmentFilter) ([]models.Assignment, error) {
	return m.assignments, nil
}

func fixedDashboardNow() time.Time {
	return time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
}

func newDashboardHandler(courses []models.Course, assignments []models.Assignment) *DashboardHandler {
	svc := service.NewDashboardService(service.DashboardServiceParams{
		Courses:     &courseListerMock{courses: courses},
		Assignments: &assignmentListerMock{assignments: assignments},
		Now:         fixedDashboardNow,
	})
	return NewDashboardHandler(svc)
}

func TestDashboardHandlerStats(t *testing.T) {
	now := fixedDashboardNow()
	h := newDashboardHandler(
		[]models.Course{{ID: 1, Credits: 3, Grade: 90}},
		[]models.Assignment{
			{ID: 1, DueDate: now.Add(3 * time.Hour)},
			{ID: 2, DueDate: now.AddDate(0, 0, 2), Status: models.StatusCompleted},
		},
	)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/dashboard/stats", nil)

	h.Stats(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data dto.DashboardStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.DueToday)
	assert.Equal(t, 50, env.Data.CompletionRate)
	assert.Equal(t, 1, env.Data.TotalCourses)
	assert.Equal(t, "4.50", env.Data.CurrentGPA)
}

func TestDashboardHandlerUpcomingLimit(t *testing.T) {
	now := fixedDashboardNow()
	var assignments []models.Assignment
	for i := 1; i <= 4; i++ {
		assignments = append(assignments, models.Assignment{ID: i, DueDate: now.AddDate(0, 0, i)})
	}
	h := newDashboardHandler(nil, assignments)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/dashboard/upcoming?limit=2", nil)

	h.Upcoming(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []models.Assignment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 2)
}

func TestScheduleHandlerToday(t *testing.T) {
	svc := service.NewScheduleService(
		&courseListerMock{courses: []models.Course{
			{ID: 1, Name: "Calculus II", Schedule: models.ScheduleSlots{{Day: "Tuesday", Time: "10:00"}}},
			{ID: 2, Name: "Chemistry", Schedule: models.ScheduleSlots{{Day: "Friday", Time: "13:00"}}},
		}},
		&assignmentListerMock{},
		nil,
		fixedDashboardNow, // a Tuesday
	)
	h := NewScheduleHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/dashboard/schedule/today", nil)

	h.Today(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data dto.TodayScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Tuesday", env.Data.DayName)
	require.Len(t, env.Data.Classes, 1)
	assert.Equal(t, "Calculus II", env.Data.Classes[0].Course.Name)
}

func TestScheduleHandlerDateOverride(t *testing.T) {
	svc := service.NewScheduleService(
		&courseListerMock{courses: []models.Course{
			{ID: 1, Name: "Calculus II", Schedule: models.ScheduleSlots{{Day: "Tuesday", Time: "10:00"}}},
			{ID: 2, Name: "Chemistry", Schedule: models.ScheduleSlots{{Day: "Friday", Time: "13:00"}}},
		}},
		&assignmentListerMock{},
		nil,
		fixedDashboardNow,
	)
	h := NewScheduleHandler(svc)

	// 2026-09-18 is a Friday
	c, w := newAssignmentTestContext(t, http.MethodGet, "/dashboard/schedule/today?date=2026-09-18", nil)

	h.Today(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data dto.TodayScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Friday", env.Data.DayName)
	require.Len(t, env.Data.Classes, 1)
	assert.Equal(t, "Chemistry", env.Data.Classes[0].Course.Name)
}

func TestScheduleHandlerBadDate(t *testing.T) {
	svc := service.NewScheduleService(&courseListerMock{}, &assignmentListerMock{}, nil, fixedDashboardNow)
	h := NewScheduleHandler(svc)

	c, w := newAssignmentTestContext(t, http.MethodGet, "/dashboard/schedule/today?date=tomorrow", nil)

	h.Today(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
