package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
)

func intPtr(v int) *int { return &v }

func dueAt(day int, hour int) time.Time {
	return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestFilterByStatus(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusCompleted},
		{ID: 3, Status: models.StatusInProgress},
	}

	pending := FilterByStatus(assignments, "pending")
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].ID)

	assert.Len(t, FilterByStatus(assignments, StatusAll), 3)
	assert.Len(t, FilterByStatus(assignments, ""), 3)
	assert.Empty(t, FilterByStatus(assignments, "archived"))

	// input must survive filtering untouched
	assert.Equal(t, 1, assignments[0].ID)
	assert.Len(t, assignments, 3)
}

func TestSortAssignmentsByDueDate(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, DueDate: dueAt(10, 0)},
		{ID: 2, DueDate: dueAt(2, 0)},
		{ID: 3, DueDate: dueAt(5, 0)},
	}
	sorted := SortAssignments(assignments, nil, SortByDueDate)
	assert.Equal(t, []int{2, 3, 1}, ids(sorted))
	// original order untouched
	assert.Equal(t, []int{1, 2, 3}, ids(assignments))
}

func TestSortAssignmentsByPriority(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Priority: models.PriorityLow},
		{ID: 2, Priority: models.PriorityHigh},
		{ID: 3, Priority: models.PriorityMedium},
		{ID: 4, Priority: models.PriorityHigh},
	}
	sorted := SortAssignments(assignments, nil, SortByPriority)
	assert.Equal(t, []int{2, 4, 3, 1}, ids(sorted))
}

func TestSortAssignmentsByStatus(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Status: models.StatusCompleted},
		{ID: 2, Status: models.StatusInProgress},
		{ID: 3, Status: models.StatusPending},
		{ID: 4, Status: models.StatusPending},
	}
	sorted := SortAssignments(assignments, nil, SortByStatus)
	assert.Equal(t, []int{3, 4, 2, 1}, ids(sorted))
}

func TestSortAssignmentsByCourse(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Name: "Linear Algebra"},
		{ID: 2, Name: "Chemistry"},
	}
	assignments := []models.Assignment{
		{ID: 1, CourseID: intPtr(1)},
		{ID: 2, CourseID: nil}, // unresolved sorts first
		{ID: 3, CourseID: intPtr(2)},
		{ID: 4, CourseID: intPtr(99)}, // dangling reference behaves like unresolved
	}
	sorted := SortAssignments(assignments, courses, SortByCourse)
	assert.Equal(t, []int{2, 4, 3, 1}, ids(sorted))
}

func TestSortAssignmentsStability(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Priority: models.PriorityHigh},
		{ID: 2, Priority: models.PriorityHigh},
		{ID: 3, Priority: models.PriorityHigh},
	}
	sorted := SortAssignments(assignments, nil, SortByPriority)
	assert.Equal(t, []int{1, 2, 3}, ids(sorted))
}

func TestDueWithinInclusiveBounds(t *testing.T) {
	start := dueAt(1, 0)
	end := dueAt(8, 0)
	assignments := []models.Assignment{
		{ID: 1, DueDate: start},
		{ID: 2, DueDate: end},
		{ID: 3, DueDate: dueAt(9, 0)},
		{ID: 4, DueDate: dueAt(4, 0), Status: models.StatusCompleted},
		{ID: 5, DueDate: dueAt(4, 0), Status: models.StatusInProgress},
		{ID: 6}, // zero due date never matches
	}
	due := DueWithin(assignments, start, end)
	assert.Equal(t, []int{1, 2, 5}, ids(due))
}

func TestUpcomingDefaults(t *testing.T) {
	now := dueAt(1, 12)
	var assignments []models.Assignment
	for i := 1; i <= 8; i++ {
		assignments = append(assignments, models.Assignment{ID: i, DueDate: dueAt(9-i, 18)})
	}
	upcoming := Upcoming(assignments, now, 0, 0)
	require.Len(t, upcoming, 5)
	assert.Equal(t, []int{8, 7, 6, 5, 4}, ids(upcoming))
}

func TestUpcomingExcludesCompletedAndBeyondHorizon(t *testing.T) {
	now := dueAt(1, 12)
	assignments := []models.Assignment{
		{ID: 1, DueDate: dueAt(2, 0)},
		{ID: 2, DueDate: dueAt(3, 0), Status: models.StatusCompleted},
		{ID: 3, DueDate: dueAt(20, 0)},
	}
	upcoming := Upcoming(assignments, now, 7, 5)
	assert.Equal(t, []int{1}, ids(upcoming))
}

func TestCountDueTodayAndTomorrow(t *testing.T) {
	now := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	assignments := []models.Assignment{
		{ID: 1, DueDate: time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)},
		{ID: 2, DueDate: time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), Status: models.StatusCompleted},
		{ID: 3, DueDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)},
		{ID: 4, DueDate: time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC)},
		{ID: 5}, // invalid due date lands in no bucket
	}
	assert.Equal(t, 1, CountDueToday(assignments, now))
	assert.Equal(t, 1, CountDueTomorrow(assignments, now))
}

func ids(assignments []models.Assignment) []int {
	out := make([]int, len(assignments))
	for i, a := range assignments {
		out[i] = a.ID
	}
	return out
}
