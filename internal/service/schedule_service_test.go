package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
)

// 2026-09-15 is a Tuesday.
func tuesdayNow() time.Time {
	return time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
}

func TestResolveTodayScheduleFiltersByWeekday(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Name: "Calculus II", Schedule: models.ScheduleSlots{
			{Day: "Tuesday", Time: "10:00"},
			{Day: "Thursday", Time: "10:00"},
		}},
		{ID: 2, Name: "Chemistry", Schedule: models.ScheduleSlots{
			{Day: "Monday", Time: "09:00"},
		}},
		{ID: 3, Name: "History", Schedule: models.ScheduleSlots{
			{Day: "tuesday", Time: "08:30"}, // case-insensitive day match
		}},
	}

	schedule := ResolveTodaySchedule(courses, nil, tuesdayNow())
	assert.Equal(t, "Tuesday", schedule.DayName)
	assert.Equal(t, "2026-09-15", schedule.Date)
	require.Len(t, schedule.Classes, 2)

	// ordered by slot time, and only matching slots carried
	assert.Equal(t, "History", schedule.Classes[0].Course.Name)
	assert.Equal(t, "Calculus II", schedule.Classes[1].Course.Name)
	require.Len(t, schedule.Classes[1].Slots, 1)
	assert.Equal(t, "Tuesday", schedule.Classes[1].Slots[0].Day)
}

func TestResolveTodayScheduleAssignments(t *testing.T) {
	now := tuesdayNow()
	assignments := []models.Assignment{
		{ID: 1, DueDate: time.Date(2026, 9, 15, 23, 0, 0, 0, time.UTC)},
		{ID: 2, DueDate: time.Date(2026, 9, 15, 6, 0, 0, 0, time.UTC), Status: models.StatusCompleted},
		{ID: 3, DueDate: time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)},
		{ID: 4}, // zero due date is never "today"
	}

	schedule := ResolveTodaySchedule(nil, assignments, now)
	// due today regardless of status
	assert.Equal(t, []int{1, 2}, ids(schedule.Assignments))
	assert.Empty(t, schedule.Classes)
}

func TestResolveTodayScheduleMixedTimeFormats(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Name: "Afternoon", Schedule: models.ScheduleSlots{{Day: "Tuesday", Time: "2:00 PM"}}},
		{ID: 2, Name: "Morning", Schedule: models.ScheduleSlots{{Day: "Tuesday", Time: "09:15"}}},
	}
	schedule := ResolveTodaySchedule(courses, nil, tuesdayNow())
	require.Len(t, schedule.Classes, 2)
	assert.Equal(t, "Morning", schedule.Classes[0].Course.Name)
	assert.Equal(t, "Afternoon", schedule.Classes[1].Course.Name)
}

func TestLessSlotTimeFallback(t *testing.T) {
	// both parseable: numeric comparison beats lexicographic
	assert.True(t, lessSlotTime("9:15", "10:00") || lessSlotTime("09:15", "10:00"))
	// unparseable values fall back to string ordering
	assert.True(t, lessSlotTime("after lunch", "before dinner"))
	assert.False(t, lessSlotTime("tbd", "after lunch"))
}

func TestScheduleServiceToday(t *testing.T) {
	svc := NewScheduleService(
		&fakeCourseLister{courses: []models.Course{
			{ID: 1, Name: "Calculus II", Schedule: models.ScheduleSlots{{Day: "Tuesday", Time: "10:00"}}},
		}},
		&fakeAssignmentLister{},
		nil,
		tuesdayNow,
	)

	schedule, err := svc.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, schedule.Classes, 1)
	assert.Equal(t, "Calculus II", schedule.Classes[0].Course.Name)
}
