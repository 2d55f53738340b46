package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/pkg/datebucket"
)

// ScheduleService resolves the same-day schedule feed: classes meeting on
// the reference day merged with assignments due that day.
type ScheduleService struct {
	courses     courseLister
	assignments assignmentLister
	logger      *zap.Logger
	now         func() time.Time
}

// NewScheduleService constructs the service.
func NewScheduleService(courses courseLister, assignments assignmentLister, logger *zap.Logger, now func() time.Time) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{courses: courses, assignments: assignments, logger: logger, now: now}
}

// Today returns the schedule feed for the current day.
func (s *ScheduleService) Today(ctx context.Context) (*dto.TodayScheduleResponse, error) {
	return s.ForDate(ctx, s.now())
}

// ForDate returns the schedule feed for an arbitrary reference day.
func (s *ScheduleService) ForDate(ctx context.Context, ref time.Time) (*dto.TodayScheduleResponse, error) {
	courses, err := s.courses.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, err
	}
	return ResolveTodaySchedule(courses, assignments, ref), nil
}

// ResolveTodaySchedule intersects course schedule slots with now's weekday
// and collects assignments due on now's calendar day regardless of status.
// Classes are ordered by their first matching slot's time of day.
func ResolveTodaySchedule(courses []models.Course, assignments []models.Assignment, now time.Time) *dto.TodayScheduleResponse {
	dayName := datebucket.Weekday(now)

	classes := make([]dto.TodayClass, 0, len(courses))
	for _, course := range courses {
		var slots models.ScheduleSlots
		for _, slot := range course.Schedule {
			if strings.EqualFold(slot.Day, dayName) {
				slots = append(slots, slot)
			}
		}
		if len(slots) > 0 {
			classes = append(classes, dto.TodayClass{Course: course, Slots: slots})
		}
	}
	sort.SliceStable(classes, func(i, j int) bool {
		return lessSlotTime(classes[i].Slots[0].Time, classes[j].Slots[0].Time)
	})

	due := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if datebucket.Classify(now, a.DueDate) == datebucket.Today {
			due = append(due, a)
		}
	}

	return &dto.TodayScheduleResponse{
		Date:        now.Format("2006-01-02"),
		DayName:     dayName,
		Classes:     classes,
		Assignments: due,
	}
}

// lessSlotTime orders schedule times by minute of day when both parse,
// falling back to a plain string compare for free-form values.
func lessSlotTime(a, b string) bool {
	ma, okA := minuteOfDay(a)
	mb, okB := minuteOfDay(b)
	if okA && okB {
		return ma < mb
	}
	return a < b
}

var slotTimeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "15.04"}

func minuteOfDay(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range slotTimeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(raw)); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
