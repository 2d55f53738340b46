package service

import (
	"sort"
	"time"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/pkg/datebucket"
)

// AssignmentSortKey selects the ordering applied by SortAssignments.
type AssignmentSortKey string

const (
	SortByDueDate  AssignmentSortKey = "dueDate"
	SortByPriority AssignmentSortKey = "priority"
	SortByCourse   AssignmentSortKey = "course"
	SortByStatus   AssignmentSortKey = "status"
)

// StatusAll matches every assignment in FilterByStatus.
const StatusAll = "all"

var priorityRank = map[models.AssignmentPriority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

var statusRank = map[models.AssignmentStatus]int{
	models.StatusPending:    3,
	models.StatusInProgress: 2,
	models.StatusCompleted:  1,
}

// FilterByStatus returns the assignments matching the given status, or all
// of them when status is "all" or empty. The input slice is never mutated.
func FilterByStatus(assignments []models.Assignment, status string) []models.Assignment {
	out := make([]models.Assignment, 0, len(assignments))
	if status == "" || status == StatusAll {
		return append(out, assignments...)
	}
	for _, a := range assignments {
		if a.Status == models.AssignmentStatus(status) {
			out = append(out, a)
		}
	}
	return out
}

// SortAssignments returns a sorted copy of assignments. Equal keys keep
// their relative input order. Course-name ordering resolves CourseID
// against the provided courses; an unresolved reference sorts as the empty
// string, ahead of every named course.
func SortAssignments(assignments []models.Assignment, courses []models.Course, key AssignmentSortKey) []models.Assignment {
	out := make([]models.Assignment, len(assignments))
	copy(out, assignments)

	switch key {
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DueDate.Before(out[j].DueDate)
		})
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
		})
	case SortByCourse:
		names := courseNamesByID(courses)
		sort.SliceStable(out, func(i, j int) bool {
			return courseName(names, out[i].CourseID) < courseName(names, out[j].CourseID)
		})
	case SortByStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return statusRank[out[i].Status] > statusRank[out[j].Status]
		})
	}
	return out
}

// DueWithin returns assignments that are not completed and whose due date
// falls in [start, end], inclusive of both bounds.
func DueWithin(assignments []models.Assignment, start, end time.Time) []models.Assignment {
	out := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			continue
		}
		if datebucket.Within(a.DueDate, start, end) {
			out = append(out, a)
		}
	}
	return out
}

// Upcoming returns at most limit open assignments due inside the horizon,
// ordered by due date ascending.
func Upcoming(assignments []models.Assignment, now time.Time, horizonDays, limit int) []models.Assignment {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	if limit <= 0 {
		limit = 5
	}
	due := DueWithin(assignments, now, now.AddDate(0, 0, horizonDays))
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// CountDueToday counts open assignments due on now's calendar day.
func CountDueToday(assignments []models.Assignment, now time.Time) int {
	return countDueInBucket(assignments, now, datebucket.Today)
}

// CountDueTomorrow counts open assignments due on the next calendar day.
func CountDueTomorrow(assignments []models.Assignment, now time.Time) int {
	return countDueInBucket(assignments, now, datebucket.Tomorrow)
}

func countDueInBucket(assignments []models.Assignment, now time.Time, bucket datebucket.Bucket) int {
	count := 0
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			continue
		}
		if datebucket.Classify(now, a.DueDate) == bucket {
			count++
		}
	}
	return count
}

func courseNamesByID(courses []models.Course) map[int]string {
	names := make(map[int]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names
}

func courseName(names map[int]string, courseID *int) string {
	if courseID == nil {
		return ""
	}
	return names[*courseID]
}
