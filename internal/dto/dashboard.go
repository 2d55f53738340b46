package dto

import "github.com/studytrack/studytrack-api/internal/models"

// DashboardStatsResponse is the single statistics snapshot shown on the
// dashboard. Every call recomputes it from the current collections.
type DashboardStatsResponse struct {
	DueToday       int    `json:"dueToday"`
	DueTomorrow    int    `json:"dueTomorrow"`
	DueThisWeek    int    `json:"dueThisWeek"`
	CompletionRate int    `json:"completionRate"`
	TotalCourses   int    `json:"totalCourses"`
	CurrentGPA     string `json:"currentGPA"`
}

// TodayClass is a course restricted to its schedule slots matching today.
type TodayClass struct {
	Course models.Course        `json:"course"`
	Slots  models.ScheduleSlots `json:"slots"`
}

// TodayScheduleResponse pairs today's classes with today's due assignments.
// Both sequences may be empty; that is not an error.
type TodayScheduleResponse struct {
	Date        string              `json:"date"`
	DayName     string              `json:"dayName"`
	Classes     []TodayClass        `json:"classes"`
	Assignments []models.Assignment `json:"assignments"`
}
