package models

import "time"

// AssignmentPriority enumerates assignment urgency levels.
type AssignmentPriority string

const (
	PriorityHigh   AssignmentPriority = "high"
	PriorityMedium AssignmentPriority = "medium"
	PriorityLow    AssignmentPriority = "low"
)

// AssignmentStatus enumerates assignment lifecycle states.
type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusInProgress AssignmentStatus = "in-progress"
	StatusCompleted  AssignmentStatus = "completed"
)

// Assignment is a due-dated piece of coursework. CourseID is a weak
// reference: it may be nil or point at a course that no longer exists.
// A zero DueDate means the stored timestamp could not be resolved.
type Assignment struct {
	ID          int                `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	CourseID    *int               `db:"course_id" json:"courseId,omitempty"`
	DueDate     time.Time          `db:"due_date" json:"dueDate"`
	Priority    AssignmentPriority `db:"priority" json:"priority"`
	Status      AssignmentStatus   `db:"status" json:"status"`
	Description string             `db:"description" json:"description,omitempty"`
	Grade       *float64           `db:"grade" json:"grade,omitempty"`
	Weight      float64            `db:"weight" json:"weight"`
}

// AssignmentFilter describes query params for listing assignments.
type AssignmentFilter struct {
	CourseID *int
	Status   AssignmentStatus
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p AssignmentPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s AssignmentStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
