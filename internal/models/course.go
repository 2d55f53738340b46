package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ScheduleSlot is a single weekly meeting of a course.
type ScheduleSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// ScheduleSlots stores the weekly schedule as a JSONB column.
type ScheduleSlots []ScheduleSlot

// Value implements driver.Valuer.
func (s ScheduleSlots) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *ScheduleSlots) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("schedule slots: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, s)
}

// Course is an enrolled course. Grade is maintained by the recalculation
// worker; aggregation only reads it.
type Course struct {
	ID        int           `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Professor string        `db:"professor" json:"professor"`
	Room      string        `db:"room" json:"room"`
	Color     string        `db:"color" json:"color"`
	Credits   int           `db:"credits" json:"credits"`
	Semester  string        `db:"semester" json:"semester"`
	Schedule  ScheduleSlots `db:"schedule" json:"schedule"`
	Grade     float64       `db:"grade" json:"grade"`
}

// CourseFilter describes query params for listing courses.
type CourseFilter struct {
	Semester string
	Search   string
}
