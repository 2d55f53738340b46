package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GradeEntry is a single scored item inside a grade category.
type GradeEntry struct {
	Value    float64 `json:"value"`
	MaxValue float64 `json:"maxValue"`
}

// GradeEntries stores scored items as a JSONB column.
type GradeEntries []GradeEntry

// Value implements driver.Valuer.
func (g GradeEntries) Value() (driver.Value, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner.
func (g *GradeEntries) Scan(src interface{}) error {
	if src == nil {
		*g = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("grade entries: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, g)
}

// GradeCategory is one weighted grading bucket of a course. Its entries
// grow by append only; scores are never edited in place.
type GradeCategory struct {
	ID       int          `db:"id" json:"id"`
	CourseID int          `db:"course_id" json:"courseId"`
	Name     string       `db:"name" json:"name"`
	Weight   float64      `db:"weight" json:"weight"`
	Grades   GradeEntries `db:"grades" json:"grades"`
}
