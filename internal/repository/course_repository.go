package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the provided filters, ordered by name.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(professor) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf(`SELECT id, name, professor, room, color, credits, semester, schedule, grade
        FROM courses WHERE %s ORDER BY name ASC`, strings.Join(conditions, " AND "))

	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// GetByID fetches one course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `SELECT id, name, professor, room, color, credits, semester, schedule, grade
        FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course and fills its generated ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (name, professor, room, color, credits, semester, schedule, grade)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		course.Name, course.Professor, course.Room, course.Color,
		course.Credits, course.Semester, course.Schedule, course.Grade,
	).Scan(&course.ID); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update rewrites all editable course columns.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `UPDATE courses SET name = $1, professor = $2, room = $3, color = $4,
        credits = $5, semester = $6, schedule = $7, grade = $8 WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		course.Name, course.Professor, course.Room, course.Color,
		course.Credits, course.Semester, course.Schedule, course.Grade, course.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireRowsAffected(result, "course")
}

// UpdateGrade persists a recomputed course grade only.
func (r *CourseRepository) UpdateGrade(ctx context.Context, id int, grade float64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE courses SET grade = $1 WHERE id = $2", grade, id)
	if err != nil {
		return fmt.Errorf("update course grade: %w", err)
	}
	return requireRowsAffected(result, "course")
}

// Delete removes the course. Dependent categories and assignment links are
// handled by ON DELETE clauses on the schema.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireRowsAffected(result, "course")
}
