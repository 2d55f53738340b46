package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

// AssignmentRepository manages persistence for assignment records.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns assignments matching the provided filters, ordered by due
// date ascending.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.CourseID != nil {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, *filter.CourseID)
	}
	if filter.Status != "" && filter.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	query := fmt.Sprintf(`SELECT id, title, course_id, due_date, priority, status, description, grade, weight
        FROM assignments WHERE %s ORDER BY due_date ASC, id ASC`, strings.Join(conditions, " AND "))

	assignments := []models.Assignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// GetByID fetches one assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	query := `SELECT id, title, course_id, due_date, priority, status, description, grade, weight
        FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts an assignment and fills its generated ID.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `INSERT INTO assignments (title, course_id, due_date, priority, status, description, grade, weight)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		assignment.Title, assignment.CourseID, assignment.DueDate, assignment.Priority,
		assignment.Status, assignment.Description, assignment.Grade, assignment.Weight,
	).Scan(&assignment.ID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update rewrites all editable assignment columns.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := `UPDATE assignments SET title = $1, course_id = $2, due_date = $3, priority = $4,
        status = $5, description = $6, grade = $7, weight = $8 WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		assignment.Title, assignment.CourseID, assignment.DueDate, assignment.Priority,
		assignment.Status, assignment.Description, assignment.Grade, assignment.Weight, assignment.ID,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return requireRowsAffected(result, "assignment")
}

// Delete removes the assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return requireRowsAffected(result, "assignment")
}
