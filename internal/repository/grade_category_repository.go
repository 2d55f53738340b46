package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

// GradeCategoryRepository manages persistence for grade category records.
type GradeCategoryRepository struct {
	db *sqlx.DB
}

// NewGradeCategoryRepository constructs a GradeCategoryRepository.
func NewGradeCategoryRepository(db *sqlx.DB) *GradeCategoryRepository {
	return &GradeCategoryRepository{db: db}
}

// List returns the categories belonging to one course.
func (r *GradeCategoryRepository) List(ctx context.Context, courseID int) ([]models.GradeCategory, error) {
	query := `SELECT id, course_id, name, weight, grades
        FROM grade_categories WHERE course_id = $1 ORDER BY id ASC`
	categories := []models.GradeCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, courseID); err != nil {
		return nil, fmt.Errorf("list grade categories: %w", err)
	}
	return categories, nil
}

// ListAll returns every category across all courses.
func (r *GradeCategoryRepository) ListAll(ctx context.Context) ([]models.GradeCategory, error) {
	query := `SELECT id, course_id, name, weight, grades
        FROM grade_categories ORDER BY course_id ASC, id ASC`
	categories := []models.GradeCategory{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list all grade categories: %w", err)
	}
	return categories, nil
}

// GetByID fetches one category by ID.
func (r *GradeCategoryRepository) GetByID(ctx context.Context, id int) (*models.GradeCategory, error) {
	query := `SELECT id, course_id, name, weight, grades FROM grade_categories WHERE id = $1`
	var category models.GradeCategory
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a category and fills its generated ID.
func (r *GradeCategoryRepository) Create(ctx context.Context, category *models.GradeCategory) error {
	query := `INSERT INTO grade_categories (course_id, name, weight, grades)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		category.CourseID, category.Name, category.Weight, category.Grades,
	).Scan(&category.ID); err != nil {
		return fmt.Errorf("create grade category: %w", err)
	}
	return nil
}

// Update rewrites all editable category columns.
func (r *GradeCategoryRepository) Update(ctx context.Context, category *models.GradeCategory) error {
	query := `UPDATE grade_categories SET course_id = $1, name = $2, weight = $3, grades = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		category.CourseID, category.Name, category.Weight, category.Grades, category.ID,
	)
	if err != nil {
		return fmt.Errorf("update grade category: %w", err)
	}
	return requireRowsAffected(result, "grade category")
}

// Delete removes the category.
func (r *GradeCategoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM grade_categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete grade category: %w", err)
	}
	return requireRowsAffected(result, "grade category")
}
