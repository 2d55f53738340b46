package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type gradeCategoryRepo interface {
	List(ctx context.Context, courseID int) ([]models.GradeCategory, error)
	ListAll(ctx context.Context) ([]models.GradeCategory, error)
	GetByID(ctx context.Context, id int) (*models.GradeCategory, error)
	Create(ctx context.Context, category *models.GradeCategory) error
	Update(ctx context.Context, category *models.GradeCategory) error
	Delete(ctx context.Context, id int) error
}

// GradeEntryRequest is one scored item inside a category payload.
type GradeEntryRequest struct {
	Value    float64 `json:"value" validate:"gte=0"`
	MaxValue float64 `json:"maxValue" validate:"gte=0"`
}

// UpsertGradeCategoryRequest is the create/update payload for a category.
type UpsertGradeCategoryRequest struct {
	CourseID int                 `json:"courseId" validate:"required"`
	Name     string              `json:"name" validate:"required"`
	Weight   float64             `json:"weight" validate:"gte=0,lte=100"`
	Grades   []GradeEntryRequest `json:"grades" validate:"dive"`
}

// GradeService manages grade categories and derives course grade rollups.
type GradeService struct {
	categories gradeCategoryRepo
	courses    courseRepo
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewGradeService constructs the service.
func NewGradeService(categories gradeCategoryRepo, courses courseRepo, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{categories: categories, courses: courses, validator: validate, logger: logger}
}

// ListCategories returns the categories of one course, or all categories
// when courseID is 0.
func (s *GradeService) ListCategories(ctx context.Context, courseID int) ([]models.GradeCategory, error) {
	var categories []models.GradeCategory
	var err error
	if courseID > 0 {
		categories, err = s.categories.List(ctx, courseID)
	} else {
		categories, err = s.categories.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade categories")
	}
	return categories, nil
}

// CreateCategory registers a new grading bucket for a course.
func (s *GradeService) CreateCategory(ctx context.Context, req UpsertGradeCategoryRequest) (*models.GradeCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade category payload")
	}
	category := &models.GradeCategory{
		CourseID: req.CourseID,
		Name:     req.Name,
		Weight:   req.Weight,
		Grades:   toGradeEntries(req.Grades),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade category")
	}
	return category, nil
}

// UpdateCategory replaces a category's fields, including its scored items.
func (s *GradeService) UpdateCategory(ctx context.Context, id int, req UpsertGradeCategoryRequest) (*models.GradeCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade category payload")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	category.CourseID = req.CourseID
	category.Name = req.Name
	category.Weight = req.Weight
	category.Grades = toGradeEntries(req.Grades)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade category")
	}
	return category, nil
}

// GetCategory fetches one grading bucket.
func (s *GradeService) GetCategory(ctx context.Context, id int) (*models.GradeCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	return category, nil
}

// DeleteCategory removes a grading bucket.
func (s *GradeService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade category")
	}
	return nil
}

// Recalculate recomputes one course's stored grade from its weighted
// categories and persists the result. It is the recalculation worker's
// entry point; aggregation elsewhere only reads course.Grade.
func (s *GradeService) Recalculate(ctx context.Context, courseID int) (float64, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	categories, err := s.categories.List(ctx, courseID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade categories")
	}
	grade := math.Round(CourseGradeFromCategories(categories)*10) / 10
	if err := s.courses.UpdateGrade(ctx, courseID, grade); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store course grade")
	}
	return grade, nil
}

// CourseReport builds the category breakdown for one course.
func (s *GradeService) CourseReport(ctx context.Context, courseID int) (*dto.CourseGradeReport, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	categories, err := s.categories.List(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade categories")
	}
	return buildCourseReport(*course, categories), nil
}

// Overview builds the cross-course grade summary.
func (s *GradeService) Overview(ctx context.Context) (*dto.GradeOverview, error) {
	courses, err := s.courses.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade categories")
	}

	byCourse := make(map[int][]models.GradeCategory)
	for _, category := range categories {
		byCourse[category.CourseID] = append(byCourse[category.CourseID], category)
	}

	overview := &dto.GradeOverview{GPA: OverallGPA(courses)}
	for _, course := range courses {
		overview.TotalCredits += course.Credits
		overview.Courses = append(overview.Courses, *buildCourseReport(course, byCourse[course.ID]))
	}
	return overview, nil
}

func buildCourseReport(course models.Course, categories []models.GradeCategory) *dto.CourseGradeReport {
	report := &dto.CourseGradeReport{
		CourseID:    course.ID,
		CourseName:  course.Name,
		Credits:     course.Credits,
		CourseGrade: course.Grade,
	}
	for _, category := range categories {
		report.Categories = append(report.Categories, dto.CategoryBreakdown{
			CategoryID: category.ID,
			Name:       category.Name,
			Weight:     category.Weight,
			ItemCount:  len(category.Grades),
			Grade:      CategoryGrade(category),
		})
	}
	return report
}

func toGradeEntries(entries []GradeEntryRequest) models.GradeEntries {
	out := make(models.GradeEntries, 0, len(entries))
	for _, entry := range entries {
		out = append(out, models.GradeEntry{Value: entry.Value, MaxValue: entry.MaxValue})
	}
	return out
}
