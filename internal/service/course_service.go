package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type courseRepo interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	UpdateGrade(ctx context.Context, id int, grade float64) error
	Delete(ctx context.Context, id int) error
}

// CourseSlotRequest is one weekly meeting inside a course payload.
type CourseSlotRequest struct {
	Day  string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Time string `json:"time" validate:"required"`
}

// UpsertCourseRequest is the create/update payload for a course.
type UpsertCourseRequest struct {
	Name      string              `json:"name" validate:"required"`
	Professor string              `json:"professor"`
	Room      string              `json:"room"`
	Color     string              `json:"color"`
	Credits   int                 `json:"credits" validate:"gte=0"`
	Semester  string              `json:"semester"`
	Schedule  []CourseSlotRequest `json:"schedule" validate:"dive"`
}

// CourseService manages the course collection.
type CourseService struct {
	repo      courseRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the service.
func NewCourseService(repo courseRepo, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns courses matching the filter.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id int) (*models.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get course")
	}
	return course, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req UpsertCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{
		Name:      req.Name,
		Professor: req.Professor,
		Room:      req.Room,
		Color:     req.Color,
		Credits:   req.Credits,
		Semester:  req.Semester,
		Schedule:  toScheduleSlots(req.Schedule),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course. The stored grade is preserved; it
// only changes through recalculation.
func (s *CourseService) Update(ctx context.Context, id int, req UpsertCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Professor = req.Professor
	course.Room = req.Room
	course.Color = req.Color
	course.Credits = req.Credits
	course.Semester = req.Semester
	course.Schedule = toScheduleSlots(req.Schedule)
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func toScheduleSlots(slots []CourseSlotRequest) models.ScheduleSlots {
	out := make(models.ScheduleSlots, 0, len(slots))
	for _, slot := range slots {
		out = append(out, models.ScheduleSlot{Day: slot.Day, Time: slot.Time})
	}
	return out
}
