package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type assignmentRepo interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	GetByID(ctx context.Context, id int) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int) error
}

// UpsertAssignmentRequest is the create/update payload for an assignment.
type UpsertAssignmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	CourseID    *int      `json:"courseId"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=high medium low"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Description string    `json:"description"`
	Grade       *float64  `json:"grade" validate:"omitempty,gte=0,lte=100"`
	Weight      float64   `json:"weight" validate:"gte=0"`
}

// AssignmentService manages the assignment collection.
type AssignmentService struct {
	repo      assignmentRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the service.
func NewAssignmentService(repo assignmentRepo, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, logger: logger}
}

// List returns assignments matching the filter.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	assignments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Get returns a single assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id int) (*models.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get assignment")
	}
	return assignment, nil
}

// Create registers a new assignment. New assignments default to pending
// with medium priority and no grade.
func (s *AssignmentService) Create(ctx context.Context, req UpsertAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignment := &models.Assignment{
		Title:       req.Title,
		CourseID:    req.CourseID,
		DueDate:     req.DueDate,
		Priority:    models.AssignmentPriority(req.Priority),
		Status:      models.AssignmentStatus(req.Status),
		Description: req.Description,
		Grade:       req.Grade,
		Weight:      req.Weight,
	}
	if assignment.Priority == "" {
		assignment.Priority = models.PriorityMedium
	}
	if assignment.Status == "" {
		assignment.Status = models.StatusPending
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Update modifies an existing assignment. Direct edits may set any valid
// status, including in-progress.
func (s *AssignmentService) Update(ctx context.Context, id int, req UpsertAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	assignment.Title = req.Title
	assignment.CourseID = req.CourseID
	assignment.DueDate = req.DueDate
	if req.Priority != "" {
		assignment.Priority = models.AssignmentPriority(req.Priority)
	}
	if req.Status != "" {
		assignment.Status = models.AssignmentStatus(req.Status)
	}
	assignment.Description = req.Description
	assignment.Grade = req.Grade
	assignment.Weight = req.Weight
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return assignment, nil
}

// ToggleStatus swaps an assignment between pending and completed. An
// in-progress assignment completes on toggle; the toggle never produces
// in-progress, which is reachable only through Update.
func (s *AssignmentService) ToggleStatus(ctx context.Context, id int) (*models.Assignment, error) {
	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.StatusCompleted {
		assignment.Status = models.StatusPending
	} else {
		assignment.Status = models.StatusCompleted
	}
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle assignment status")
	}
	return assignment, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
