package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/models"
)

type courseLister interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
}

type assignmentLister interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL    time.Duration
	HorizonDays int
}

// DashboardService composes assignment and course collections into the
// dashboard statistics snapshot.
type DashboardService struct {
	courses     courseLister
	assignments assignmentLister
	cache       *CacheService
	logger      *zap.Logger
	now         func() time.Time
	cfg         DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Courses     courseLister
	Assignments assignmentLister
	Cache       *CacheService
	Logger      *zap.Logger
	Now         func() time.Time
	Config      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 7
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		courses:     params.Courses,
		assignments: params.Assignments,
		cache:       params.Cache,
		logger:      logger,
		now:         now,
		cfg:         cfg,
	}
}

// Stats returns the dashboard snapshot and indicates cache utilisation.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, bool, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:stats:%s", now.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.DashboardStatsResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	courses, err := s.courses.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, false, err
	}
	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, false, err
	}

	snapshot := ComposeDashboardStats(assignments, courses, now, s.cfg.HorizonDays)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, snapshot, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return snapshot, false, nil
}

// Upcoming returns the next open assignments inside the horizon.
func (s *DashboardService) Upcoming(ctx context.Context, limit int) ([]models.Assignment, error) {
	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, err
	}
	return Upcoming(assignments, s.now(), s.cfg.HorizonDays, limit), nil
}

// ComposeDashboardStats derives the statistics snapshot from the given
// collections. It is pure: identical inputs and an identical now produce
// an identical snapshot, and the inputs are never modified.
func ComposeDashboardStats(assignments []models.Assignment, courses []models.Course, now time.Time, horizonDays int) *dto.DashboardStatsResponse {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	completed := 0
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			completed++
		}
	}
	completionRate := 0
	if len(assignments) > 0 {
		completionRate = int(math.Round(float64(completed) / float64(len(assignments)) * 100))
	}

	return &dto.DashboardStatsResponse{
		DueToday:       CountDueToday(assignments, now),
		DueTomorrow:    CountDueTomorrow(assignments, now),
		DueThisWeek:    len(DueWithin(assignments, now, now.AddDate(0, 0, horizonDays))),
		CompletionRate: completionRate,
		TotalCourses:   len(courses),
		CurrentGPA:     OverallGPA(courses),
	}
}
