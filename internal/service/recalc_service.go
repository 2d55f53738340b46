package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/pkg/jobs"
)

const jobTypeCourseRecalc = "course.recalculate"

// RecalcService runs course grade recomputation on a background worker
// pool so write paths never block on aggregation.
type RecalcService struct {
	grades  *GradeService
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// RecalcServiceParams bundles RecalcService dependencies.
type RecalcServiceParams struct {
	Grades     *GradeService
	Metrics    *MetricsService
	Logger     *zap.Logger
	Workers    int
	MaxRetries int
}

// NewRecalcService constructs the service and its worker queue.
func NewRecalcService(p RecalcServiceParams) *RecalcService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	s := &RecalcService{
		grades:  p.Grades,
		metrics: p.Metrics,
		logger:  p.Logger,
	}
	s.queue = jobs.NewQueue("grade-recalc", s.handle, jobs.QueueConfig{
		Workers:    p.Workers,
		MaxRetries: p.MaxRetries,
		Logger:     p.Logger,
	})
	return s
}

// Start launches the worker pool.
func (s *RecalcService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the worker pool.
func (s *RecalcService) Stop() {
	s.queue.Stop()
}

// EnqueueCourse schedules a grade recomputation for one course.
func (s *RecalcService) EnqueueCourse(courseID int) error {
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeCourseRecalc,
		Payload: courseID,
	})
}

func (s *RecalcService) handle(ctx context.Context, job jobs.Job) error {
	courseID, ok := job.Payload.(int)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for job %s", job.Payload, job.ID)
	}
	grade, err := s.grades.Recalculate(ctx, courseID)
	if s.metrics != nil {
		s.metrics.RecordRecalculation(err != nil)
	}
	if err != nil {
		return err
	}
	s.logger.Debug("course grade recalculated",
		zap.Int("course_id", courseID),
		zap.Float64("grade", grade),
	)
	return nil
}
