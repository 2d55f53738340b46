package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/repository"
	"github.com/studytrack/studytrack-api/internal/service"
	"github.com/studytrack/studytrack-api/pkg/config"
	"github.com/studytrack/studytrack-api/pkg/database"
)

// seed_demo loads a small demo dataset so the dashboard and grade report
// endpoints return something meaningful on a fresh database.
func main() {
	var (
		semester string
		timeout  time.Duration
	)
	flag.StringVar(&semester, "semester", "Fall 2026", "semester label for demo courses")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	courses := repository.NewCourseRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	categories := repository.NewGradeCategoryRepository(db)
	grades := service.NewGradeService(categories, courses, nil, nil)

	calculus := &models.Course{
		Name: "Calculus II", Professor: "Dr. Reyes", Room: "B-204", Color: "#4f46e5",
		Credits: 4, Semester: semester,
		Schedule: models.ScheduleSlots{
			{Day: "Monday", Time: "10:00"},
			{Day: "Wednesday", Time: "10:00"},
		},
	}
	chemistry := &models.Course{
		Name: "Organic Chemistry", Professor: "Dr. Okafor", Room: "Lab 3", Color: "#059669",
		Credits: 3, Semester: semester,
		Schedule: models.ScheduleSlots{
			{Day: "Tuesday", Time: "13:00"},
			{Day: "Thursday", Time: "13:00"},
		},
	}
	for _, course := range []*models.Course{calculus, chemistry} {
		if err := courses.Create(ctx, course); err != nil {
			log.Fatalf("failed to create course %q: %v", course.Name, err)
		}
	}

	demoCategories := []*models.GradeCategory{
		{CourseID: calculus.ID, Name: "Problem Sets", Weight: 40, Grades: models.GradeEntries{
			{Value: 17, MaxValue: 20}, {Value: 18, MaxValue: 20},
		}},
		{CourseID: calculus.ID, Name: "Exams", Weight: 60, Grades: models.GradeEntries{
			{Value: 82, MaxValue: 100},
		}},
		{CourseID: chemistry.ID, Name: "Lab Reports", Weight: 50, Grades: models.GradeEntries{
			{Value: 45, MaxValue: 50},
		}},
	}
	for _, category := range demoCategories {
		if err := categories.Create(ctx, category); err != nil {
			log.Fatalf("failed to create category %q: %v", category.Name, err)
		}
	}

	now := time.Now()
	demoAssignments := []*models.Assignment{
		{Title: "Problem Set 5", CourseID: &calculus.ID, DueDate: now.Add(6 * time.Hour), Priority: models.PriorityHigh, Status: models.StatusPending, Weight: 10},
		{Title: "Lab Report 4", CourseID: &chemistry.ID, DueDate: now.AddDate(0, 0, 1), Priority: models.PriorityMedium, Status: models.StatusInProgress, Weight: 15},
		{Title: "Midterm Review", CourseID: &calculus.ID, DueDate: now.AddDate(0, 0, 5), Priority: models.PriorityLow, Status: models.StatusPending},
		{Title: "Safety Quiz", CourseID: &chemistry.ID, DueDate: now.AddDate(0, 0, -2), Priority: models.PriorityMedium, Status: models.StatusCompleted},
	}
	for _, assignment := range demoAssignments {
		if err := assignments.Create(ctx, assignment); err != nil {
			log.Fatalf("failed to create assignment %q: %v", assignment.Title, err)
		}
	}

	for _, course := range []*models.Course{calculus, chemistry} {
		grade, err := grades.Recalculate(ctx, course.ID)
		if err != nil {
			log.Fatalf("failed to recalculate %q: %v", course.Name, err)
		}
		log.Printf("seeded %q with grade %.1f", course.Name, grade)
	}
	log.Printf("done: %d courses, %d categories, %d assignments", 2, len(demoCategories), len(demoAssignments))
}
