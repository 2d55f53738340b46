package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studytrack/studytrack-api/internal/models"
)

func TestCategoryGrade(t *testing.T) {
	tests := []struct {
		name     string
		category models.GradeCategory
		want     float64
	}{
		{
			name: "sums values over maximums",
			category: models.GradeCategory{
				Grades: models.GradeEntries{
					{Value: 17, MaxValue: 20},
					{Value: 18, MaxValue: 20},
					{Value: 16, MaxValue: 20},
				},
			},
			want: 85.0,
		},
		{
			name:     "empty category yields zero",
			category: models.GradeCategory{},
			want:     0,
		},
		{
			name: "zero maximum total yields zero",
			category: models.GradeCategory{
				Grades: models.GradeEntries{{Value: 5, MaxValue: 0}},
			},
			want: 0,
		},
		{
			name: "ungraded items lower the percentage",
			category: models.GradeCategory{
				Grades: models.GradeEntries{
					{Value: 20, MaxValue: 20},
					{Value: 0, MaxValue: 20},
				},
			},
			want: 50.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CategoryGrade(tt.category), 1e-9)
		})
	}
}

func TestCourseGradeFromCategories(t *testing.T) {
	categories := []models.GradeCategory{
		{Weight: 40, Grades: models.GradeEntries{{Value: 90, MaxValue: 100}}},
		{Weight: 60, Grades: models.GradeEntries{{Value: 80, MaxValue: 100}}},
	}
	assert.InDelta(t, 84.0, CourseGradeFromCategories(categories), 1e-9)
}

func TestCourseGradeFromCategoriesSkipsEmpty(t *testing.T) {
	categories := []models.GradeCategory{
		{Weight: 40, Grades: models.GradeEntries{{Value: 90, MaxValue: 100}}},
		{Weight: 60}, // no scored items yet, must not drag to zero
	}
	assert.InDelta(t, 90.0, CourseGradeFromCategories(categories), 1e-9)
}

func TestCourseGradeFromCategoriesNoWeight(t *testing.T) {
	assert.Zero(t, CourseGradeFromCategories(nil))
	assert.Zero(t, CourseGradeFromCategories([]models.GradeCategory{{Weight: 50}}))
}

func TestOverallGPA(t *testing.T) {
	courses := []models.Course{
		{Grade: 90, Credits: 3},
		{Grade: 82, Credits: 3},
	}
	assert.Equal(t, "4.30", OverallGPA(courses))
}

func TestOverallGPACreditWeighting(t *testing.T) {
	courses := []models.Course{
		{Grade: 100, Credits: 4},
		{Grade: 60, Credits: 1},
	}
	// (400+60)/5 = 92 -> 4.60
	assert.Equal(t, "4.60", OverallGPA(courses))
}

func TestOverallGPAZeroCredits(t *testing.T) {
	assert.Equal(t, "0.00", OverallGPA(nil))
	assert.Equal(t, "0.00", OverallGPA([]models.Course{{Grade: 95, Credits: 0}}))
}

func TestOverallGPAMonotonic(t *testing.T) {
	base := []models.Course{
		{Grade: 70, Credits: 3},
		{Grade: 80, Credits: 2},
	}
	improved := []models.Course{
		{Grade: 75, Credits: 3},
		{Grade: 80, Credits: 2},
	}
	assert.Less(t, OverallGPA(base), OverallGPA(improved))
}
