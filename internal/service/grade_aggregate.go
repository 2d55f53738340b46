package service

import (
	"fmt"

	"github.com/studytrack/studytrack-api/internal/models"
)

// CategoryGrade returns the percentage earned inside one grading bucket:
// sum of values over sum of maximum values, scaled to 100. Empty
// categories and categories whose maximum total is zero yield 0 rather
// than a division error.
func CategoryGrade(category models.GradeCategory) float64 {
	if len(category.Grades) == 0 {
		return 0
	}
	var earned, possible float64
	for _, entry := range category.Grades {
		earned += entry.Value
		possible += entry.MaxValue
	}
	if possible == 0 {
		return 0
	}
	return earned / possible * 100
}

// CourseGradeFromCategories rolls category grades into a single course
// percentage, weighting each category by its configured share. Categories
// without scored items are excluded so a fresh category does not drag the
// grade to zero. Returns 0 when no category carries weight.
func CourseGradeFromCategories(categories []models.GradeCategory) float64 {
	var weighted, totalWeight float64
	for _, category := range categories {
		if len(category.Grades) == 0 {
			continue
		}
		weighted += CategoryGrade(category) * category.Weight
		totalWeight += category.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// OverallGPA computes the credit-weighted mean course percentage mapped
// onto a 0-5 scale (divisor 20), formatted to two decimal places. A course
// set with zero total credits yields "0.00".
func OverallGPA(courses []models.Course) string {
	var weightedSum float64
	var totalCredits int
	for _, course := range courses {
		weightedSum += course.Grade * float64(course.Credits)
		totalCredits += course.Credits
	}
	if totalCredits == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", weightedSum/float64(totalCredits)/20)
}
