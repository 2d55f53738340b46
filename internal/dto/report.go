package dto

// CategoryBreakdown is one grading bucket of a course with its aggregate
// percentage.
type CategoryBreakdown struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	ItemCount  int     `json:"itemCount"`
	Grade      float64 `json:"grade"`
}

// CourseGradeReport summarises one course's categories and overall grade.
type CourseGradeReport struct {
	CourseID    int                 `json:"courseId"`
	CourseName  string              `json:"courseName"`
	Credits     int                 `json:"credits"`
	CourseGrade float64             `json:"courseGrade"`
	Categories  []CategoryBreakdown `json:"categories"`
}

// GradeOverview is the cross-course grade summary.
type GradeOverview struct {
	GPA          string              `json:"gpa"`
	TotalCredits int                 `json:"totalCredits"`
	Courses      []CourseGradeReport `json:"courses"`
}
