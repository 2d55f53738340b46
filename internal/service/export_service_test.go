package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
)

func newExportFixture() *ExportService {
	courses := &gradeCourseRepoMock{courses: []models.Course{
		{ID: 1, Name: "Calculus II", Credits: 4, Grade: 88},
		{ID: 2, Name: "Chemistry", Credits: 3, Grade: 76},
	}}
	grades := NewGradeService(&gradeCategoryRepoMock{}, courses, nil, nil)
	return NewExportService(grades, nil)
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportFixture()

	result, err := svc.GradeReport(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	body := string(result.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4) // header, two courses, GPA footer
	assert.Equal(t, "Course,Credits,Grade,Categories", lines[0])
	assert.Contains(t, lines[1], "Calculus II")
	assert.Contains(t, lines[3], "4.14")
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportFixture()

	result, err := svc.GradeReport(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.GradeReport(context.Background(), ExportFormat("xlsx"))
	assert.Error(t, err)
}
