package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/export"
)

// ExportFormat identifies a supported grade report output format.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportService renders the grade overview as a downloadable document.
type ExportService struct {
	grades *GradeService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the exporter around a grade service.
func NewExportService(grades *GradeService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		grades: grades,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

// ExportResult carries the rendered document bytes plus response metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// GradeReport renders the cross-course grade overview in the requested
// format.
func (s *ExportService) GradeReport(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	overview, err := s.grades.Overview(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"Course", "Credits", "Grade", "Categories"},
	}
	for _, course := range overview.Courses {
		table.Rows = append(table.Rows, []string{
			course.CourseName,
			strconv.Itoa(course.Credits),
			fmt.Sprintf("%.1f", course.CourseGrade),
			strconv.Itoa(len(course.Categories)),
		})
	}
	table.Rows = append(table.Rows, []string{"GPA", strconv.Itoa(overview.TotalCredits), overview.GPA, ""})

	stamp := s.now().Format("2006-01-02")
	switch format {
	case FormatCSV:
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("grade-report-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(table, "Grade Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("grade-report-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
