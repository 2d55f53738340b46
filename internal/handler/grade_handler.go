package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/studytrack-api/internal/service"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/response"
)

// GradeHandler exposes grade category and report endpoints.
type GradeHandler struct {
	grades *service.GradeService
	recalc *service.RecalcService
	export *service.ExportService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService, recalc *service.RecalcService, export *service.ExportService) *GradeHandler {
	return &GradeHandler{grades: grades, recalc: recalc, export: export}
}

// ListCategories godoc
// @Summary List grade categories
// @Tags Grades
// @Produce json
// @Param courseId query int false "Filter by course"
// @Success 200 {object} response.Envelope
// @Router /grade-categories [get]
func (h *GradeHandler) ListCategories(c *gin.Context) {
	courseID := 0
	if raw := c.Query("courseId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseId must be a positive integer"))
			return
		}
		courseID = id
	}
	categories, err := h.grades.ListCategories(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create grade category
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.UpsertGradeCategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /grade-categories [post]
func (h *GradeHandler) CreateCategory(c *gin.Context) {
	var req service.UpsertGradeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.grades.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.enqueueRecalc(category.CourseID)
	response.Created(c, category)
}

// UpdateCategory godoc
// @Summary Update grade category
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param payload body service.UpsertGradeCategoryRequest true "Category payload"
// @Success 200 {object} response.Envelope
// @Router /grade-categories/{id} [put]
func (h *GradeHandler) UpdateCategory(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpsertGradeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.grades.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.enqueueRecalc(category.CourseID)
	response.JSON(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete grade category
// @Tags Grades
// @Param id path int true "Category ID"
// @Success 204
// @Router /grade-categories/{id} [delete]
func (h *GradeHandler) DeleteCategory(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.grades.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.grades.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	h.enqueueRecalc(category.CourseID)
	response.NoContent(c)
}

// Recalculate godoc
// @Summary Queue a course grade recalculation
// @Tags Grades
// @Produce json
// @Param id path int true "Course ID"
// @Success 202 {object} response.Envelope
// @Router /courses/{id}/recalculate [post]
func (h *GradeHandler) Recalculate(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.recalc == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "recalculation worker unavailable"))
		return
	}
	if err := h.recalc.EnqueueCourse(id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue recalculation"))
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"courseId": id, "queued": true})
}

// Report godoc
// @Summary Cross-course grade report
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/report [get]
func (h *GradeHandler) Report(c *gin.Context) {
	overview, err := h.grades.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// Export godoc
// @Summary Export the grade report
// @Tags Grades
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} file
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	result, err := h.export.GradeReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.FileName)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *GradeHandler) enqueueRecalc(courseID int) {
	if h.recalc == nil || courseID <= 0 {
		return
	}
	// write already succeeded; a stale grade resolves on the next recalc
	_ = h.recalc.EnqueueCourse(courseID)
}
