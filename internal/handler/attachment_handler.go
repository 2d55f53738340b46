package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/service"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/response"
)

// AttachmentHandler exposes file attachment endpoints.
type AttachmentHandler struct {
	attachments *service.AttachmentService
}

// NewAttachmentHandler constructs AttachmentHandler.
func NewAttachmentHandler(attachments *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// List godoc
// @Summary List attachments for an entity
// @Tags Attachments
// @Produce json
// @Param entityType query string true "Entity type (course or assignment)"
// @Param entityId query int true "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	entityID, err := strconv.Atoi(c.Query("entityId"))
	if err != nil || entityID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entityId must be a positive integer"))
		return
	}
	attachments, err := h.attachments.ListByEntity(c.Request.Context(), models.AttachmentEntityType(c.Query("entityType")), entityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachments)
}

// Upload godoc
// @Summary Upload an attachment
// @Tags Attachments
// @Accept multipart/form-data
// @Produce json
// @Param entityType formData string true "Entity type (course or assignment)"
// @Param entityId formData int true "Entity ID"
// @Param description formData string false "Description"
// @Param file formData file true "File content"
// @Success 201 {object} response.Envelope
// @Router /attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	entityID, err := strconv.Atoi(c.PostForm("entityId"))
	if err != nil || entityID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entityId must be a positive integer"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	attachment, err := h.attachments.Upload(c.Request.Context(), service.UploadAttachmentRequest{
		EntityType:  models.AttachmentEntityType(c.PostForm("entityType")),
		EntityID:    entityID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Description: c.PostForm("description"),
		File:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attachment)
}

// DownloadURL godoc
// @Summary Issue a signed download token
// @Tags Attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} response.Envelope
// @Router /attachments/{id}/download-url [get]
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	token, expiresAt, err := h.attachments.DownloadURL(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":       "/api/v1/attachments/download?token=" + token,
		"expiresAt": expiresAt,
	})
}

// Download godoc
// @Summary Download a file via signed token
// @Tags Attachments
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /attachments/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	attachment, file, err := h.attachments.OpenByToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", "attachment; filename="+attachment.FileName)
	contentType := attachment.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, attachment.FileSize, contentType, file, nil)
}

// Delete godoc
// @Summary Delete an attachment
// @Tags Attachments
// @Param id path int true "Attachment ID"
// @Success 204
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.attachments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
