package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/storage"
)

type attachmentRepo interface {
	ListByEntity(ctx context.Context, entityType models.AttachmentEntityType, entityID int) ([]models.Attachment, error)
	GetByID(ctx context.Context, id int) (*models.Attachment, error)
	Create(ctx context.Context, attachment *models.Attachment) error
	Delete(ctx context.Context, id int) error
}

// UploadAttachmentRequest describes an incoming multipart upload.
type UploadAttachmentRequest struct {
	EntityType  models.AttachmentEntityType
	EntityID    int
	FileName    string
	ContentType string
	Size        int64
	Description string
	File        multipart.File
}

// AttachmentService stores uploaded files and their metadata.
type AttachmentService struct {
	repo        attachmentRepo
	files       *storage.LocalStorage
	signer      *storage.Signer
	maxFileSize int64
	logger      *zap.Logger
	now         func() time.Time
}

// NewAttachmentService constructs the service.
func NewAttachmentService(repo attachmentRepo, files *storage.LocalStorage, signer *storage.Signer, maxFileSize int64, logger *zap.Logger) *AttachmentService {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{
		repo:        repo,
		files:       files,
		signer:      signer,
		maxFileSize: maxFileSize,
		logger:      logger,
		now:         time.Now,
	}
}

// ListByEntity returns the attachments linked to one course or assignment.
func (s *AttachmentService) ListByEntity(ctx context.Context, entityType models.AttachmentEntityType, entityID int) ([]models.Attachment, error) {
	if !models.ValidEntityType(entityType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entityType must be course or assignment")
	}
	attachments, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attachments")
	}
	return attachments, nil
}

// Upload stores the file on disk and records its metadata.
func (s *AttachmentService) Upload(ctx context.Context, req UploadAttachmentRequest) (*models.Attachment, error) {
	if !models.ValidEntityType(req.EntityType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entityType must be course or assignment")
	}
	if req.FileName == "" || req.File == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if req.Size > s.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxFileSize))
	}

	relPath := filepath.Join(string(req.EntityType), strconv.Itoa(req.EntityID), uuid.NewString()+"-"+filepath.Base(req.FileName))
	written, err := s.files.SaveStream(relPath, io.LimitReader(req.File, s.maxFileSize+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}
	if written > s.maxFileSize {
		_ = s.files.Delete(relPath)
		return nil, appErrors.Clone(appErrors.ErrTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxFileSize))
	}

	attachment := &models.Attachment{
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		FileName:    req.FileName,
		FileType:    req.ContentType,
		FileSize:    written,
		FileURL:     relPath,
		UploadedAt:  s.now().UTC(),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		_ = s.files.Delete(relPath)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}
	return attachment, nil
}

// DownloadURL returns a signed token for fetching the stored file.
func (s *AttachmentService) DownloadURL(ctx context.Context, id int) (string, time.Time, error) {
	attachment, err := s.get(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	token, expiresAt, err := s.signer.Sign(strconv.Itoa(attachment.ID), attachment.FileURL)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// OpenByToken verifies a signed token and opens the referenced file.
func (s *AttachmentService) OpenByToken(ctx context.Context, token string) (*models.Attachment, *os.File, error) {
	fileID, relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	id, err := strconv.Atoi(fileID)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download token")
	}
	attachment, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if attachment.FileURL != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "download token does not match attachment")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment")
	}
	return attachment, file, nil
}

// Delete removes an attachment and its stored file.
func (s *AttachmentService) Delete(ctx context.Context, id int) error {
	attachment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attachment")
	}
	if err := s.files.Delete(attachment.FileURL); err != nil {
		s.logger.Warn("attachment file cleanup failed", zap.String("path", attachment.FileURL), zap.Error(err))
	}
	return nil
}

func (s *AttachmentService) get(ctx context.Context, id int) (*models.Attachment, error) {
	attachment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attachment")
	}
	return attachment, nil
}
