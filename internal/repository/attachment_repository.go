package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

// AttachmentRepository manages persistence for attachment metadata.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository constructs an AttachmentRepository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// ListByEntity returns attachments linked to one course or assignment,
// newest first.
func (r *AttachmentRepository) ListByEntity(ctx context.Context, entityType models.AttachmentEntityType, entityID int) ([]models.Attachment, error) {
	query := `SELECT id, entity_type, entity_id, file_name, file_type, file_size, file_url, uploaded_at, description
        FROM attachments WHERE entity_type = $1 AND entity_id = $2 ORDER BY uploaded_at DESC, id DESC`
	attachments := []models.Attachment{}
	if err := r.db.SelectContext(ctx, &attachments, query, entityType, entityID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

// GetByID fetches one attachment by ID.
func (r *AttachmentRepository) GetByID(ctx context.Context, id int) (*models.Attachment, error) {
	query := `SELECT id, entity_type, entity_id, file_name, file_type, file_size, file_url, uploaded_at, description
        FROM attachments WHERE id = $1`
	var attachment models.Attachment
	if err := r.db.GetContext(ctx, &attachment, query, id); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Create inserts attachment metadata and fills the generated ID.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	query := `INSERT INTO attachments (entity_type, entity_id, file_name, file_type, file_size, file_url, uploaded_at, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		attachment.EntityType, attachment.EntityID, attachment.FileName, attachment.FileType,
		attachment.FileSize, attachment.FileURL, attachment.UploadedAt, attachment.Description,
	).Scan(&attachment.ID); err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// Delete removes the attachment metadata row.
func (r *AttachmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return requireRowsAffected(result, "attachment")
}
