package models

import "time"

// AttachmentEntityType names the entity kind an attachment belongs to.
type AttachmentEntityType string

const (
	EntityCourse     AttachmentEntityType = "course"
	EntityAssignment AttachmentEntityType = "assignment"
)

// Attachment is an uploaded file linked to a course or assignment.
// EntityID is a weak reference and is not enforced by a foreign key.
type Attachment struct {
	ID          int                  `db:"id" json:"id"`
	EntityType  AttachmentEntityType `db:"entity_type" json:"entityType"`
	EntityID    int                  `db:"entity_id" json:"entityId"`
	FileName    string               `db:"file_name" json:"fileName"`
	FileType    string               `db:"file_type" json:"fileType"`
	FileSize    int64                `db:"file_size" json:"fileSize"`
	FileURL     string               `db:"file_url" json:"fileUrl"`
	UploadedAt  time.Time            `db:"uploaded_at" json:"uploadedAt"`
	Description string               `db:"description" json:"description,omitempty"`
}

// ValidEntityType reports whether t is a known attachment entity type.
func ValidEntityType(t AttachmentEntityType) bool {
	return t == EntityCourse || t == EntityAssignment
}
