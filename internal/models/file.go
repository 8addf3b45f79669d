package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileRecord is the metadata row of a stored blob. StoragePath is the blob key.
type FileRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	MimeType     *string        `gorm:"size:255" json:"mime_type,omitempty"`
	Size         *int64         `json:"size,omitempty"`
	StoragePath  string         `gorm:"type:text;not null" json:"storage_path"`
	Category     *string        `gorm:"size:100;index" json:"category,omitempty"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	UploaderName *string        `gorm:"size:255" json:"uploader,omitempty"`
	NoteID       *uuid.UUID     `gorm:"type:uuid;index" json:"note_id,omitempty"`
	RelatedType  *RelatedType   `gorm:"size:10;index:idx_files_related,priority:1" json:"related_type,omitempty"`
	RelatedID    *uuid.UUID     `gorm:"type:uuid;index:idx_files_related,priority:2" json:"related_id,omitempty"`
	URL          string         `gorm:"-" json:"url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *FileRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// SynthesizedMimeTypes are used when a file is added without a payload.
var SynthesizedMimeTypes = []string{"image/jpeg", "application/pdf", "application/zip"}
