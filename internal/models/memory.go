package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Memory is a diary entry.
type Memory struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Content   string                      `gorm:"type:text;not null" json:"content"`
	Date      time.Time                   `gorm:"column:memory_date;not null;index" json:"date"`
	Mood      *Mood                       `gorm:"size:10" json:"mood,omitempty"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Photos    datatypes.JSONSlice[string] `json:"photos"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	DeletedAt gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (m *Memory) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
