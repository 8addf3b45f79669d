package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID     *uuid.UUID       `gorm:"type:uuid" json:"actor_id,omitempty"`
	Type        NotificationType `gorm:"size:20;not null;index" json:"type"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Message     *string          `gorm:"type:text" json:"message,omitempty"`
	RelatedType *string          `gorm:"size:20" json:"related_type,omitempty"`
	RelatedID   *uuid.UUID       `gorm:"type:uuid" json:"related_id,omitempty"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
