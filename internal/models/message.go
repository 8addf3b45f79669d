package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is either a direct message (RecipientID set) or a post in a group
// channel (ChannelID set).
type Message struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID *uuid.UUID     `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	ChannelID   *uuid.UUID     `gorm:"type:uuid;index" json:"channel_id,omitempty"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Counterpart is the conversation key of m as seen by userID: the channel for
// channel posts, otherwise the other party of the direct message.
func (m *Message) Counterpart(userID uuid.UUID) uuid.UUID {
	if m.ChannelID != nil {
		return *m.ChannelID
	}
	if m.SenderID == userID && m.RecipientID != nil {
		return *m.RecipientID
	}
	return m.SenderID
}

func (m *Message) Read() bool { return m.ReadAt != nil }
