package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalendarEvent is a calendar entry. SourceType/SourceID record the entity it
// was created from; the copy is not kept in sync with its source.
type CalendarEvent struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	TeamID         *uuid.UUID                  `gorm:"type:uuid;index" json:"team_id,omitempty"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Description    *string                     `gorm:"type:text" json:"description,omitempty"`
	SourceType     SourceType                  `gorm:"size:20;not null;index:idx_events_source,priority:1" json:"source_type"`
	SourceID       *uuid.UUID                  `gorm:"type:uuid;index:idx_events_source,priority:2" json:"source_id,omitempty"`
	Category       *string                     `gorm:"size:100" json:"category,omitempty"`
	Color          string                      `gorm:"size:9;not null" json:"color"`
	StartTime      time.Time                   `gorm:"not null;index" json:"start_time"`
	EndTime        *time.Time                  `json:"end_time,omitempty"`
	AllDay         bool                        `gorm:"not null" json:"all_day"`
	IsRecurring    bool                        `gorm:"not null" json:"is_recurring"`
	RecurrenceRule *string                     `gorm:"size:255" json:"recurrence_rule,omitempty"`
	Location       *string                     `gorm:"size:255" json:"location,omitempty"`
	Visibility     Visibility                  `gorm:"size:10;not null" json:"visibility"`
	Participants   datatypes.JSONSlice[string] `json:"participants"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EventColors is the palette new events draw their display color from.
var EventColors = []string{"#0ea5e9", "#10b981", "#f59e0b", "#8b5cf6", "#ef4444"}
