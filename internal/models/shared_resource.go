package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharedResource grants a user or a team (exactly one of them) access to a
// calendar, project or task.
type SharedResource struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"owner_id"`
	SharedWithUserID *uuid.UUID   `gorm:"type:uuid;index" json:"shared_with_user_id,omitempty"`
	SharedWithTeamID *uuid.UUID   `gorm:"type:uuid;index" json:"shared_with_team_id,omitempty"`
	ResourceType     ResourceType `gorm:"size:10;not null;index:idx_shares_resource,priority:1" json:"resource_type"`
	ResourceID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_shares_resource,priority:2" json:"resource_id"`
	Permission       Permission   `gorm:"size:10;not null" json:"permission"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (s *SharedResource) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
