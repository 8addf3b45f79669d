package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friend is stored once per pair, with UserID as the requester. Lookups that
// ask about a pair must check both orderings.
type Friend struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	FriendID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"friend_id"`
	Status    FriendStatus `gorm:"size:10;not null;index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (f *Friend) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Other returns the party of the relationship that is not userID.
func (f *Friend) Other(userID uuid.UUID) uuid.UUID {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

// FriendRequest is a pending friendship as shown to either party. It carries
// the requester's profile as it was when the request was made.
type FriendRequest struct {
	ID        uuid.UUID     `json:"id"`
	From      Profile       `json:"from_user"`
	ToUserID  *uuid.UUID    `json:"to_user_id,omitempty"`
	ToTag     string        `json:"to_tag,omitempty"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
