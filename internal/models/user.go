package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account and, seen from other users, a contact card.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FullName  string         `gorm:"size:255;not null" json:"full_name"`
	AvatarURL *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	Theme     Theme          `gorm:"size:10;not null" json:"theme"`
	Language  string         `gorm:"size:10;not null" json:"language"`
	Timezone  string         `gorm:"size:64;not null" json:"timezone"`
	Tag       string         `gorm:"size:16;uniqueIndex" json:"tag"`
	Presence  Presence       `gorm:"size:10;not null" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

var tagPattern = regexp.MustCompile(`^#[0-9]+$`)

// ValidTag reports whether tag looks like "#1234".
func ValidTag(tag string) bool { return tagPattern.MatchString(tag) }

// Profile returns the snapshot embedded in friend requests.
func (u User) Profile() Profile {
	p := Profile{ID: u.ID, Name: u.FullName, Tag: u.Tag}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
	return p
}

// Profile is the public part of a user, copied into requests at send time.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar,omitempty"`
	Tag       string    `json:"tag"`
}
