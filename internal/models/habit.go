package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Habit struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Frequency   Frequency       `gorm:"size:10;not null" json:"frequency"`
	Color       string          `gorm:"size:9;not null" json:"color"`
	GoalValue   *float64        `json:"goal_value,omitempty"`
	GoalUnit    *string         `gorm:"size:50" json:"goal_unit,omitempty"`
	StartDate   datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date,omitempty"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// HabitLog holds at most one entry per habit and day.
type HabitLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_habit_logs_habit_date,priority:1" json:"habit_id"`
	LogDate   datatypes.Date `gorm:"not null;uniqueIndex:idx_habit_logs_habit_date,priority:2" json:"log_date"`
	Value     float64        `gorm:"not null" json:"value"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (l *HabitLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
