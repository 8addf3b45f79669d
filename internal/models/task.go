package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task is a to-do item. Subtasks point at their parent through ParentTaskID;
// the hierarchy is kept acyclic on write.
type Task struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	ProjectID      *uuid.UUID                  `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ParentTaskID   *uuid.UUID                  `gorm:"type:uuid;index" json:"parent_task_id,omitempty"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Description    *string                     `gorm:"type:text" json:"description,omitempty"`
	Status         TaskStatus                  `gorm:"size:20;not null;index" json:"status"`
	Priority       Priority                    `gorm:"size:10;not null" json:"priority"`
	Category       *string                     `gorm:"size:100" json:"category,omitempty"`
	Repeat         bool                        `gorm:"not null" json:"repeat"`
	DueDate        *time.Time                  `gorm:"index" json:"due_date,omitempty"`
	StartDate      *time.Time                  `json:"start_date,omitempty"`
	EstimatedHours *float64                    `json:"estimated_hours,omitempty"`
	ActualHours    *float64                    `json:"actual_hours,omitempty"`
	AssigneeID     *uuid.UUID                  `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	CompletedAt    *time.Time                  `json:"completed_at,omitempty"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Task) Completed() bool { return t.Status == TaskCompleted }

// SetCompleted moves the task in or out of the completed state.
func (t *Task) SetCompleted(done bool, now time.Time) {
	if done {
		t.Status = TaskCompleted
		t.CompletedAt = &now
		return
	}
	t.Status = TaskTodo
	t.CompletedAt = nil
}

// NextOccurrence returns the instance that follows a repeating task: a copy
// with a new id, not completed, due one day after the original (or one day
// after now when the original had no due date).
func (t *Task) NextOccurrence(id uuid.UUID, now time.Time) Task {
	next := t.Clone()
	next.ID = id
	next.Status = TaskTodo
	next.CompletedAt = nil
	next.CreatedAt = now
	next.UpdatedAt = now
	next.DeletedAt = gorm.DeletedAt{}

	base := now
	if t.DueDate != nil {
		base = *t.DueDate
	}
	due := base.AddDate(0, 0, 1)
	next.DueDate = &due
	return next
}
