package models

import (
	"errors"
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	ProjectID   *uuid.UUID `json:"project_id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *Priority  `json:"priority"`
	Category    *string    `json:"category"`
	Repeat      *bool      `json:"repeat"`
	DueDate     *time.Time `json:"due_date"`
	StartDate   *time.Time `json:"start_date"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Tags        *[]string  `json:"tags"`
}

// titleSet rejects a title that is being cleared.
func titleSet(title *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return apperr.Invalid("title", "is required")
	}
	return nil
}

func (p TaskPatch) Validate() error {
	return errors.Join(titleSet(p.Title), CheckOptional("priority", p.Priority))
}

// Apply merges p into t and stamps UpdatedAt.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.ProjectID != nil {
		id := *p.ProjectID
		t.ProjectID = &id
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		c := *p.Category
		t.Category = &c
	}
	if p.Repeat != nil {
		t.Repeat = *p.Repeat
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.StartDate != nil {
		d := *p.StartDate
		t.StartDate = &d
	}
	if p.AssigneeID != nil {
		id := *p.AssigneeID
		t.AssigneeID = &id
	}
	if p.Tags != nil {
		t.Tags = datatypes.JSONSlice[string](append([]string{}, *p.Tags...))
	}
	t.UpdatedAt = now
}

type EventPatch struct {
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	Category     *string     `json:"category"`
	StartTime    *time.Time  `json:"start_time"`
	EndTime      *time.Time  `json:"end_time"`
	AllDay       *bool       `json:"all_day"`
	Location     *string     `json:"location"`
	Visibility   *Visibility `json:"visibility"`
	Participants *[]string   `json:"participants"`
}

func (p EventPatch) Validate() error {
	return errors.Join(titleSet(p.Title), CheckOptional("visibility", p.Visibility))
}

func (p EventPatch) Apply(e *CalendarEvent, now time.Time) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		e.Description = &d
	}
	if p.Category != nil {
		c := *p.Category
		e.Category = &c
	}
	if p.StartTime != nil {
		e.StartTime = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		end := p.EndTime.UTC()
		e.EndTime = &end
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.Location != nil {
		l := *p.Location
		e.Location = &l
	}
	if p.Visibility != nil {
		e.Visibility = *p.Visibility
	}
	if p.Participants != nil {
		e.Participants = datatypes.JSONSlice[string](append([]string{}, *p.Participants...))
	}
	e.UpdatedAt = now
}

type MemoryPatch struct {
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Date    *time.Time `json:"date"`
	Mood    *Mood      `json:"mood"`
	Tags    *[]string  `json:"tags"`
	Photos  *[]string  `json:"photos"`
}

func (p MemoryPatch) Validate() error {
	return errors.Join(titleSet(p.Title), CheckOptional("mood", p.Mood))
}

func (p MemoryPatch) Apply(m *Memory, now time.Time) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Date != nil {
		m.Date = p.Date.UTC()
	}
	if p.Mood != nil {
		mood := *p.Mood
		m.Mood = &mood
	}
	if p.Tags != nil {
		m.Tags = datatypes.JSONSlice[string](append([]string{}, *p.Tags...))
	}
	if p.Photos != nil {
		m.Photos = datatypes.JSONSlice[string](append([]string{}, *p.Photos...))
	}
	m.UpdatedAt = now
}

// FileUpload describes a new file. Data may be empty when only metadata is
// known.
type FileUpload struct {
	Path         string  `json:"path"`
	Name         string  `json:"name"`
	Data         []byte  `json:"-"`
	MimeType     *string `json:"mime_type"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	UploaderName *string `json:"uploader"`
}
