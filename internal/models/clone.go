package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// clonePtr returns a pointer to a copy of *p, or nil.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	return append(datatypes.JSONSlice[string]{}, s...)
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	t.ProjectID = clonePtr(t.ProjectID)
	t.ParentTaskID = clonePtr(t.ParentTaskID)
	t.Description = clonePtr(t.Description)
	t.Category = clonePtr(t.Category)
	t.DueDate = clonePtr(t.DueDate)
	t.StartDate = clonePtr(t.StartDate)
	t.EstimatedHours = clonePtr(t.EstimatedHours)
	t.ActualHours = clonePtr(t.ActualHours)
	t.AssigneeID = clonePtr(t.AssigneeID)
	t.CompletedAt = clonePtr(t.CompletedAt)
	t.Tags = cloneStrings(t.Tags)
	return t
}

func (e CalendarEvent) Clone() CalendarEvent {
	e.TeamID = clonePtr(e.TeamID)
	e.Description = clonePtr(e.Description)
	e.SourceID = clonePtr(e.SourceID)
	e.Category = clonePtr(e.Category)
	e.EndTime = clonePtr(e.EndTime)
	e.RecurrenceRule = clonePtr(e.RecurrenceRule)
	e.Location = clonePtr(e.Location)
	e.Participants = cloneStrings(e.Participants)
	return e
}

func (m Memory) Clone() Memory {
	m.Mood = clonePtr(m.Mood)
	m.Tags = cloneStrings(m.Tags)
	m.Photos = cloneStrings(m.Photos)
	return m
}

func (f FileRecord) Clone() FileRecord {
	f.MimeType = clonePtr(f.MimeType)
	f.Size = clonePtr(f.Size)
	f.Category = clonePtr(f.Category)
	f.Description = clonePtr(f.Description)
	f.UploaderName = clonePtr(f.UploaderName)
	f.NoteID = clonePtr(f.NoteID)
	f.RelatedType = clonePtr(f.RelatedType)
	f.RelatedID = clonePtr(f.RelatedID)
	return f
}

func (u User) Clone() User {
	u.AvatarURL = clonePtr(u.AvatarURL)
	return u
}

func (r FriendRequest) Clone() FriendRequest {
	r.ToUserID = clonePtr(r.ToUserID)
	return r
}

func (m Message) Clone() Message {
	m.RecipientID = clonePtr(m.RecipientID)
	m.ChannelID = clonePtr(m.ChannelID)
	m.ReadAt = clonePtr(m.ReadAt)
	return m
}

func (g Group) Clone() Group {
	g.Members = append([]uuid.UUID{}, g.Members...)
	g.Channels = append([]Channel{}, g.Channels...)
	return g
}
