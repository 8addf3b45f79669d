package localstore

import (
	"context"
	"strings"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

func eventID(e *models.CalendarEvent) uuid.UUID { return e.ID }
func memoryID(m *models.Memory) uuid.UUID { return m.ID }

func (s *Store) Events(ctx context.Context) ([]models.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.events, models.CalendarEvent.Clone), nil
}

// AddEvent stores e with a color drawn from the event palette.
func (s *Store) AddEvent(ctx context.Context, e models.CalendarEvent) (*models.CalendarEvent, error) {
	if strings.TrimSpace(e.Title) == "" {
		return nil, apperr.Invalid("title", "is required")
	}
	if e.StartTime.IsZero() {
		return nil, apperr.Invalid("start_time", "is required")
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return nil, apperr.Invalid("end_time", "must not be before start_time")
	}
	if e.SourceType == "" {
		e.SourceType = models.SourceEvent
	}
	if err := models.Check("source_type", e.SourceType); err != nil {
		return nil, err
	}
	if e.Visibility == "" {
		e.Visibility = models.VisibilityPrivate
	}
	if err := models.Check("visibility", e.Visibility); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	e = e.Clone()
	e.ID = s.newID()
	e.OwnerID = s.current.ID
	e.Color = models.EventColors[s.rnd.IntN(len(models.EventColors))]
	e.StartTime = e.StartTime.UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.events = prepend(s.events, e)
	out := e.Clone()
	return &out, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.events, id, eventID)
	if i < 0 {
		return nil
	}
	e := s.events[i].Clone()
	patch.Apply(&e, s.stamp())
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return apperr.Invalid("end_time", "must not be before start_time")
	}
	s.events[i] = e
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = remove(s.events, id, eventID)
	return nil
}

func (s *Store) Memories(ctx context.Context) ([]models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.memories, models.Memory.Clone), nil
}

func (s *Store) AddMemory(ctx context.Context, m models.Memory) (*models.Memory, error) {
	if strings.TrimSpace(m.Title) == "" {
		return nil, apperr.Invalid("title", "is required")
	}
	if err := models.CheckOptional("mood", m.Mood); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	m = m.Clone()
	m.ID = s.newID()
	m.OwnerID = s.current.ID
	if m.Date.IsZero() {
		m.Date = now
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	s.memories = prepend(s.memories, m)
	out := m.Clone()
	return &out, nil
}

func (s *Store) UpdateMemory(ctx context.Context, id uuid.UUID, patch models.MemoryPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.memories, id, memoryID); i >= 0 {
		patch.Apply(&s.memories[i], s.stamp())
	}
	return nil
}

func (s *Store) DeleteMemory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = remove(s.memories, id, memoryID)
	return nil
}
