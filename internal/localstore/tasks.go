package localstore

import (
	"context"
	"strings"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

func taskID(t *models.Task) uuid.UUID { return t.ID }

func (s *Store) Tasks(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks, models.Task.Clone), nil
}

// AddTask stores t as a new task owned by the current user and puts it at
// the front of the list. New tasks are never completed: a completed or empty
// status starts as todo.
func (s *Store) AddTask(ctx context.Context, t models.Task) (*models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, apperr.Invalid("title", "is required")
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if err := models.Check("priority", t.Priority); err != nil {
		return nil, err
	}
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if err := models.Check("status", t.Status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	t = t.Clone()
	t.ID = s.newID()
	t.OwnerID = s.current.ID
	if t.Completed() {
		t.Status = models.TaskTodo
	}
	t.CompletedAt = nil
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks = prepend(s.tasks, t)
	out := t.Clone()
	return &out, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, patch models.TaskPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.tasks, id, taskID); i >= 0 {
		patch.Apply(&s.tasks[i], s.stamp())
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = remove(s.tasks, id, taskID)
	return nil
}

// ToggleTask flips the completion of a task. Completing a repeating task
// appends its next occurrence; un-completing it leaves that occurrence.
func (s *Store) ToggleTask(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, id, taskID)
	if i < 0 {
		return nil
	}
	now := s.stamp()
	t := &s.tasks[i]
	done := !t.Completed()
	t.SetCompleted(done, now)
	t.UpdatedAt = now
	if done && t.Repeat {
		s.tasks = append(s.tasks, t.NextOccurrence(s.newID(), now))
	}
	return nil
}
