// Package localstore is the in-process organizer backend. It holds one
// session's tasks, events, memories, files, contacts and chat in memory.
// Mutations are serialised by a mutex and visible to the next read; readers
// always get copies.
package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/prefs"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	now     func() time.Time
	newID   func() uuid.UUID
	rnd     *rand.Rand
	session prefs.Store

	current  models.User
	tasks    []models.Task
	events   []models.CalendarEvent
	memories []models.Memory
	files    []models.FileRecord
	friends  []models.User
	requests []models.FriendRequest
	groups   []models.Group
	messages []models.Message
}

// Seed is the initial content of a store.
type Seed struct {
	Tasks    []models.Task
	Events   []models.CalendarEvent
	Memories []models.Memory
	Files    []models.FileRecord
	Friends  []models.User
	Requests []models.FriendRequest
	Groups   []models.Group
	Messages []models.Message
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// WithRand sets the source used for event colors and synthesized file
// metadata.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rnd = r }
}

func WithSeed(seed Seed) Option {
	return func(s *Store) {
		s.tasks = cloneAll(seed.Tasks, models.Task.Clone)
		s.events = cloneAll(seed.Events, models.CalendarEvent.Clone)
		s.memories = cloneAll(seed.Memories, models.Memory.Clone)
		s.files = cloneAll(seed.Files, models.FileRecord.Clone)
		s.friends = cloneAll(seed.Friends, models.User.Clone)
		s.requests = cloneAll(seed.Requests, models.FriendRequest.Clone)
		s.groups = cloneAll(seed.Groups, models.Group.Clone)
		s.messages = cloneAll(seed.Messages, models.Message.Clone)
	}
}

func WithCurrentUser(u models.User) Option {
	return func(s *Store) { s.current = u.Clone() }
}

// WithSession restores the current user from p and persists later changes
// to it.
func WithSession(p prefs.Store) Option {
	return func(s *Store) { s.session = p }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.New,
		rnd:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.current.ID == uuid.Nil {
		s.current = DemoUser()
	}
	if s.session != nil {
		s.restore()
	}
	return s
}

func (s *Store) restore() {
	raw, ok, err := s.session.Get(prefs.CurrentUserKey)
	if err != nil {
		slog.Warn("failed to read session", "error", err)
		return
	}
	if !ok {
		return
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		slog.Warn("ignoring unreadable session user", "error", err)
		return
	}
	s.current = u
}

func (s *Store) CurrentUser() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// SetCurrentUser replaces the session's user and, when a session store is
// configured, saves its snapshot.
func (s *Store) SetCurrentUser(u models.User) error {
	if u.Theme != "" {
		if err := models.Check("theme", u.Theme); err != nil {
			return err
		}
	}
	if u.Presence != "" {
		if err := models.Check("status", u.Presence); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u.Clone()
	if s.session == nil {
		return nil
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	return s.session.Set(prefs.CurrentUserKey, raw)
}

func (s *Store) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.groups, models.Group.Clone)
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i := range in {
		out[i] = clone(in[i])
	}
	return out
}

// indexOf returns the position of the element with the given id, or -1.
func indexOf[T any](items []T, id uuid.UUID, idOf func(*T) uuid.UUID) int {
	for i := range items {
		if idOf(&items[i]) == id {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, id uuid.UUID, idOf func(*T) uuid.UUID) []T {
	if i := indexOf(items, id, idOf); i >= 0 {
		return append(items[:i], items[i+1:]...)
	}
	return items
}

func prepend[T any](items []T, v T) []T {
	return append([]T{v}, items...)
}
