// Package organizer defines the data access surface of the life organizer
// and picks its implementation: the in-process local store or the relational
// services bound to one user.
package organizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/localstore"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/google/uuid"
)

type Backend interface {
	Tasks(ctx context.Context) ([]models.Task, error)
	AddTask(ctx context.Context, t models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, patch models.TaskPatch) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ToggleTask(ctx context.Context, id uuid.UUID) error

	Events(ctx context.Context) ([]models.CalendarEvent, error)
	AddEvent(ctx context.Context, e models.CalendarEvent) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	Memories(ctx context.Context) ([]models.Memory, error)
	AddMemory(ctx context.Context, m models.Memory) (*models.Memory, error)
	UpdateMemory(ctx context.Context, id uuid.UUID, patch models.MemoryPatch) error
	DeleteMemory(ctx context.Context, id uuid.UUID) error

	Files(ctx context.Context) ([]models.FileRecord, error)
	AddFile(ctx context.Context, up models.FileUpload) (*models.FileRecord, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error

	Friends(ctx context.Context) ([]models.User, error)
	FriendRequests(ctx context.Context) ([]models.FriendRequest, error)
	AddFriend(ctx context.Context, tag string) (*models.FriendRequest, error)
	HandleFriendRequest(ctx context.Context, id uuid.UUID, action models.RequestAction) error

	Messages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	Inbox(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, content string, conversationID, senderID uuid.UUID) (*models.Message, error)
}

var (
	_ Backend = (*localstore.Store)(nil)
	_ Backend = (*Remote)(nil)
)

// GroupLister is implemented by backends that know chat groups.
type GroupLister interface {
	Groups() []models.Group
}

// Resolver hands out the configured backend.
type Resolver struct {
	backend string
	local   *localstore.Store
	set     *services.Set
}

// NewResolver checks that the backend named by cfg has what it needs. The
// local store is used for the local backend, the service set for the remote
// one; the other may be nil.
func NewResolver(cfg *config.Config, local *localstore.Store, set *services.Set) (*Resolver, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		if local == nil {
			return nil, errors.New("local backend needs a local store")
		}
	case config.BackendRemote:
		if set == nil {
			return nil, errors.New("remote backend needs the services")
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return &Resolver{backend: cfg.Backend, local: local, set: set}, nil
}

func (r *Resolver) Remote() bool { return r.backend == config.BackendRemote }

// For returns the backend acting as userID. The local store serves a single
// session and ignores userID.
func (r *Resolver) For(userID uuid.UUID) Backend {
	if r.Remote() {
		return NewRemote(r.set, userID)
	}
	return r.local
}

// Local returns the local store, or nil with the remote backend.
func (r *Resolver) Local() *localstore.Store {
	if r.Remote() {
		return nil
	}
	return r.local
}
