package organizer

import (
	"context"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/database"
	"github.com/Valentin6743/LS/internal/localstore"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T) *services.Set {
	t.Helper()
	cfg := config.Defaults()
	cfg.SQLiteDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.JWTSecret = "test-secret"

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db))
	return services.New(db, cfg, storage.NewMemory("http://files.test"))
}

func mustUser(t *testing.T, s *services.Set, email, name string) *models.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), services.CreateUserRequest{Email: email, Password: "password123", FullName: name})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestResolver(t *testing.T) {
	cfg := config.Defaults()
	local := localstore.New()

	r, err := NewResolver(cfg, local, nil)
	require.NoError(t, err)
	assert.False(t, r.Remote())
	assert.Same(t, local, r.For(uuid.New()))
	assert.Same(t, local, r.Local())

	_, err = NewResolver(cfg, nil, nil)
	assert.Error(t, err)

	cfg.Backend = config.BackendRemote
	_, err = NewResolver(cfg, local, nil)
	assert.Error(t, err)

	set := newTestSet(t)
	r, err = NewResolver(cfg, nil, set)
	require.NoError(t, err)
	assert.True(t, r.Remote())
	assert.Nil(t, r.Local())
	_, ok := r.For(uuid.New()).(*Remote)
	assert.True(t, ok)

	cfg.Backend = "cloud"
	_, err = NewResolver(cfg, local, set)
	assert.Error(t, err)
}

func TestRemoteTasks(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	alice := NewRemote(set, mustUser(t, set, "alice@example.com", "Alice").ID)
	bob := NewRemote(set, mustUser(t, set, "bob@example.com", "Bob").ID)

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	task, err := alice.AddTask(ctx, models.Task{Title: "Run", Repeat: true, DueDate: &due, Tags: []string{"health"}})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, task.Priority)

	require.NoError(t, alice.ToggleTask(ctx, task.ID))
	tasks, err := alice.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	none, err := bob.Tasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.ErrorIs(t, bob.UpdateTask(ctx, task.ID, models.TaskPatch{Title: ptr("mine")}), apperr.ErrNotFound)
	assert.ErrorIs(t, bob.DeleteTask(ctx, task.ID), apperr.ErrNotFound)
	assert.ErrorIs(t, bob.ToggleTask(ctx, task.ID), apperr.ErrNotFound)

	require.NoError(t, alice.UpdateTask(ctx, task.ID, models.TaskPatch{Title: ptr("Run 5k")}))
	got, err := set.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 5k", got.Title)

	require.NoError(t, alice.DeleteTask(ctx, task.ID))
	tasks, _ = alice.Tasks(ctx)
	assert.Len(t, tasks, 1)
}

func TestRemoteEventsAndMemories(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	alice := NewRemote(set, mustUser(t, set, "alice@example.com", "Alice").ID)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e, err := alice.AddEvent(ctx, models.CalendarEvent{Title: "Standup", StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, e.Visibility)
	assert.Contains(t, models.EventColors, e.Color)

	require.NoError(t, alice.UpdateEvent(ctx, e.ID, models.EventPatch{Location: ptr("Room 1")}))
	events, err := alice.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Room 1", *events[0].Location)
	require.NoError(t, alice.DeleteEvent(ctx, e.ID))

	m, err := alice.AddMemory(ctx, models.Memory{Title: "Trip", Content: "Alps", Mood: ptr(models.MoodExcited)})
	require.NoError(t, err)
	require.NoError(t, alice.UpdateMemory(ctx, m.ID, models.MemoryPatch{Content: ptr("Alps!")}))
	memories, err := alice.Memories(ctx)
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, "Alps!", memories[0].Content)
	require.NoError(t, alice.DeleteMemory(ctx, m.ID))
}

func TestRemoteFiles(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	alice := NewRemote(set, mustUser(t, set, "alice@example.com", "Alice").ID)
	bob := NewRemote(set, mustUser(t, set, "bob@example.com", "Bob").ID)

	f, err := alice.AddFile(ctx, models.FileUpload{Path: "docs", Name: "a.txt", Data: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), *f.Size)

	files, err := alice.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].URL, "http://files.test/")

	assert.ErrorIs(t, bob.DeleteFile(ctx, f.ID), apperr.ErrNotFound)
	require.NoError(t, alice.DeleteFile(ctx, f.ID))
	assert.NoError(t, alice.DeleteFile(ctx, f.ID))
}

func TestRemoteFriendFlow(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	a := mustUser(t, set, "alice@example.com", "Alice")
	b := mustUser(t, set, "bob@example.com", "Bob")
	alice, bob := NewRemote(set, a.ID), NewRemote(set, b.ID)

	_, err := alice.AddFriend(ctx, "bob")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req, err := alice.AddFriend(ctx, b.Tag)
	require.NoError(t, err)
	assert.Equal(t, a.ID, req.From.ID)
	assert.Equal(t, b.Tag, req.ToTag)
	assert.Equal(t, models.RequestPending, req.Status)

	again, err := alice.AddFriend(ctx, " "+b.Tag)
	require.NoError(t, err)
	assert.Equal(t, req.ID, again.ID)

	incoming, err := bob.FriendRequests(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "Alice", incoming[0].From.Name)

	outgoing, err := alice.FriendRequests(ctx)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, req.ID, outgoing[0].ID)

	// Only the addressee can answer.
	assert.ErrorIs(t, alice.HandleFriendRequest(ctx, req.ID, models.Accept), apperr.ErrNotFound)
	assert.ErrorIs(t, bob.HandleFriendRequest(ctx, req.ID, "maybe"), apperr.ErrValidation)

	require.NoError(t, bob.HandleFriendRequest(ctx, req.ID, models.Accept))
	friends, err := alice.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].ID)

	pending, _ := bob.FriendRequests(ctx)
	assert.Empty(t, pending)

	_, err = bob.AddFriend(ctx, a.Tag)
	assert.ErrorIs(t, err, services.ErrRelationshipExists)
}

func TestRemoteDeclineFriendRequest(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	a := mustUser(t, set, "alice@example.com", "Alice")
	b := mustUser(t, set, "bob@example.com", "Bob")

	req, err := NewRemote(set, a.ID).AddFriend(ctx, b.Tag)
	require.NoError(t, err)
	require.NoError(t, NewRemote(set, b.ID).HandleFriendRequest(ctx, req.ID, models.Decline))

	friends, err := NewRemote(set, a.ID).Friends(ctx)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRemoteMessages(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	a := mustUser(t, set, "alice@example.com", "Alice")
	b := mustUser(t, set, "bob@example.com", "Bob")
	alice := NewRemote(set, a.ID)

	m, err := alice.SendMessage(ctx, "hi bob", b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *m.RecipientID)

	_, err = alice.SendMessage(ctx, "spoof", b.ID, b.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	msgs, err := alice.Messages(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi bob", msgs[0].Content)

	fromBob, err := NewRemote(set, b.ID).Messages(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, fromBob, 1)
}

func TestRemoteInbox(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	a := mustUser(t, set, "alice@example.com", "Alice")
	b := mustUser(t, set, "bob@example.com", "Bob")
	c := mustUser(t, set, "carol@example.com", "Carol")

	_, err := NewRemote(set, a.ID).SendMessage(ctx, "hi bob", b.ID, a.ID)
	require.NoError(t, err)
	_, err = NewRemote(set, c.ID).SendMessage(ctx, "hi bob, carol here", b.ID, c.ID)
	require.NoError(t, err)

	inbox, err := NewRemote(set, b.ID).Inbox(ctx)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)

	inbox, err = NewRemote(set, a.ID).Inbox(ctx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "hi bob", inbox[0].Content)
}

func TestRemoteRejectsInvalidWrites(t *testing.T) {
	set := newTestSet(t)
	ctx := context.Background()
	alice := NewRemote(set, mustUser(t, set, "alice@example.com", "Alice").ID)

	_, err := alice.AddTask(ctx, models.Task{Title: "x", Status: "bogus"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	task, err := alice.AddTask(ctx, models.Task{Title: "Keep", Status: models.TaskCompleted})
	require.NoError(t, err)
	assert.False(t, task.Completed())

	assert.ErrorIs(t, alice.UpdateTask(ctx, task.ID, models.TaskPatch{Title: ptr("  ")}), apperr.ErrValidation)
	got, err := set.Tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)

	m, err := alice.AddMemory(ctx, models.Memory{Title: "Keep"})
	require.NoError(t, err)
	assert.ErrorIs(t, alice.UpdateMemory(ctx, m.ID, models.MemoryPatch{Title: ptr("")}), apperr.ErrValidation)
}
