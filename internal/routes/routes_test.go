package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/database"
	"github.com/Valentin6743/LS/internal/dto"
	"github.com/Valentin6743/LS/internal/handlers"
	"github.com/Valentin6743/LS/internal/localstore"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/organizer"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app   *fiber.App
	local *localstore.Store
}

func newTestApp(t *testing.T, backend string) *testApp {
	t.Helper()
	cfg := config.Defaults()
	cfg.Backend = backend
	cfg.SQLiteDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.JWTSecret = "test-secret"

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db))
	set := services.New(db, cfg, storage.NewMemory("http://files.test"))

	var local *localstore.Store
	if backend == config.BackendLocal {
		local = localstore.New(localstore.WithSeed(localstore.DemoSeed(time.Now())))
	}
	resolver, err := organizer.NewResolver(cfg, local, set)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, cfg, resolver, Handlers{
		Health:    handlers.NewHealthHandler(db, cfg.Backend),
		Auth:      handlers.NewAuthHandler(set.Auth, set.Users),
		Organizer: handlers.NewOrganizerHandler(resolver),
		Records:   handlers.NewRecordsHandler(set),
	})
	return &testApp{app: app, local: local}
}

// call sends body as JSON and decodes the reply into out when out is non-nil.
func (a *testApp) call(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testApp) register(t *testing.T, email string) dto.AuthResponse {
	t.Helper()
	var auth dto.AuthResponse
	status := a.call(t, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: email, Password: "password123", FullName: "Test User"}, &auth)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, auth.AccessToken)
	return auth
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, config.BackendLocal)
	var health dto.HealthResponse
	assert.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/health", "", nil, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, config.BackendLocal, health.Backend)
}

func TestLocalTasks(t *testing.T) {
	a := newTestApp(t, config.BackendLocal)

	var task models.Task
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/organizer/tasks", "",
		map[string]any{"title": "Buy milk"}, &task))
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, a.local.CurrentUser().ID, task.OwnerID)

	assert.Equal(t, http.StatusNoContent, a.call(t, http.MethodPost, "/api/organizer/tasks/"+task.ID.String()+"/toggle", "", nil, nil))

	var done []models.Task
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/tasks?filter=completed", "", nil, &done))
	require.Len(t, done, 1)
	assert.Equal(t, task.ID, done[0].ID)

	var active []models.Task
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/tasks?filter=active", "", nil, &active))
	assert.Empty(t, active)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodGet, "/api/organizer/tasks?filter=soon", "", nil, &e))
	assert.True(t, e.Error)

	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodPost, "/api/organizer/tasks", "",
		map[string]any{"title": "x", "priority": "critical"}, nil))
	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodDelete, "/api/organizer/tasks/not-a-uuid", "", nil, nil))
}

func TestLocalFriendRequestAccept(t *testing.T) {
	a := newTestApp(t, config.BackendLocal)

	var requests []models.FriendRequest
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/friend-requests", "", nil, &requests))
	require.Len(t, requests, 1)

	path := "/api/organizer/friend-requests/" + requests[0].ID.String()
	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodPost, path, "", map[string]string{"action": "ignore"}, nil))
	assert.Equal(t, http.StatusNoContent, a.call(t, http.MethodPost, path, "", map[string]string{"action": "accept"}, nil))

	var friends []models.User
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/friends", "", nil, &friends))
	assert.Len(t, friends, 3)

	var groups []models.Group
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/groups", "", nil, &groups))
	assert.Len(t, groups, 2)

	var dash aggregate.DashboardView
	assert.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/dashboard", "", nil, &dash))
}

func TestLocalConversations(t *testing.T) {
	a := newTestApp(t, config.BackendLocal)

	var convs []aggregate.ConversationSummary
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/conversations", "", nil, &convs))
	require.Len(t, convs, 2)
	assert.Equal(t, localstore.DemoID("message/m1"), convs[0].Last.ID)
	assert.Equal(t, 1, convs[0].Unread)
	assert.Equal(t, localstore.DemoID("channel/g1c1"), convs[1].ID)
	assert.Equal(t, 0, convs[1].Unread)
}

func TestLocalSession(t *testing.T) {
	a := newTestApp(t, config.BackendLocal)

	var me models.User
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/session", "", nil, &me))
	assert.Equal(t, "Max Mustermann", me.FullName)

	var updated models.User
	require.Equal(t, http.StatusOK, a.call(t, http.MethodPut, "/api/session", "",
		map[string]string{"theme": "dark"}, &updated))
	assert.Equal(t, models.Theme("dark"), updated.Theme)
	assert.Equal(t, me.ID, updated.ID)

	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodPut, "/api/session", "",
		map[string]string{"theme": "neon"}, nil))
}

func TestRemoteRequiresToken(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, a.call(t, http.MethodGet, "/api/organizer/tasks", "", nil, &e))
	assert.True(t, e.Error)
	assert.Equal(t, http.StatusUnauthorized, a.call(t, http.MethodGet, "/api/organizer/tasks", "garbage", nil, nil))
	assert.Equal(t, http.StatusNotFound, a.call(t, http.MethodGet, "/api/session", "", nil, nil))
}

func TestRemoteTasksAreOwnerScoped(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	alice := a.register(t, "alice@example.com")
	bob := a.register(t, "bob@example.com")

	var task models.Task
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/organizer/tasks", alice.AccessToken,
		map[string]any{"title": "Write report"}, &task))
	assert.Equal(t, alice.User.ID, task.OwnerID)

	var bobs []models.Task
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/organizer/tasks", bob.AccessToken, nil, &bobs))
	assert.Empty(t, bobs)

	assert.Equal(t, http.StatusNotFound, a.call(t, http.MethodDelete, "/api/organizer/tasks/"+task.ID.String(), bob.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNoContent, a.call(t, http.MethodDelete, "/api/organizer/tasks/"+task.ID.String(), alice.AccessToken, nil, nil))
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	auth := a.register(t, "carol@example.com")

	assert.Equal(t, http.StatusConflict, a.call(t, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: "carol@example.com", Password: "password123", FullName: "Carol"}, nil))
	assert.Equal(t, http.StatusUnauthorized, a.call(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "carol@example.com", Password: "wrong-password"}, nil))

	var login dto.AuthResponse
	require.Equal(t, http.StatusOK, a.call(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "carol@example.com", Password: "password123"}, &login))
	assert.Equal(t, auth.User.ID, login.User.ID)

	var refreshed dto.AuthResponse
	require.Equal(t, http.StatusOK, a.call(t, http.MethodPost, "/api/auth/refresh", "",
		dto.RefreshRequest{RefreshToken: login.RefreshToken}, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRecordsNotes(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	alice := a.register(t, "alice@example.com")
	bob := a.register(t, "bob@example.com")

	var note models.Note
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/records/notes", alice.AccessToken,
		map[string]any{"content": "groceries: oat milk"}, &note))
	assert.Equal(t, alice.User.ID, note.OwnerID)
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/records/notes", bob.AccessToken,
		map[string]any{"content": "milk run"}, nil))

	var found []models.Note
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/records/notes?q=milk", alice.AccessToken, nil, &found))
	require.Len(t, found, 1)
	assert.Equal(t, note.ID, found[0].ID)

	assert.Equal(t, http.StatusNotFound, a.call(t, http.MethodDelete, "/api/records/notes/"+note.ID.String(), bob.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNoContent, a.call(t, http.MethodDelete, "/api/records/notes/"+note.ID.String(), alice.AccessToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, a.call(t, http.MethodGet, "/api/records/notes", "", nil, nil))
}

func TestRecordsTransactionSummary(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	alice := a.register(t, "alice@example.com")

	for _, tx := range []map[string]any{
		{"type": "income", "category": "salary", "amount": 3000, "transaction_date": "2024-03-01T09:00:00Z"},
		{"type": "expense", "category": "food", "amount": 40.5, "transaction_date": "2024-03-02T12:00:00Z"},
		{"type": "expense", "category": "food", "amount": 9.5, "transaction_date": "2024-03-03T12:00:00Z"},
		{"type": "expense", "category": "food", "amount": 100, "transaction_date": "2024-04-03T12:00:00Z"},
	} {
		require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/records/transactions", alice.AccessToken, tx, nil))
	}
	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodPost, "/api/records/transactions", alice.AccessToken,
		map[string]any{"type": "gift", "category": "x", "amount": 1}, nil))

	var summary map[string]aggregate.CategorySummary
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet,
		"/api/records/transactions/summary?from=2024-03-01&to=2024-03-31", alice.AccessToken, nil, &summary))
	assert.InDelta(t, 3000, summary["salary"].Income, 0.001)
	assert.InDelta(t, 50, summary["food"].Expense, 0.001)

	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodGet,
		"/api/records/transactions/summary?from=yesterday", alice.AccessToken, nil, nil))
}

func TestRecordsHabitLogs(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	alice := a.register(t, "alice@example.com")

	var habit models.Habit
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/records/habits", alice.AccessToken,
		map[string]any{"name": "Run", "category": "health", "frequency": "daily"}, &habit))

	path := "/api/records/habits/" + habit.ID.String() + "/logs"
	require.Equal(t, http.StatusOK, a.call(t, http.MethodPost, path, alice.AccessToken, map[string]any{"date": "2024-03-01", "value": 5}, nil))
	require.Equal(t, http.StatusOK, a.call(t, http.MethodPost, path, alice.AccessToken, map[string]any{"date": "2024-03-01", "value": 7}, nil))
	assert.Equal(t, http.StatusBadRequest, a.call(t, http.MethodPost, path, alice.AccessToken, map[string]any{"date": "01.03.2024"}, nil))

	var logs []models.HabitLog
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, path, alice.AccessToken, nil, &logs))
	require.Len(t, logs, 1)
	assert.InDelta(t, 7, logs[0].Value, 0.001)
}

func TestRecordsNotifications(t *testing.T) {
	a := newTestApp(t, config.BackendRemote)
	alice := a.register(t, "alice@example.com")

	var list []models.Notification
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/records/notifications?unread=true", alice.AccessToken, nil, &list))
	assert.Empty(t, list)
	assert.Equal(t, http.StatusNoContent, a.call(t, http.MethodPost, "/api/records/notifications/read", alice.AccessToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.call(t, http.MethodPost, "/api/records/notifications/"+uuid.NewString()+"/read", alice.AccessToken, nil, nil))
}
