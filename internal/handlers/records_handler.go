package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/actor"
	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordsHandler serves the entities that only live in the database:
// projects, habits, transactions, notes and notifications. Every route acts
// on the signed in user's own rows.
type RecordsHandler struct {
	svc *services.Set
}

func NewRecordsHandler(svc *services.Set) *RecordsHandler {
	return &RecordsHandler{svc: svc}
}

// ownedBy loads the path id through get and fails with not found unless the
// row belongs to the acting user.
func ownedBy[T any](c *fiber.Ctx, entity string, get func(context.Context, uuid.UUID) (*T, error), owner func(*T) uuid.UUID) (uuid.UUID, error) {
	me, err := actor.UserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return uuid.Nil, err
	}
	row, err := get(c.UserContext(), id)
	if err != nil {
		return uuid.Nil, err
	}
	if row == nil || owner(row) != me {
		return uuid.Nil, apperr.NotFound(entity, id)
	}
	return id, nil
}

// parseWindow reads the optional ?from= and ?to= bounds, as RFC 3339 times
// or plain dates. A plain ?to= date includes the whole day.
func parseWindow(c *fiber.Ctx) (services.Range, error) {
	var r services.Range
	for _, b := range []struct {
		key string
		dst **time.Time
	}{{"from", &r.From}, {"to", &r.To}} {
		raw := c.Query(b.key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse(time.DateOnly, raw)
			if err == nil && b.key == "to" {
				t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
		}
		if err != nil {
			return r, apperr.Invalid(b.key, "must be a date or RFC 3339 time")
		}
		*b.dst = &t
	}
	return r, nil
}

func projectOwner(p *models.Project) uuid.UUID           { return p.OwnerID }
func habitOwner(h *models.Habit) uuid.UUID               { return h.OwnerID }
func transactionOwner(t *models.Transaction) uuid.UUID   { return t.OwnerID }
func noteOwner(n *models.Note) uuid.UUID                 { return n.OwnerID }
func notificationOwner(n *models.Notification) uuid.UUID { return n.UserID }

func (h *RecordsHandler) ListProjects(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	projects, err := h.svc.Projects.List(c.UserContext(), services.ProjectFilter{OwnerID: &me})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

func (h *RecordsHandler) CreateProject(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req services.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.OwnerID = me
	p, err := h.svc.Projects.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *RecordsHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := ownedBy(c, "project", h.svc.Projects.Get, projectOwner)
	if err != nil {
		return respondError(c, err)
	}
	var req services.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	p, err := h.svc.Projects.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

func (h *RecordsHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := ownedBy(c, "project", h.svc.Projects.Get, projectOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Projects.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecordsHandler) ListHabits(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	habits, err := h.svc.Habits.List(c.UserContext(), services.HabitFilter{OwnerID: &me})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(habits)
}

func (h *RecordsHandler) CreateHabit(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req services.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.OwnerID = me
	habit, err := h.svc.Habits.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *RecordsHandler) UpdateHabit(c *fiber.Ctx) error {
	id, err := ownedBy(c, "habit", h.svc.Habits.Get, habitOwner)
	if err != nil {
		return respondError(c, err)
	}
	var req services.UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	habit, err := h.svc.Habits.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(habit)
}

func (h *RecordsHandler) DeleteHabit(c *fiber.Ctx) error {
	id, err := ownedBy(c, "habit", h.svc.Habits.Get, habitOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Habits.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type habitLogRequest struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
	Notes *string  `json:"notes"`
}

// LogHabit records the value for a day, today when no date is given.
func (h *RecordsHandler) LogHabit(c *fiber.Ctx) error {
	id, err := ownedBy(c, "habit", h.svc.Habits.Get, habitOwner)
	if err != nil {
		return respondError(c, err)
	}
	var req habitLogRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	day := time.Now()
	if req.Date != "" {
		if day, err = time.Parse(time.DateOnly, req.Date); err != nil {
			return respondError(c, apperr.Invalid("date", "must be YYYY-MM-DD"))
		}
	}
	entry, err := h.svc.Habits.Log(c.UserContext(), id, day, req.Value, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *RecordsHandler) HabitLogs(c *fiber.Ctx) error {
	id, err := ownedBy(c, "habit", h.svc.Habits.Get, habitOwner)
	if err != nil {
		return respondError(c, err)
	}
	window, err := parseWindow(c)
	if err != nil {
		return respondError(c, err)
	}
	logs, err := h.svc.Habits.Logs(c.UserContext(), id, window.From, window.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(logs)
}

func (h *RecordsHandler) ListTransactions(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	window, err := parseWindow(c)
	if err != nil {
		return respondError(c, err)
	}
	f := services.TransactionFilter{OwnerID: &me, Date: window}
	if cat := c.Query("category"); cat != "" {
		f.Category = &cat
	}
	if raw := c.Query("type"); raw != "" {
		t, err := models.Parse[models.TransactionType]("type", raw)
		if err != nil {
			return respondError(c, err)
		}
		f.Type = &t
	}
	txs, err := h.svc.Transactions.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}

func (h *RecordsHandler) CreateTransaction(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req services.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.OwnerID = me
	tx, err := h.svc.Transactions.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *RecordsHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := ownedBy(c, "transaction", h.svc.Transactions.Get, transactionOwner)
	if err != nil {
		return respondError(c, err)
	}
	var req services.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	tx, err := h.svc.Transactions.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}

func (h *RecordsHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := ownedBy(c, "transaction", h.svc.Transactions.Get, transactionOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Transactions.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TransactionSummary totals the user's transactions per category inside
// ?from=&to=, the current month by default.
func (h *RecordsHandler) TransactionSummary(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	window, err := parseWindow(c)
	if err != nil {
		return respondError(c, err)
	}
	if window.From == nil {
		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		window.From = &start
	}
	if window.To == nil {
		end := window.From.AddDate(0, 1, 0).Add(-time.Nanosecond)
		window.To = &end
	}
	txs, err := h.svc.Transactions.List(c.UserContext(), services.TransactionFilter{OwnerID: &me, Date: window})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aggregate.SummarizeByCategory(txs))
}

func (h *RecordsHandler) ListNotes(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.UserContext()
	var notes []models.Note
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		all, err := h.svc.Notes.Search(ctx, q)
		if err != nil {
			return respondError(c, err)
		}
		notes = make([]models.Note, 0, len(all))
		for _, n := range all {
			if n.OwnerID == me {
				notes = append(notes, n)
			}
		}
	} else {
		f := services.NoteFilter{OwnerID: &me}
		if c.QueryBool("favorites") {
			fav := true
			f.IsFavorite = &fav
		}
		if notes, err = h.svc.Notes.List(ctx, f); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(notes)
}

func (h *RecordsHandler) CreateNote(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req services.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.OwnerID = me
	n, err := h.svc.Notes.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *RecordsHandler) UpdateNote(c *fiber.Ctx) error {
	id, err := ownedBy(c, "note", h.svc.Notes.Get, noteOwner)
	if err != nil {
		return respondError(c, err)
	}
	var req services.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	n, err := h.svc.Notes.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(n)
}

func (h *RecordsHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := ownedBy(c, "note", h.svc.Notes.Get, noteOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Notes.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotifications returns the user's notifications, only unread ones with
// ?unread=true.
func (h *RecordsHandler) ListNotifications(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var list []models.Notification
	if c.QueryBool("unread") {
		list, err = h.svc.Notifications.Unread(c.UserContext(), me)
	} else {
		list, err = h.svc.Notifications.List(c.UserContext(), services.NotificationFilter{UserID: &me})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *RecordsHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := ownedBy(c, "notification", h.svc.Notifications.Get, notificationOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Notifications.MarkRead(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecordsHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	me, err := actor.UserID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Notifications.MarkAllRead(c.UserContext(), me); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
