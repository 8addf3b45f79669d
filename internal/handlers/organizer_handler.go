package handlers

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/actor"
	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/dto"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/organizer"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OrganizerHandler serves tasks, calendar, diary, files, friends and chat
// from whichever backend the resolver is configured with.
type OrganizerHandler struct {
	resolver *organizer.Resolver
	now      func() time.Time
}

func NewOrganizerHandler(resolver *organizer.Resolver) *OrganizerHandler {
	return &OrganizerHandler{resolver: resolver, now: time.Now}
}

func (h *OrganizerHandler) backend(c *fiber.Ctx) (organizer.Backend, uuid.UUID, error) {
	id, err := actor.UserID(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return h.resolver.For(id), id, nil
}

// list writes the result of a read as JSON.
func list[T any](c *fiber.Ctx, h *OrganizerHandler, read func(organizer.Backend, context.Context) (T, error)) error {
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	v, err := read(b, c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// byID runs a mutation on the id in the path and answers 204.
func byID(c *fiber.Ctx, h *OrganizerHandler, mutate func(organizer.Backend, context.Context, uuid.UUID) error) error {
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := mutate(b, c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// patch decodes a partial update into P and applies it to the path id.
func patch[P any](c *fiber.Ctx, h *OrganizerHandler, apply func(organizer.Backend, context.Context, uuid.UUID, P) error) error {
	var p P
	if err := c.BodyParser(&p); err != nil {
		return invalidBody(c)
	}
	return byID(c, h, func(b organizer.Backend, ctx context.Context, id uuid.UUID) error {
		return apply(b, ctx, id, p)
	})
}

// add decodes a T and answers 201 with what the backend stored.
func add[T any](c *fiber.Ctx, h *OrganizerHandler, create func(organizer.Backend, context.Context, T) (*T, error)) error {
	var in T
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := create(b, c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTasks supports ?filter=all|active|completed and returns the tasks
// open first, latest due first.
func (h *OrganizerHandler) ListTasks(c *fiber.Ctx) error {
	f := aggregate.TaskFilter(c.Query("filter", string(aggregate.FilterAll)))
	if !f.Valid() {
		return respondError(c, apperr.Invalid("filter", "must be all, active or completed"))
	}
	return list(c, h, func(b organizer.Backend, ctx context.Context) ([]models.Task, error) {
		tasks, err := b.Tasks(ctx)
		if err != nil {
			return nil, err
		}
		return aggregate.SortTasks(aggregate.FilterTasks(tasks, f)), nil
	})
}

func (h *OrganizerHandler) AddTask(c *fiber.Ctx) error {
	return add(c, h, organizer.Backend.AddTask)
}

func (h *OrganizerHandler) UpdateTask(c *fiber.Ctx) error {
	return patch(c, h, organizer.Backend.UpdateTask)
}

func (h *OrganizerHandler) DeleteTask(c *fiber.Ctx) error {
	return byID(c, h, organizer.Backend.DeleteTask)
}

func (h *OrganizerHandler) ToggleTask(c *fiber.Ctx) error {
	return byID(c, h, organizer.Backend.ToggleTask)
}

func (h *OrganizerHandler) ListEvents(c *fiber.Ctx) error {
	return list(c, h, organizer.Backend.Events)
}

func (h *OrganizerHandler) AddEvent(c *fiber.Ctx) error {
	return add(c, h, organizer.Backend.AddEvent)
}

func (h *OrganizerHandler) UpdateEvent(c *fiber.Ctx) error {
	return patch(c, h, organizer.Backend.UpdateEvent)
}

func (h *OrganizerHandler) DeleteEvent(c *fiber.Ctx) error {
	return byID(c, h, organizer.Backend.DeleteEvent)
}

func (h *OrganizerHandler) ListMemories(c *fiber.Ctx) error {
	return list(c, h, organizer.Backend.Memories)
}

func (h *OrganizerHandler) AddMemory(c *fiber.Ctx) error {
	return add(c, h, organizer.Backend.AddMemory)
}

func (h *OrganizerHandler) UpdateMemory(c *fiber.Ctx) error {
	return patch(c, h, organizer.Backend.UpdateMemory)
}

func (h *OrganizerHandler) DeleteMemory(c *fiber.Ctx) error {
	return byID(c, h, organizer.Backend.DeleteMemory)
}

// ListFiles returns the files, grouped by category with ?group=category.
func (h *OrganizerHandler) ListFiles(c *fiber.Ctx) error {
	grouped := c.Query("group") == "category"
	return list(c, h, func(b organizer.Backend, ctx context.Context) (any, error) {
		files, err := b.Files(ctx)
		if err != nil {
			return nil, err
		}
		if grouped {
			return aggregate.FilesByCategory(files), nil
		}
		return files, nil
	})
}

func (h *OrganizerHandler) AddFile(c *fiber.Ctx) error {
	var req dto.FileUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := b.AddFile(c.UserContext(), req.Upload())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *OrganizerHandler) DeleteFile(c *fiber.Ctx) error {
	return byID(c, h, organizer.Backend.DeleteFile)
}

func (h *OrganizerHandler) ListFriends(c *fiber.Ctx) error {
	return list(c, h, organizer.Backend.Friends)
}

func (h *OrganizerHandler) ListFriendRequests(c *fiber.Ctx) error {
	return list(c, h, organizer.Backend.FriendRequests)
}

func (h *OrganizerHandler) AddFriend(c *fiber.Ctx) error {
	var req dto.AddFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	r, err := b.AddFriend(c.UserContext(), req.Tag)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *OrganizerHandler) HandleFriendRequest(c *fiber.Ctx) error {
	return patch(c, h, func(b organizer.Backend, ctx context.Context, id uuid.UUID, req dto.FriendRequestAction) error {
		return b.HandleFriendRequest(ctx, id, req.Action)
	})
}

// ListConversations returns one summary per conversation with its newest
// message and unread count, the most recently active first.
func (h *OrganizerHandler) ListConversations(c *fiber.Ctx) error {
	b, me, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	msgs, err := b.Inbox(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aggregate.Conversations(me, msgs))
}

func (h *OrganizerHandler) ListMessages(c *fiber.Ctx) error {
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	conv, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	msgs, err := b.Messages(c.UserContext(), conv)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

func (h *OrganizerHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	b, me, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	conv, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sender := me
	if req.SenderID != nil {
		sender = *req.SenderID
	}
	m, err := b.SendMessage(c.UserContext(), req.Content, conv, sender)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// ListGroups returns the chat groups; backends without groups have none.
func (h *OrganizerHandler) ListGroups(c *fiber.Ctx) error {
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	groups := []models.Group{}
	if g, ok := b.(organizer.GroupLister); ok {
		groups = g.Groups()
	}
	return c.JSON(groups)
}

func (h *OrganizerHandler) Dashboard(c *fiber.Ctx) error {
	b, _, err := h.backend(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.UserContext()
	tasks, err := b.Tasks(ctx)
	if err != nil {
		return respondError(c, err)
	}
	events, err := b.Events(ctx)
	if err != nil {
		return respondError(c, err)
	}
	friends, err := b.Friends(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aggregate.Dashboard(tasks, events, friends, h.now()))
}

// SessionUser returns the local session's user.
func (h *OrganizerHandler) SessionUser(c *fiber.Ctx) error {
	local := h.resolver.Local()
	if local == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "No local session"})
	}
	return c.JSON(local.CurrentUser())
}

// UpdateSessionUser merges the body into the local session's user and
// persists it.
func (h *OrganizerHandler) UpdateSessionUser(c *fiber.Ctx) error {
	local := h.resolver.Local()
	if local == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "No local session"})
	}
	u := local.CurrentUser()
	id := u.ID
	if err := c.BodyParser(&u); err != nil {
		return invalidBody(c)
	}
	u.ID = id
	if err := local.SetCurrentUser(u); err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}
