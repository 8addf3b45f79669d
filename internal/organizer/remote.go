package organizer

import (
	"context"
	"errors"
	"strings"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/google/uuid"
)

// Remote serves the organizer from the relational services as one user.
// Rows owned by other users are reported as not found.
type Remote struct {
	svc    *services.Set
	userID uuid.UUID
}

func NewRemote(svc *services.Set, userID uuid.UUID) *Remote {
	return &Remote{svc: svc, userID: userID}
}

// owned fails unless the row exists and belongs to ownerID.
func owned[T any](ctx context.Context, get func(context.Context, uuid.UUID) (*T, error), owner func(*T) uuid.UUID, entity string, id, ownerID uuid.UUID) error {
	row, err := get(ctx, id)
	if err != nil {
		return err
	}
	if row == nil || owner(row) != ownerID {
		return apperr.NotFound(entity, id)
	}
	return nil
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func (r *Remote) Tasks(ctx context.Context) ([]models.Task, error) {
	return r.svc.Tasks.List(ctx, services.TaskFilter{OwnerID: &r.userID})
}

// AddTask creates an open task; like the local store it never starts one as
// completed.
func (r *Remote) AddTask(ctx context.Context, t models.Task) (*models.Task, error) {
	status := optional(t.Status)
	if t.Completed() {
		status = nil
	}
	return r.svc.Tasks.Create(ctx, services.CreateTaskRequest{
		OwnerID:        r.userID,
		ProjectID:      t.ProjectID,
		ParentTaskID:   t.ParentTaskID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         status,
		Priority:       optional(t.Priority),
		Category:       t.Category,
		Repeat:         t.Repeat,
		DueDate:        t.DueDate,
		StartDate:      t.StartDate,
		EstimatedHours: t.EstimatedHours,
		AssigneeID:     t.AssigneeID,
		Tags:           t.Tags,
	})
}

func taskOwner(t *models.Task) uuid.UUID { return t.OwnerID }

func (r *Remote) UpdateTask(ctx context.Context, id uuid.UUID, p models.TaskPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := owned(ctx, r.svc.Tasks.Get, taskOwner, "task", id, r.userID); err != nil {
		return err
	}
	_, err := r.svc.Tasks.Update(ctx, id, services.UpdateTaskRequest{
		ProjectID:   p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Category:    p.Category,
		Repeat:      p.Repeat,
		DueDate:     p.DueDate,
		StartDate:   p.StartDate,
		AssigneeID:  p.AssigneeID,
		Tags:        p.Tags,
	})
	return err
}

func (r *Remote) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := owned(ctx, r.svc.Tasks.Get, taskOwner, "task", id, r.userID); err != nil {
		return err
	}
	return r.svc.Tasks.Delete(ctx, id)
}

func (r *Remote) ToggleTask(ctx context.Context, id uuid.UUID) error {
	if err := owned(ctx, r.svc.Tasks.Get, taskOwner, "task", id, r.userID); err != nil {
		return err
	}
	_, _, err := r.svc.Tasks.Toggle(ctx, id)
	return err
}

func (r *Remote) Events(ctx context.Context) ([]models.CalendarEvent, error) {
	return r.svc.Events.List(ctx, services.EventFilter{OwnerID: &r.userID})
}

func (r *Remote) AddEvent(ctx context.Context, e models.CalendarEvent) (*models.CalendarEvent, error) {
	return r.svc.Events.Create(ctx, services.CreateEventRequest{
		OwnerID:        r.userID,
		TeamID:         e.TeamID,
		Title:          e.Title,
		Description:    e.Description,
		SourceType:     optional(e.SourceType),
		SourceID:       e.SourceID,
		Category:       e.Category,
		Color:          e.Color,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		AllDay:         e.AllDay,
		IsRecurring:    e.IsRecurring,
		RecurrenceRule: e.RecurrenceRule,
		Location:       e.Location,
		Visibility:     optional(e.Visibility),
		Participants:   e.Participants,
	})
}

func eventOwner(e *models.CalendarEvent) uuid.UUID { return e.OwnerID }

func (r *Remote) UpdateEvent(ctx context.Context, id uuid.UUID, p models.EventPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := owned(ctx, r.svc.Events.Get, eventOwner, "event", id, r.userID); err != nil {
		return err
	}
	_, err := r.svc.Events.Update(ctx, id, services.UpdateEventRequest{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		AllDay:       p.AllDay,
		Location:     p.Location,
		Visibility:   p.Visibility,
		Participants: p.Participants,
	})
	return err
}

func (r *Remote) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := owned(ctx, r.svc.Events.Get, eventOwner, "event", id, r.userID); err != nil {
		return err
	}
	return r.svc.Events.Delete(ctx, id)
}

func (r *Remote) Memories(ctx context.Context) ([]models.Memory, error) {
	return r.svc.Memories.List(ctx, services.MemoryFilter{OwnerID: &r.userID})
}

func (r *Remote) AddMemory(ctx context.Context, m models.Memory) (*models.Memory, error) {
	req := services.CreateMemoryRequest{
		OwnerID: r.userID,
		Title:   m.Title,
		Content: m.Content,
		Mood:    m.Mood,
		Tags:    m.Tags,
		Photos:  m.Photos,
	}
	if !m.Date.IsZero() {
		req.Date = &m.Date
	}
	return r.svc.Memories.Create(ctx, req)
}

func memoryOwner(m *models.Memory) uuid.UUID { return m.OwnerID }

func (r *Remote) UpdateMemory(ctx context.Context, id uuid.UUID, p models.MemoryPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := owned(ctx, r.svc.Memories.Get, memoryOwner, "memory", id, r.userID); err != nil {
		return err
	}
	_, err := r.svc.Memories.Update(ctx, id, services.UpdateMemoryRequest{
		Title:   p.Title,
		Content: p.Content,
		Date:    p.Date,
		Mood:    p.Mood,
		Tags:    p.Tags,
		Photos:  p.Photos,
	})
	return err
}

func (r *Remote) DeleteMemory(ctx context.Context, id uuid.UUID) error {
	if err := owned(ctx, r.svc.Memories.Get, memoryOwner, "memory", id, r.userID); err != nil {
		return err
	}
	return r.svc.Memories.Delete(ctx, id)
}

func (r *Remote) Files(ctx context.Context) ([]models.FileRecord, error) {
	return r.svc.Files.List(ctx, services.FileFilter{OwnerID: &r.userID})
}

func (r *Remote) AddFile(ctx context.Context, up models.FileUpload) (*models.FileRecord, error) {
	return r.svc.Files.Upload(ctx, services.UploadFileRequest{
		OwnerID:      r.userID,
		Path:         up.Path,
		Name:         up.Name,
		Data:         up.Data,
		MimeType:     up.MimeType,
		Category:     up.Category,
		Description:  up.Description,
		UploaderName: up.UploaderName,
	})
}

func (r *Remote) DeleteFile(ctx context.Context, id uuid.UUID) error {
	f, err := r.svc.Files.Get(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	if f.OwnerID != r.userID {
		return apperr.NotFound("file", id)
	}
	return r.svc.Files.Delete(ctx, id)
}

func (r *Remote) Friends(ctx context.Context) ([]models.User, error) {
	return r.svc.Friends.Profiles(ctx, r.userID)
}

// FriendRequests returns the pending requests addressed to the user followed
// by the ones the user sent.
func (r *Remote) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	incoming, err := r.svc.Friends.PendingRequests(ctx, r.userID)
	if err != nil {
		return nil, err
	}
	pending := models.FriendPending
	outgoing, err := r.svc.Friends.List(ctx, services.FriendFilter{UserID: &r.userID, Status: &pending})
	if err != nil {
		return nil, err
	}

	out := make([]models.FriendRequest, 0, len(incoming)+len(outgoing))
	for _, rel := range append(incoming, outgoing...) {
		v, err := r.requestView(ctx, &rel)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Remote) requestView(ctx context.Context, rel *models.Friend) (models.FriendRequest, error) {
	from, err := r.svc.Users.Get(ctx, rel.UserID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if from == nil {
		return models.FriendRequest{}, apperr.NotFound("user", rel.UserID)
	}
	to, err := r.svc.Users.Get(ctx, rel.FriendID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	v := models.FriendRequest{
		ID:        rel.ID,
		From:      from.Profile(),
		ToUserID:  &rel.FriendID,
		Status:    models.RequestPending,
		CreatedAt: rel.CreatedAt,
	}
	if to != nil {
		v.ToTag = to.Tag
	}
	return v, nil
}

// AddFriend sends a request to the user with tag. When a request to that
// user is already pending it is returned instead.
func (r *Remote) AddFriend(ctx context.Context, tag string) (*models.FriendRequest, error) {
	tag = strings.TrimSpace(tag)
	rel, err := r.svc.Friends.SendRequestByTag(ctx, r.userID, tag)
	if errors.Is(err, services.ErrRelationshipExists) {
		rel, err = r.pendingTo(ctx, tag)
	}
	if err != nil {
		return nil, err
	}
	v, err := r.requestView(ctx, rel)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Remote) pendingTo(ctx context.Context, tag string) (*models.Friend, error) {
	to, err := r.svc.Users.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, services.ErrRelationshipExists
	}
	pending := models.FriendPending
	rels, err := r.svc.Friends.List(ctx, services.FriendFilter{UserID: &r.userID, FriendID: &to.ID, Status: &pending})
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, services.ErrRelationshipExists
	}
	return &rels[0], nil
}

// HandleFriendRequest answers a pending request addressed to the user.
func (r *Remote) HandleFriendRequest(ctx context.Context, id uuid.UUID, action models.RequestAction) error {
	if err := models.Check("action", action); err != nil {
		return err
	}
	rel, err := r.svc.Friends.Get(ctx, id)
	if err != nil {
		return err
	}
	if rel == nil || rel.FriendID != r.userID || rel.Status != models.FriendPending {
		return apperr.NotFound("friend request", id)
	}
	if action == models.Decline {
		return r.svc.Friends.Reject(ctx, id)
	}
	_, err = r.svc.Friends.Accept(ctx, id)
	return err
}

// Inbox returns the user's direct messages. Channels are not listed.
func (r *Remote) Inbox(ctx context.Context) ([]models.Message, error) {
	return r.svc.Messages.Inbox(ctx, r.userID)
}

// Messages returns the posts of the channel conversationID or, when it has
// none, the direct messages with that user.
func (r *Remote) Messages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	msgs, err := r.svc.Messages.Channel(ctx, conversationID)
	if err != nil || len(msgs) > 0 {
		return msgs, err
	}
	return r.svc.Messages.Conversation(ctx, r.userID, conversationID)
}

// SendMessage sends a direct message to conversationID. Channels live only
// in the local store.
func (r *Remote) SendMessage(ctx context.Context, content string, conversationID, senderID uuid.UUID) (*models.Message, error) {
	if senderID != r.userID {
		return nil, apperr.Invalid("sender_id", "must be the signed in user")
	}
	if conversationID == uuid.Nil {
		return nil, apperr.Invalid("conversation_id", "is required")
	}
	return r.svc.Messages.Send(ctx, services.SendMessageRequest{
		SenderID:    senderID,
		RecipientID: &conversationID,
		Content:     content,
	})
}
