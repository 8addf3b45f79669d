package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageFilter struct {
	SenderID    *uuid.UUID
	RecipientID *uuid.UUID
	ChannelID   *uuid.UUID
}

// SendMessageRequest addresses either a user or a channel, never both.
type SendMessageRequest struct {
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID *uuid.UUID `json:"recipient_id"`
	ChannelID   *uuid.UUID `json:"channel_id"`
	Content     string     `json:"content"`
}

type MessageService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db, now: time.Now}
}

func between(a, b uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))", a, b, b, a)
	}
}

func (s *MessageService) List(ctx context.Context, f MessageFilter) ([]models.Message, error) {
	return find[models.Message](ctx, s.db, "list messages", "created_at DESC",
		eq("sender_id", f.SenderID), eq("recipient_id", f.RecipientID), eq("channel_id", f.ChannelID))
}

func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return first[models.Message](ctx, s.db, "get message", byID(id))
}

// Conversation returns the direct messages between userID and otherID,
// oldest first.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	return find[models.Message](ctx, s.db, "get conversation", "created_at ASC", between(userID, otherID))
}

// Channel returns the posts of a channel, oldest first.
func (s *MessageService) Channel(ctx context.Context, channelID uuid.UUID) ([]models.Message, error) {
	return find[models.Message](ctx, s.db, "get channel", "created_at ASC", eq("channel_id", &channelID))
}

func (s *MessageService) Send(ctx context.Context, req SendMessageRequest) (*models.Message, error) {
	if err := requiredID("sender_id", req.SenderID); err != nil {
		return nil, err
	}
	if (req.RecipientID == nil) == (req.ChannelID == nil) {
		return nil, apperr.Invalid("recipient_id", "exactly one of recipient_id and channel_id must be set")
	}
	if err := required("content", req.Content); err != nil {
		return nil, err
	}

	m := models.Message{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		ChannelID:   req.ChannelID,
		Content:     req.Content,
	}
	if err := create(ctx, s.db, "send message", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Unread lists the direct messages to userID that were not read yet, newest
// first.
func (s *MessageService) Unread(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	return find[models.Message](ctx, s.db, "list unread messages", "created_at DESC",
		eq("recipient_id", &userID), func(db *gorm.DB) *gorm.DB { return db.Where("read_at IS NULL") })
}

func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", s.now().UTC()).Error
	return apperr.Store("mark message read", err)
}

// MarkConversationRead stamps every unread message from otherID to userID.
func (s *MessageService) MarkConversationRead(ctx context.Context, userID, otherID uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", userID, otherID).
		Update("read_at", s.now().UTC()).Error
	return apperr.Store("mark conversation read", err)
}

func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Message](ctx, s.db, "delete message", id)
}

// Inbox returns the direct messages userID sent or received, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	return find[models.Message](ctx, s.db, "list inbox", "created_at DESC",
		func(db *gorm.DB) *gorm.DB { return db.Where("(sender_id = ? OR recipient_id = ?)", userID, userID) })
}

// RecentConversations returns the newest direct message per counterpart of
// userID, newest first.
func (s *MessageService) RecentConversations(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	msgs, err := s.Inbox(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate.RecentConversations(userID, msgs), nil
}
