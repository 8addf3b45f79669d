package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationFilter struct {
	UserID *uuid.UUID
	Type   *models.NotificationType
}

type CreateNotificationRequest struct {
	UserID      uuid.UUID               `json:"user_id"`
	ActorID     *uuid.UUID              `json:"actor_id"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     *string                 `json:"message"`
	RelatedType *string                 `json:"related_type"`
	RelatedID   *uuid.UUID              `json:"related_id"`
}

type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, now: time.Now}
}

func unread(db *gorm.DB) *gorm.DB { return db.Where("read_at IS NULL") }

func (s *NotificationService) List(ctx context.Context, f NotificationFilter) ([]models.Notification, error) {
	if err := models.CheckOptional("type", f.Type); err != nil {
		return nil, err
	}
	return find[models.Notification](ctx, s.db, "list notifications", "created_at DESC",
		eq("user_id", f.UserID), eq("type", f.Type))
}

func (s *NotificationService) ByType(ctx context.Context, userID uuid.UUID, t models.NotificationType) ([]models.Notification, error) {
	return s.List(ctx, NotificationFilter{UserID: &userID, Type: &t})
}

func (s *NotificationService) Unread(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	return find[models.Notification](ctx, s.db, "list unread notifications", "created_at DESC",
		eq("user_id", &userID), unread)
}

func (s *NotificationService) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return first[models.Notification](ctx, s.db, "get notification", byID(id))
}

func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if err := models.Check("type", req.Type); err != nil {
		return nil, err
	}
	if err := requiredID("user_id", req.UserID); err != nil {
		return nil, err
	}
	if err := required("title", req.Title); err != nil {
		return nil, err
	}
	n := models.Notification{
		UserID:      req.UserID,
		ActorID:     req.ActorID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
	}
	if err := create(ctx, s.db, "create notification", &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).Scopes(unread).
		Update("read_at", s.now().UTC()).Error
	return apperr.Store("mark notification read", err)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).Scopes(unread).
		Update("read_at", s.now().UTC()).Error
	return apperr.Store("mark notifications read", err)
}

// Delete removes the notification row.
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id).Error
	return apperr.Store("delete notification", err)
}
