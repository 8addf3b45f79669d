package services

import (
	"context"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareFilter struct {
	OwnerID      *uuid.UUID
	UserID       *uuid.UUID
	TeamID       *uuid.UUID
	ResourceType *models.ResourceType
	ResourceID   *uuid.UUID
}

// ShareRequest grants access to a user or to a team, never both.
type ShareRequest struct {
	OwnerID          uuid.UUID           `json:"owner_id"`
	SharedWithUserID *uuid.UUID          `json:"shared_with_user_id"`
	SharedWithTeamID *uuid.UUID          `json:"shared_with_team_id"`
	ResourceType     models.ResourceType `json:"resource_type"`
	ResourceID       uuid.UUID           `json:"resource_id"`
	Permission       *models.Permission  `json:"permission"`
}

type ShareService struct {
	db *gorm.DB
}

func NewShareService(db *gorm.DB) *ShareService {
	return &ShareService{db: db}
}

func (s *ShareService) List(ctx context.Context, f ShareFilter) ([]models.SharedResource, error) {
	if err := models.CheckOptional("resource_type", f.ResourceType); err != nil {
		return nil, err
	}
	return find[models.SharedResource](ctx, s.db, "list shares", "created_at DESC",
		eq("owner_id", f.OwnerID), eq("shared_with_user_id", f.UserID), eq("shared_with_team_id", f.TeamID),
		eq("resource_type", f.ResourceType), eq("resource_id", f.ResourceID))
}

func (s *ShareService) SharedWithUser(ctx context.Context, userID uuid.UUID) ([]models.SharedResource, error) {
	return s.List(ctx, ShareFilter{UserID: &userID})
}

func (s *ShareService) ForResource(ctx context.Context, t models.ResourceType, id uuid.UUID) ([]models.SharedResource, error) {
	return s.List(ctx, ShareFilter{ResourceType: &t, ResourceID: &id})
}

func (s *ShareService) Get(ctx context.Context, id uuid.UUID) (*models.SharedResource, error) {
	return first[models.SharedResource](ctx, s.db, "get share", byID(id))
}

// Share grants access. A nil permission means view.
func (s *ShareService) Share(ctx context.Context, req ShareRequest) (*models.SharedResource, error) {
	if (req.SharedWithUserID == nil) == (req.SharedWithTeamID == nil) {
		return nil, apperr.Invalid("shared_with_user_id", "exactly one of shared_with_user_id and shared_with_team_id must be set")
	}
	if err := models.Check("resource_type", req.ResourceType); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	if err := requiredID("resource_id", req.ResourceID); err != nil {
		return nil, err
	}
	perm := models.PermView
	if req.Permission != nil {
		perm = *req.Permission
	}
	if err := models.Check("permission", perm); err != nil {
		return nil, err
	}

	sr := models.SharedResource{
		OwnerID:          req.OwnerID,
		SharedWithUserID: req.SharedWithUserID,
		SharedWithTeamID: req.SharedWithTeamID,
		ResourceType:     req.ResourceType,
		ResourceID:       req.ResourceID,
		Permission:       perm,
	}
	if err := create(ctx, s.db, "share resource", &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

func (s *ShareService) UpdatePermission(ctx context.Context, id uuid.UUID, perm models.Permission) (*models.SharedResource, error) {
	if err := models.Check("permission", perm); err != nil {
		return nil, err
	}
	sr, err := mustGet[models.SharedResource](ctx, s.db, "update share", "share", id)
	if err != nil {
		return nil, err
	}
	sr.Permission = perm
	if err := save(ctx, s.db, "update share", sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// Revoke deletes the grant.
func (s *ShareService) Revoke(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Delete(&models.SharedResource{}, "id = ?", id).Error
	return apperr.Store("revoke share", err)
}
