package services

import (
	"context"
	"errors"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRelationshipExists = errors.New("a relationship between these users already exists")

type FriendFilter struct {
	UserID   *uuid.UUID
	FriendID *uuid.UUID
	Status   *models.FriendStatus
}

type FriendService struct {
	db    *gorm.DB
	users *UserService
}

func NewFriendService(db *gorm.DB, users *UserService) *FriendService {
	return &FriendService{db: db, users: users}
}

// pair matches the relationship between a and b in either direction.
func pair(a, b uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?))", a, b, b, a)
	}
}

// involving matches rows where userID is either party.
func involving(userID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(user_id = ? OR friend_id = ?)", userID, userID)
	}
}

func (s *FriendService) List(ctx context.Context, f FriendFilter) ([]models.Friend, error) {
	if err := models.CheckOptional("status", f.Status); err != nil {
		return nil, err
	}
	return find[models.Friend](ctx, s.db, "list friends", "created_at DESC",
		eq("user_id", f.UserID), eq("friend_id", f.FriendID), eq("status", f.Status))
}

func (s *FriendService) Get(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	return first[models.Friend](ctx, s.db, "get friend", byID(id))
}

// Friends lists userID's relationships in the given status, accepted when nil.
func (s *FriendService) Friends(ctx context.Context, userID uuid.UUID, status *models.FriendStatus) ([]models.Friend, error) {
	st := models.FriendAccepted
	if status != nil {
		st = *status
	}
	if err := models.Check("status", st); err != nil {
		return nil, err
	}
	return find[models.Friend](ctx, s.db, "list friends", "created_at DESC", involving(userID), eq("status", &st))
}

// Profiles returns the user rows of userID's accepted friends.
func (s *FriendService) Profiles(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	rels, err := s.Friends(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return []models.User{}, nil
	}
	ids := make([]uuid.UUID, len(rels))
	for i := range rels {
		ids[i] = rels[i].Other(userID)
	}
	return find[models.User](ctx, s.db, "list friend profiles", "full_name ASC", func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	})
}

// PendingRequests lists the requests addressed to userID that await an answer.
func (s *FriendService) PendingRequests(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	st := models.FriendPending
	return find[models.Friend](ctx, s.db, "list friend requests", "created_at DESC",
		eq("friend_id", &userID), eq("status", &st))
}

// SendRequest records a pending request from userID to friendID.
func (s *FriendService) SendRequest(ctx context.Context, userID, friendID uuid.UUID) (*models.Friend, error) {
	if userID == friendID {
		return nil, apperr.Invalid("friend_id", "cannot befriend yourself")
	}
	existing, err := first[models.Friend](ctx, s.db, "send friend request", pair(userID, friendID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRelationshipExists
	}

	rel := models.Friend{UserID: userID, FriendID: friendID, Status: models.FriendPending}
	if err := create(ctx, s.db, "send friend request", &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// SendRequestByTag resolves tag to a user and sends the request.
func (s *FriendService) SendRequestByTag(ctx context.Context, userID uuid.UUID, tag string) (*models.Friend, error) {
	if !models.ValidTag(tag) {
		return nil, apperr.Invalid("tag", `must be "#" followed by digits`)
	}
	to, err := s.users.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: tag}
	}
	return s.SendRequest(ctx, userID, to.ID)
}

// Accept marks a pending request accepted and notifies the requester, in one
// transaction.
func (s *FriendService) Accept(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	var rel models.Friend
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", id, models.FriendPending).Take(&rel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("friend request", id)
			}
			return err
		}
		rel.Status = models.FriendAccepted
		if err := tx.Save(&rel).Error; err != nil {
			return err
		}

		relatedType := "friend"
		actor := rel.FriendID
		n := models.Notification{
			UserID:      rel.UserID,
			ActorID:     &actor,
			Type:        models.NotifyFriendRequest,
			Title:       "Friend request accepted",
			RelatedType: &relatedType,
			RelatedID:   &rel.ID,
		}
		return tx.Create(&n).Error
	})
	if err != nil {
		return nil, apperr.Store("accept friend request", err)
	}
	return &rel, nil
}

// Reject deletes a pending request.
func (s *FriendService) Reject(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.FriendPending).
		Delete(&models.Friend{}).Error
	return apperr.Store("reject friend request", err)
}

func (s *FriendService) Block(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	rel, err := mustGet[models.Friend](ctx, s.db, "block friend", "friend", id)
	if err != nil {
		return nil, err
	}
	rel.Status = models.FriendBlocked
	if err := save(ctx, s.db, "block friend", rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// Unblock deletes the relationship when it is blocked.
func (s *FriendService) Unblock(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.FriendBlocked).
		Delete(&models.Friend{}).Error
	return apperr.Store("unblock friend", err)
}

// Remove deletes the relationship between a and b whichever side asked.
func (s *FriendService) Remove(ctx context.Context, a, b uuid.UUID) error {
	err := s.db.WithContext(ctx).Scopes(pair(a, b)).Delete(&models.Friend{}).Error
	return apperr.Store("remove friend", err)
}

func (s *FriendService) IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error) {
	st := models.FriendAccepted
	rel, err := first[models.Friend](ctx, s.db, "check friendship", pair(a, b), eq("status", &st))
	if err != nil {
		return false, err
	}
	return rel != nil, nil
}
