package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamFilter struct {
	OwnerID *uuid.UUID
}

type CreateTeamRequest struct {
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	AvatarURL   *string   `json:"avatar_url"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

func (s *TeamService) List(ctx context.Context, f TeamFilter) ([]models.Team, error) {
	return find[models.Team](ctx, s.db, "list teams", "created_at DESC", eq("owner_id", f.OwnerID))
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return first[models.Team](ctx, s.db, "get team", byID(id))
}

// Create inserts the team together with the owner's membership.
func (s *TeamService) Create(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}

	team := models.Team{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		owner := models.TeamMember{
			TeamID:   team.ID,
			UserID:   req.OwnerID,
			Role:     models.RoleOwner,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, apperr.Store("create team", err)
	}
	return &team, nil
}

func (s *TeamService) Update(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if req.Name != nil {
		if err := required("name", *req.Name); err != nil {
			return nil, err
		}
	}
	team, err := mustGet[models.Team](ctx, s.db, "update team", "team", id)
	if err != nil {
		return nil, err
	}
	set(&team.Name, req.Name)
	setOpt(&team.Description, req.Description)
	setOpt(&team.AvatarURL, req.AvatarURL)

	if err := save(ctx, s.db, "update team", team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Team](ctx, s.db, "delete team", id)
}

// Members lists a team's memberships in join order.
func (s *TeamService) Members(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	return find[models.TeamMember](ctx, s.db, "list team members", "joined_at ASC", eq("team_id", &teamID))
}

// AddMember joins userID to the team. A nil role means member.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID, role *models.TeamRole) (*models.TeamMember, error) {
	r := models.RoleMember
	if role != nil {
		r = *role
	}
	if err := models.Check("role", r); err != nil {
		return nil, err
	}

	m := models.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     r,
		JoinedAt: time.Now().UTC(),
	}
	if err := create(ctx, s.db, "add team member", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TeamService) UpdateMember(ctx context.Context, memberID uuid.UUID, role models.TeamRole) (*models.TeamMember, error) {
	if err := models.Check("role", role); err != nil {
		return nil, err
	}
	m, err := mustGet[models.TeamMember](ctx, s.db, "update team member", "team member", memberID)
	if err != nil {
		return nil, err
	}
	m.Role = role
	if err := save(ctx, s.db, "update team member", m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember deletes the membership row.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
	return apperr.Store("remove team member", err)
}

// UserTeams lists the live teams userID belongs to.
func (s *TeamService) UserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, error) {
	return find[models.Team](ctx, s.db, "list user teams", "teams.created_at DESC", func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN team_members ON team_members.team_id = teams.id").
			Where("team_members.user_id = ?", userID)
	})
}
