package services

import (
	"context"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultProjectColor = "#3b82f6"

type ProjectFilter struct {
	OwnerID *uuid.UUID
	TeamID  *uuid.UUID
	Status  *models.ProjectStatus
}

type CreateProjectRequest struct {
	OwnerID     uuid.UUID             `json:"owner_id"`
	TeamID      *uuid.UUID            `json:"team_id"`
	Name        string                `json:"name"`
	Description *string               `json:"description"`
	Status      *models.ProjectStatus `json:"status"`
	Color       string                `json:"color"`
	StartDate   *datatypes.Date       `json:"start_date"`
	EndDate     *datatypes.Date       `json:"end_date"`
	Progress    float64               `json:"progress"`
}

type UpdateProjectRequest struct {
	TeamID      *uuid.UUID            `json:"team_id"`
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *models.ProjectStatus `json:"status"`
	Color       *string               `json:"color"`
	StartDate   *datatypes.Date       `json:"start_date"`
	EndDate     *datatypes.Date       `json:"end_date"`
	Progress    *float64              `json:"progress"`
}

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func checkProgress(p float64) error {
	if p < 0 || p > 100 {
		return apperr.Invalid("progress", "must be between 0 and 100")
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	return find[models.Project](ctx, s.db, "list projects", "created_at DESC",
		eq("owner_id", f.OwnerID), eq("team_id", f.TeamID), eq("status", f.Status))
}

func (s *ProjectService) ByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Project, error) {
	return s.List(ctx, ProjectFilter{TeamID: &teamID})
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return first[models.Project](ctx, s.db, "get project", byID(id))
}

func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	status := models.ProjectActive
	if req.Status != nil {
		status = *req.Status
	}
	if err := models.Check("status", status); err != nil {
		return nil, err
	}
	if err := checkProgress(req.Progress); err != nil {
		return nil, err
	}
	color := req.Color
	if color == "" {
		color = defaultProjectColor
	}

	p := models.Project{
		OwnerID:     req.OwnerID,
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Color:       color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    req.Progress,
	}
	if err := create(ctx, s.db, "create project", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*models.Project, error) {
	if err := models.CheckOptional("status", req.Status); err != nil {
		return nil, err
	}
	if req.Progress != nil {
		if err := checkProgress(*req.Progress); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := required("name", *req.Name); err != nil {
			return nil, err
		}
	}

	p, err := mustGet[models.Project](ctx, s.db, "update project", "project", id)
	if err != nil {
		return nil, err
	}
	setOpt(&p.TeamID, req.TeamID)
	set(&p.Name, req.Name)
	setOpt(&p.Description, req.Description)
	set(&p.Status, req.Status)
	set(&p.Color, req.Color)
	setOpt(&p.StartDate, req.StartDate)
	setOpt(&p.EndDate, req.EndDate)
	set(&p.Progress, req.Progress)

	if err := save(ctx, s.db, "update project", p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Project](ctx, s.db, "delete project", id)
}
