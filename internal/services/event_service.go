package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventFilter struct {
	OwnerID    *uuid.UUID
	TeamID     *uuid.UUID
	SourceType *models.SourceType
	SourceID   *uuid.UUID
	Category   *string
	Visibility *models.Visibility
	Start      Range
}

type CreateEventRequest struct {
	OwnerID        uuid.UUID          `json:"owner_id"`
	TeamID         *uuid.UUID         `json:"team_id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description"`
	SourceType     *models.SourceType `json:"source_type"`
	SourceID       *uuid.UUID         `json:"source_id"`
	Category       *string            `json:"category"`
	Color          string             `json:"color"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        *time.Time         `json:"end_time"`
	AllDay         bool               `json:"all_day"`
	IsRecurring    bool               `json:"is_recurring"`
	RecurrenceRule *string            `json:"recurrence_rule"`
	Location       *string            `json:"location"`
	Visibility     *models.Visibility `json:"visibility"`
	Participants   []string           `json:"participants"`
}

type UpdateEventRequest struct {
	TeamID         *uuid.UUID         `json:"team_id"`
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Category       *string            `json:"category"`
	Color          *string            `json:"color"`
	StartTime      *time.Time         `json:"start_time"`
	EndTime        *time.Time         `json:"end_time"`
	AllDay         *bool              `json:"all_day"`
	IsRecurring    *bool              `json:"is_recurring"`
	RecurrenceRule *string            `json:"recurrence_rule"`
	Location       *string            `json:"location"`
	Visibility     *models.Visibility `json:"visibility"`
	Participants   *[]string          `json:"participants"`
}

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func checkSpan(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperr.Invalid("end_time", "must not be before start_time")
	}
	return nil
}

func (s *EventService) List(ctx context.Context, f EventFilter) ([]models.CalendarEvent, error) {
	if err := models.CheckOptional("source_type", f.SourceType); err != nil {
		return nil, err
	}
	if err := models.CheckOptional("visibility", f.Visibility); err != nil {
		return nil, err
	}
	return find[models.CalendarEvent](ctx, s.db, "list events", "start_time ASC",
		eq("owner_id", f.OwnerID), eq("team_id", f.TeamID),
		eq("source_type", f.SourceType), eq("source_id", f.SourceID),
		eq("category", f.Category), eq("visibility", f.Visibility),
		f.Start.on("start_time"))
}

// BySource lists the events that were created from one entity.
func (s *EventService) BySource(ctx context.Context, t models.SourceType, id uuid.UUID) ([]models.CalendarEvent, error) {
	return s.List(ctx, EventFilter{SourceType: &t, SourceID: &id})
}

func (s *EventService) ByTeam(ctx context.Context, teamID uuid.UUID) ([]models.CalendarEvent, error) {
	return s.List(ctx, EventFilter{TeamID: &teamID})
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.CalendarEvent, error) {
	return first[models.CalendarEvent](ctx, s.db, "get event", byID(id))
}

func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.CalendarEvent, error) {
	if err := required("title", req.Title); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	if req.StartTime.IsZero() {
		return nil, apperr.Invalid("start_time", "is required")
	}
	source := models.SourceEvent
	if req.SourceType != nil {
		source = *req.SourceType
	}
	if err := models.Check("source_type", source); err != nil {
		return nil, err
	}
	visibility := models.VisibilityPrivate
	if req.Visibility != nil {
		visibility = *req.Visibility
	}
	if err := models.Check("visibility", visibility); err != nil {
		return nil, err
	}
	if err := checkSpan(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	color := req.Color
	if color == "" {
		color = models.EventColors[0]
	}

	e := models.CalendarEvent{
		OwnerID:        req.OwnerID,
		TeamID:         req.TeamID,
		Title:          req.Title,
		Description:    req.Description,
		SourceType:     source,
		SourceID:       req.SourceID,
		Category:       req.Category,
		Color:          color,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime,
		AllDay:         req.AllDay,
		IsRecurring:    req.IsRecurring,
		RecurrenceRule: req.RecurrenceRule,
		Location:       req.Location,
		Visibility:     visibility,
		Participants:   dedupe(req.Participants),
	}
	if err := create(ctx, s.db, "create event", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*models.CalendarEvent, error) {
	if err := models.CheckOptional("visibility", req.Visibility); err != nil {
		return nil, err
	}
	e, err := mustGet[models.CalendarEvent](ctx, s.db, "update event", "event", id)
	if err != nil {
		return nil, err
	}
	setOpt(&e.TeamID, req.TeamID)
	set(&e.Title, req.Title)
	setOpt(&e.Description, req.Description)
	setOpt(&e.Category, req.Category)
	set(&e.Color, req.Color)
	if req.StartTime != nil {
		e.StartTime = req.StartTime.UTC()
	}
	setOpt(&e.EndTime, req.EndTime)
	set(&e.AllDay, req.AllDay)
	set(&e.IsRecurring, req.IsRecurring)
	setOpt(&e.RecurrenceRule, req.RecurrenceRule)
	setOpt(&e.Location, req.Location)
	set(&e.Visibility, req.Visibility)
	if req.Participants != nil {
		e.Participants = dedupe(*req.Participants)
	}
	if err := checkSpan(e.StartTime, e.EndTime); err != nil {
		return nil, err
	}

	if err := save(ctx, s.db, "update event", e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.CalendarEvent](ctx, s.db, "delete event", id)
}
