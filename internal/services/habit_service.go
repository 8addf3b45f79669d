package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultHabitColor = "#10b981"

type HabitFilter struct {
	OwnerID   *uuid.UUID
	Category  *string
	Frequency *models.Frequency
	IsActive  *bool
}

type CreateHabitRequest struct {
	OwnerID     uuid.UUID        `json:"owner_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Category    string           `json:"category"`
	Frequency   models.Frequency `json:"frequency"`
	Color       string           `json:"color"`
	GoalValue   *float64         `json:"goal_value"`
	GoalUnit    *string          `json:"goal_unit"`
	StartDate   *datatypes.Date  `json:"start_date"`
	EndDate     *datatypes.Date  `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
}

type UpdateHabitRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	Frequency   *models.Frequency `json:"frequency"`
	Color       *string           `json:"color"`
	GoalValue   *float64          `json:"goal_value"`
	GoalUnit    *string           `json:"goal_unit"`
	StartDate   *datatypes.Date   `json:"start_date"`
	EndDate     *datatypes.Date   `json:"end_date"`
	IsActive    *bool             `json:"is_active"`
}

type HabitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{db: db}
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *HabitService) List(ctx context.Context, f HabitFilter) ([]models.Habit, error) {
	return find[models.Habit](ctx, s.db, "list habits", "created_at DESC",
		eq("owner_id", f.OwnerID), eq("category", f.Category), eq("frequency", f.Frequency), eq("is_active", f.IsActive))
}

func (s *HabitService) Get(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	return first[models.Habit](ctx, s.db, "get habit", byID(id))
}

func (s *HabitService) Create(ctx context.Context, req CreateHabitRequest) (*models.Habit, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}
	if err := required("category", req.Category); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	if err := models.Check("frequency", req.Frequency); err != nil {
		return nil, err
	}

	start := Day(time.Now())
	if req.StartDate != nil {
		start = Day(time.Time(*req.StartDate))
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	color := req.Color
	if color == "" {
		color = defaultHabitColor
	}

	h := models.Habit{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Frequency:   req.Frequency,
		Color:       color,
		GoalValue:   req.GoalValue,
		GoalUnit:    req.GoalUnit,
		StartDate:   start,
		EndDate:     req.EndDate,
		IsActive:    active,
	}
	if err := create(ctx, s.db, "create habit", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HabitService) Update(ctx context.Context, id uuid.UUID, req UpdateHabitRequest) (*models.Habit, error) {
	if err := models.CheckOptional("frequency", req.Frequency); err != nil {
		return nil, err
	}
	h, err := mustGet[models.Habit](ctx, s.db, "update habit", "habit", id)
	if err != nil {
		return nil, err
	}
	set(&h.Name, req.Name)
	setOpt(&h.Description, req.Description)
	set(&h.Category, req.Category)
	set(&h.Frequency, req.Frequency)
	set(&h.Color, req.Color)
	setOpt(&h.GoalValue, req.GoalValue)
	setOpt(&h.GoalUnit, req.GoalUnit)
	set(&h.StartDate, req.StartDate)
	setOpt(&h.EndDate, req.EndDate)
	set(&h.IsActive, req.IsActive)

	if err := save(ctx, s.db, "update habit", h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HabitService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Habit](ctx, s.db, "delete habit", id)
}

// Log records the value for a habit on a day. A second call for the same
// day replaces value and notes. A nil value logs 1.
func (s *HabitService) Log(ctx context.Context, habitID uuid.UUID, day time.Time, value *float64, notes *string) (*models.HabitLog, error) {
	v := 1.0
	if value != nil {
		v = *value
	}
	entry := models.HabitLog{
		HabitID: habitID,
		LogDate: Day(day),
		Value:   v,
		Notes:   notes,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "notes"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, apperr.Store("log habit", err)
	}

	// The insert may have hit the existing row, so the id above is not
	// necessarily the stored one.
	return s.LogByDate(ctx, habitID, day)
}

// Logs returns the habit's entries inside the optional window, newest first.
func (s *HabitService) Logs(ctx context.Context, habitID uuid.UUID, from, to *time.Time) ([]models.HabitLog, error) {
	var window Range
	if from != nil {
		d := time.Time(Day(*from))
		window.From = &d
	}
	if to != nil {
		d := time.Time(Day(*to))
		window.To = &d
	}
	return find[models.HabitLog](ctx, s.db, "list habit logs", "log_date DESC",
		eq("habit_id", &habitID), window.on("log_date"))
}

func (s *HabitService) LogByDate(ctx context.Context, habitID uuid.UUID, day time.Time) (*models.HabitLog, error) {
	d := Day(day)
	return first[models.HabitLog](ctx, s.db, "get habit log", eq("habit_id", &habitID), eq("log_date", &d))
}
