package services

import (
	"context"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemoryFilter struct {
	OwnerID *uuid.UUID
	Mood    *models.Mood
	Date    Range
}

type CreateMemoryRequest struct {
	OwnerID uuid.UUID    `json:"owner_id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Date    *time.Time   `json:"date"`
	Mood    *models.Mood `json:"mood"`
	Tags    []string     `json:"tags"`
	Photos  []string     `json:"photos"`
}

type UpdateMemoryRequest struct {
	Title   *string      `json:"title"`
	Content *string      `json:"content"`
	Date    *time.Time   `json:"date"`
	Mood    *models.Mood `json:"mood"`
	Tags    *[]string    `json:"tags"`
	Photos  *[]string    `json:"photos"`
}

type MemoryService struct {
	db *gorm.DB
}

func NewMemoryService(db *gorm.DB) *MemoryService {
	return &MemoryService{db: db}
}

func (s *MemoryService) List(ctx context.Context, f MemoryFilter) ([]models.Memory, error) {
	if err := models.CheckOptional("mood", f.Mood); err != nil {
		return nil, err
	}
	return find[models.Memory](ctx, s.db, "list memories", "memory_date DESC",
		eq("owner_id", f.OwnerID), eq("mood", f.Mood), f.Date.on("memory_date"))
}

func (s *MemoryService) ByMood(ctx context.Context, mood models.Mood) ([]models.Memory, error) {
	return s.List(ctx, MemoryFilter{Mood: &mood})
}

// Search matches q against title and content.
func (s *MemoryService) Search(ctx context.Context, q string) ([]models.Memory, error) {
	return find[models.Memory](ctx, s.db, "search memories", "memory_date DESC", matching(q, "title", "content"))
}

func (s *MemoryService) Get(ctx context.Context, id uuid.UUID) (*models.Memory, error) {
	return first[models.Memory](ctx, s.db, "get memory", byID(id))
}

func (s *MemoryService) Create(ctx context.Context, req CreateMemoryRequest) (*models.Memory, error) {
	if err := required("title", req.Title); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	if err := models.CheckOptional("mood", req.Mood); err != nil {
		return nil, err
	}
	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	m := models.Memory{
		OwnerID: req.OwnerID,
		Title:   req.Title,
		Content: req.Content,
		Date:    date,
		Mood:    req.Mood,
		Tags:    dedupe(req.Tags),
		Photos:  append([]string{}, req.Photos...),
	}
	if err := create(ctx, s.db, "create memory", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MemoryService) Update(ctx context.Context, id uuid.UUID, req UpdateMemoryRequest) (*models.Memory, error) {
	if err := models.CheckOptional("mood", req.Mood); err != nil {
		return nil, err
	}
	m, err := mustGet[models.Memory](ctx, s.db, "update memory", "memory", id)
	if err != nil {
		return nil, err
	}
	set(&m.Title, req.Title)
	set(&m.Content, req.Content)
	if req.Date != nil {
		m.Date = req.Date.UTC()
	}
	setOpt(&m.Mood, req.Mood)
	if req.Tags != nil {
		m.Tags = dedupe(*req.Tags)
	}
	if req.Photos != nil {
		m.Photos = append([]string{}, *req.Photos...)
	}

	if err := save(ctx, s.db, "update memory", m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Memory](ctx, s.db, "delete memory", id)
}
