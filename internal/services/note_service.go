package services

import (
	"context"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteFilter struct {
	OwnerID    *uuid.UUID
	Category   *string
	IsFavorite *bool
}

type CreateNoteRequest struct {
	OwnerID    uuid.UUID `json:"owner_id"`
	Title      *string   `json:"title"`
	Content    string    `json:"content"`
	Category   *string   `json:"category"`
	IsFavorite bool      `json:"is_favorite"`
}

type UpdateNoteRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Category   *string `json:"category"`
	IsFavorite *bool   `json:"is_favorite"`
}

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) List(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	return find[models.Note](ctx, s.db, "list notes", "updated_at DESC",
		eq("owner_id", f.OwnerID), eq("category", f.Category), eq("is_favorite", f.IsFavorite))
}

func (s *NoteService) ByCategory(ctx context.Context, category string) ([]models.Note, error) {
	return s.List(ctx, NoteFilter{Category: &category})
}

func (s *NoteService) Favorites(ctx context.Context) ([]models.Note, error) {
	yes := true
	return s.List(ctx, NoteFilter{IsFavorite: &yes})
}

// Search matches q against title and content.
func (s *NoteService) Search(ctx context.Context, q string) ([]models.Note, error) {
	return find[models.Note](ctx, s.db, "search notes", "updated_at DESC", matching(q, "title", "content"))
}

func (s *NoteService) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	return first[models.Note](ctx, s.db, "get note", byID(id))
}

func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*models.Note, error) {
	if err := required("content", req.Content); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	n := models.Note{
		OwnerID:    req.OwnerID,
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		IsFavorite: req.IsFavorite,
	}
	if err := create(ctx, s.db, "create note", &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NoteService) Update(ctx context.Context, id uuid.UUID, req UpdateNoteRequest) (*models.Note, error) {
	n, err := mustGet[models.Note](ctx, s.db, "update note", "note", id)
	if err != nil {
		return nil, err
	}
	setOpt(&n.Title, req.Title)
	set(&n.Content, req.Content)
	setOpt(&n.Category, req.Category)
	set(&n.IsFavorite, req.IsFavorite)

	if err := save(ctx, s.db, "update note", n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Note](ctx, s.db, "delete note", id)
}
