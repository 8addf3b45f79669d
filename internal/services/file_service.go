package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileFilter struct {
	OwnerID     *uuid.UUID
	Category    *string
	NoteID      *uuid.UUID
	RelatedType *models.RelatedType
	RelatedID   *uuid.UUID
}

type UploadFileRequest struct {
	OwnerID      uuid.UUID           `json:"owner_id"`
	Path         string              `json:"path"`
	Name         string              `json:"name"`
	Data         []byte              `json:"-"`
	MimeType     *string             `json:"mime_type"`
	Category     *string             `json:"category"`
	Description  *string             `json:"description"`
	UploaderName *string             `json:"uploader"`
	NoteID       *uuid.UUID          `json:"note_id"`
	RelatedType  *models.RelatedType `json:"related_type"`
	RelatedID    *uuid.UUID          `json:"related_id"`
}

// FileService keeps FileRecord rows in step with the blobs they describe.
type FileService struct {
	db    *gorm.DB
	blobs storage.Blobs
	now   func() time.Time
}

func NewFileService(db *gorm.DB, blobs storage.Blobs) *FileService {
	return &FileService{db: db, blobs: blobs, now: time.Now}
}

func (s *FileService) withURLs(files []models.FileRecord) []models.FileRecord {
	for i := range files {
		files[i].URL = s.blobs.URL(files[i].StoragePath)
	}
	return files
}

func (s *FileService) List(ctx context.Context, f FileFilter) ([]models.FileRecord, error) {
	if err := models.CheckOptional("related_type", f.RelatedType); err != nil {
		return nil, err
	}
	files, err := find[models.FileRecord](ctx, s.db, "list files", "created_at DESC",
		eq("owner_id", f.OwnerID), eq("category", f.Category), eq("note_id", f.NoteID),
		eq("related_type", f.RelatedType), eq("related_id", f.RelatedID))
	if err != nil {
		return nil, err
	}
	return s.withURLs(files), nil
}

func (s *FileService) ByNote(ctx context.Context, noteID uuid.UUID) ([]models.FileRecord, error) {
	return s.List(ctx, FileFilter{NoteID: &noteID})
}

func (s *FileService) ByRelated(ctx context.Context, t models.RelatedType, id uuid.UUID) ([]models.FileRecord, error) {
	return s.List(ctx, FileFilter{RelatedType: &t, RelatedID: &id})
}

func (s *FileService) Get(ctx context.Context, id uuid.UUID) (*models.FileRecord, error) {
	f, err := first[models.FileRecord](ctx, s.db, "get file", byID(id))
	if err != nil || f == nil {
		return f, err
	}
	f.URL = s.blobs.URL(f.StoragePath)
	return f, nil
}

// URL returns the public address of a stored blob.
func (s *FileService) URL(storagePath string) string {
	return s.blobs.URL(storagePath)
}

// Upload stores the blob, then its metadata row. When the row cannot be
// written the blob is removed again.
func (s *FileService) Upload(ctx context.Context, req UploadFileRequest) (*models.FileRecord, error) {
	if err := required("name", req.Name); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	if err := models.CheckOptional("related_type", req.RelatedType); err != nil {
		return nil, err
	}

	mime := http.DetectContentType(req.Data)
	if req.MimeType != nil && *req.MimeType != "" {
		mime = *req.MimeType
	}
	size := int64(len(req.Data))
	key := storage.Key(req.Path, req.Name, s.now())

	if err := s.blobs.Upload(ctx, key, req.Data, mime); err != nil {
		return nil, err
	}

	f := models.FileRecord{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		MimeType:     &mime,
		Size:         &size,
		StoragePath:  key,
		Category:     req.Category,
		Description:  req.Description,
		UploaderName: req.UploaderName,
		NoteID:       req.NoteID,
		RelatedType:  req.RelatedType,
		RelatedID:    req.RelatedID,
	}
	if err := create(ctx, s.db, "create file record", &f); err != nil {
		if rmErr := s.blobs.Remove(context.WithoutCancel(ctx), key); rmErr != nil {
			slog.Error("failed to remove orphaned blob", "key", key, "error", rmErr)
		}
		return nil, err
	}
	f.URL = s.blobs.URL(key)
	return &f, nil
}

// Delete removes the blob and then soft-deletes the row. If the blob cannot
// be removed the row stays. Deleting a missing file is not an error.
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := first[models.FileRecord](ctx, s.db, "delete file", byID(id))
	if err != nil || f == nil {
		return err
	}
	if err := s.blobs.Remove(ctx, f.StoragePath); err != nil {
		return err
	}
	return softDelete[models.FileRecord](ctx, s.db, "delete file", id)
}
