package localstore

import (
	"context"
	"net/http"
	"strings"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/google/uuid"
)

// maxSynthesizedSize bounds the size given to files added without a payload.
const maxSynthesizedSize = 5 << 20

func fileID(f *models.FileRecord) uuid.UUID { return f.ID }

func (s *Store) Files(ctx context.Context) ([]models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.files, models.FileRecord.Clone), nil
}

// AddFile records a file. Nothing is uploaded: with a payload the size and
// type are taken from the bytes, without one they are made up.
func (s *Store) AddFile(ctx context.Context, up models.FileUpload) (*models.FileRecord, error) {
	if strings.TrimSpace(up.Name) == "" {
		return nil, apperr.Invalid("name", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()

	var size int64
	var mime string
	if len(up.Data) > 0 {
		size = int64(len(up.Data))
		mime = http.DetectContentType(up.Data)
	} else {
		size = s.rnd.Int64N(maxSynthesizedSize)
		mime = models.SynthesizedMimeTypes[s.rnd.IntN(len(models.SynthesizedMimeTypes))]
	}
	if up.MimeType != nil && *up.MimeType != "" {
		mime = *up.MimeType
	}
	uploader := s.current.FullName
	if up.UploaderName != nil && *up.UploaderName != "" {
		uploader = *up.UploaderName
	}

	f := models.FileRecord{
		ID:           s.newID(),
		OwnerID:      s.current.ID,
		Name:         up.Name,
		MimeType:     &mime,
		Size:         &size,
		StoragePath:  storage.Key(up.Path, up.Name, now),
		Category:     up.Category,
		Description:  up.Description,
		UploaderName: &uploader,
		URL:          "#",
		CreatedAt:    now,
	}
	s.files = prepend(s.files, f.Clone())
	return &f, nil
}

func (s *Store) DeleteFile(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = remove(s.files, id, fileID)
	return nil
}
