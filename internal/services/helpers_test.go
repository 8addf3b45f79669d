package services

import (
	"context"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/database"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Defaults()
	cfg.SQLiteDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func newTestSet(t *testing.T) (*Set, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := config.Defaults()
	cfg.JWTSecret = "test-secret"
	return New(db, cfg, storage.NewMemory("http://files.test")), db
}

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustUser(t *testing.T, s *Set, email, name string) *models.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), CreateUserRequest{Email: email, Password: "password123", FullName: name})
	require.NoError(t, err)
	return u
}
