package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrTagsExhausted = errors.New("could not allocate a free friend tag")
)

const tagAttempts = 20

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type UpdateProfileRequest struct {
	FullName  *string          `json:"full_name"`
	AvatarURL *string          `json:"avatar_url"`
	Theme     *models.Theme    `json:"theme"`
	Language  *string          `json:"language"`
	Timezone  *string          `json:"timezone"`
	Presence  *models.Presence `json:"status"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return find[models.User](ctx, s.db, "list users", "full_name ASC")
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return first[models.User](ctx, s.db, "get user", byID(id))
}

// GetProfile is Get under the name the profile screens use.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.Get(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, s.db, "get user by email", eq("email", &email))
}

func (s *UserService) GetByTag(ctx context.Context, tag string) (*models.User, error) {
	return first[models.User](ctx, s.db, "get user by tag", eq("tag", &tag))
}

// Search matches q against full name and email.
func (s *UserService) Search(ctx context.Context, q string) ([]models.User, error) {
	return find[models.User](ctx, s.db, "search users", "full_name ASC", matching(q, "full_name", "email"))
}

// Create registers an account with the default profile settings and a
// freshly allocated friend tag.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if err := required("email", email); err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, apperr.Invalid("email", "must be an email address")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Invalid("password", "must be at least 8 characters")
	}

	// Deleted accounts keep their unique email and tag.
	existing, err := first[models.User](ctx, s.db.Unscoped(), "create user", eq("email", &email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tag, err := s.freeTag(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.FullName)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		FullName: name,
		Theme:    models.ThemeLight,
		Language: "en",
		Timezone: "UTC",
		Tag:      tag,
		Presence: models.Offline,
	}
	if err := create(ctx, s.db, "create user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) freeTag(ctx context.Context) (string, error) {
	for i := 0; i < tagAttempts; i++ {
		tag := fmt.Sprintf("#%04d", rand.IntN(10000))
		u, err := first[models.User](ctx, s.db.Unscoped(), "allocate tag", eq("tag", &tag))
		if err != nil {
			return "", err
		}
		if u == nil {
			return tag, nil
		}
	}
	return "", ErrTagsExhausted
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	if err := models.CheckOptional("theme", req.Theme); err != nil {
		return nil, err
	}
	if err := models.CheckOptional("status", req.Presence); err != nil {
		return nil, err
	}
	if req.FullName != nil {
		if err := required("full_name", *req.FullName); err != nil {
			return nil, err
		}
	}

	user, err := mustGet[models.User](ctx, s.db, "update user", "user", id)
	if err != nil {
		return nil, err
	}
	set(&user.FullName, req.FullName)
	setOpt(&user.AvatarURL, req.AvatarURL)
	set(&user.Theme, req.Theme)
	set(&user.Language, req.Language)
	set(&user.Timezone, req.Timezone)
	set(&user.Presence, req.Presence)

	if err := save(ctx, s.db, "update user", user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.User](ctx, s.db, "delete user", id)
}
