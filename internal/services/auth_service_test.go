package services

import (
	"context"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterLoginRefresh(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()

	reg, err := s.Auth.Register(ctx, &dto.RegisterRequest{Email: "anna@example.com", Password: "password123", FullName: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", reg.User.FullName)
	assert.NotEmpty(t, reg.User.Tag)

	token, err := jwt.Parse(reg.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.String(), sub)

	_, err = s.Auth.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Auth.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := s.Auth.Login(ctx, &dto.LoginRequest{Email: "ANNA@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := s.Auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// rotated tokens cannot be reused
	_, err = s.Auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, s.Auth.Logout(ctx, &dto.LogoutRequest{RefreshToken: refreshed.RefreshToken}))
	_, err = s.Auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthRefreshExpired(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()

	reg, err := s.Auth.Register(ctx, &dto.RegisterRequest{Email: "anna@example.com", Password: "password123"})
	require.NoError(t, err)

	s.Auth.now = func() time.Time { return time.Now().Add(200 * time.Hour) }
	_, err = s.Auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthDeleteAccount(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()

	reg, err := s.Auth.Register(ctx, &dto.RegisterRequest{Email: "anna@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Auth.DeleteAccount(ctx, reg.User.ID, "nope-nope"), ErrInvalidCredentials)
	require.NoError(t, s.Auth.DeleteAccount(ctx, reg.User.ID, "password123"))

	u, err := s.Users.Get(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = s.Auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
