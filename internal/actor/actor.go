// Package actor carries the id of the user a request acts for.
package actor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const localsKey = "actor_id"

var ErrNoActor = errors.New("request has no acting user")

func Set(c *fiber.Ctx, id uuid.UUID) {
	c.Locals(localsKey, id)
}

// UserID returns the acting user stored by the auth middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(localsKey).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, ErrNoActor
}

// FromToken extracts the user UUID from the JWT claims in context.
func FromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
