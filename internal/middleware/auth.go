package middleware

import (
	"github.com/Valentin6743/LS/internal/actor"
	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/dto"
	"github.com/Valentin6743/LS/internal/models"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}

// JWTProtected rejects requests without a valid access token and records the
// token's subject as the acting user.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			id, err := actor.FromToken(c)
			if err != nil {
				return unauthorized(c)
			}
			actor.Set(c, id)
			return c.Next()
		},
	})
}

// ActAs makes every request act for the user current returns. It serves the
// single session of the local backend.
func ActAs(current func() models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor.Set(c, current().ID)
		return c.Next()
	}
}
