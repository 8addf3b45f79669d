package handlers

import (
	"errors"
	"log/slog"

	"github.com/Valentin6743/LS/internal/actor"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/dto"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Status maps an error to its HTTP status code.
func Status(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, actor.ErrNoActor):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRelationshipExists):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrStorage):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the fiber error handler. Details are only exposed for
// client errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := Status(err)
	message := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		message = fe.Message
	}

	switch {
	case code == fiber.StatusBadGateway:
		slog.Error("storage failure", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Storage unavailable"
	case code >= 500:
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func respondError(c *fiber.Ctx, err error) error {
	return ErrorHandler(c, err)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid(name, "must be a UUID")
	}
	return id, nil
}
