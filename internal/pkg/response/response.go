package response

import (
	"lavajato-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a 200 OK response with the given payload.
func JSON(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Created sends a 201 Created response with the given payload.
func Created(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// Unauthorized sends 401 with the standard error format.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// Forbidden sends 403 with the standard error format.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusForbidden)
}

// FromError maps a service error to its status using the apperr taxonomy.
// Unclassified errors surface their message with a 500.
func FromError(c *fiber.Ctx, err error) error {
	return Error(c, err.Error(), apperr.StatusCode(err))
}
