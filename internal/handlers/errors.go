package handlers

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFromError maps a service error onto an HTTP status via its sentinel.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrDomain):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// respondError writes the structured {status, message} error payload.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": err.Error(),
	})
}

// respondValidationError writes a 400 with one message per failing field.
func respondValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return respondError(c, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrInvalidInput))
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
