package handler

import (
	"errors"

	"go-caixa-pos/internal/repository"
	"go-caixa-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// fail maps service errors to a status code and the usual error body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidMovementKind),
		errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotLoggedIn):
		status = fiber.StatusUnauthorized
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrCashierClosed),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientStock):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
