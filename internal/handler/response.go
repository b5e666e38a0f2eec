package handler

import (
	"errors"

	"go-collector-ledger/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInsufficientInventory),
		errors.Is(err, apperr.ErrInsufficientSupply),
		errors.Is(err, apperr.ErrCorruption):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func writeErr(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
