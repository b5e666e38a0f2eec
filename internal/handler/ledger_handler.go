package handler

import (
	"go-collector-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

func (h *LedgerHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.service.List()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(entries)
}

func (h *LedgerHandler) CreateEntry(c *fiber.Ctx) error {
	var input service.LedgerEntryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := h.service.Add(&input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Ledger entry added", "id": id})
}

func (h *LedgerHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Ledger entry deleted"})
}
