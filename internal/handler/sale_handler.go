package handler

import (
	"go-collector-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.List()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.Get(id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) RecordSale(c *fiber.Ctx) error {
	var input service.SaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := h.service.RecordSale(&input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "id": id})
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted and quantities restored"})
}
