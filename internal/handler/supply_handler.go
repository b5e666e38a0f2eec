package handler

import (
	"go-collector-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplyHandler struct {
	service service.SupplyService
}

func NewSupplyHandler(s service.SupplyService) *SupplyHandler {
	return &SupplyHandler{service: s}
}

func (h *SupplyHandler) GetBatches(c *fiber.Ctx) error {
	batches, err := h.service.List()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(batches)
}

func (h *SupplyHandler) CreateBatch(c *fiber.Ctx) error {
	var input service.SupplyBatchInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := h.service.Add(&input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supply batch added", "id": id})
}

func (h *SupplyHandler) UpdateBatch(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Update(id, patch); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supply batch updated"})
}

type supplyQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *SupplyHandler) ConsumeBatch(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	var req supplyQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cost, err := h.service.Consume(id, req.Quantity)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplies consumed", "total_cost": cost})
}

func (h *SupplyHandler) RestockBatch(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	var req supplyQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Restock(id, req.Quantity); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplies restocked"})
}

func (h *SupplyHandler) DeleteBatch(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supply batch deleted"})
}
