package handler

import (
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// bulkUpdateRequest carries equality filters plus the fields to write.
type bulkUpdateRequest struct {
	Filters map[string]interface{} `json:"filters"`
	Updates map[string]interface{} `json:"updates"`
}

func (h *InventoryHandler) GetCards(c *fiber.Ctx) error {
	cards, err := h.service.ListCards()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(cards)
}

func (h *InventoryHandler) CreateCard(c *fiber.Ctx) error {
	var input service.CardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := h.service.AddCard(&input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Card added", "id": id})
}

func (h *InventoryHandler) UpdateCard(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid card ID"})
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateCard(id, patch); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Card updated"})
}

func (h *InventoryHandler) BulkUpdateCards(c *fiber.Ctx) error {
	var req bulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.BulkUpdateCards(req.Filters, req.Updates)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"updated": count})
}

func (h *InventoryHandler) DeleteCard(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid card ID"})
	}

	if err := h.service.DeleteCard(id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Card deleted"})
}

type adjustQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *InventoryHandler) AdjustCardQuantity(c *fiber.Ctx) error {
	return h.adjustQuantity(c, model.InventorySingle, "Invalid card ID")
}

func (h *InventoryHandler) AdjustSealedQuantity(c *fiber.Ctx) error {
	return h.adjustQuantity(c, model.InventorySealed, "Invalid product ID")
}

func (h *InventoryHandler) adjustQuantity(c *fiber.Ctx, invType model.InventoryType, idError string) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": idError})
	}

	var req adjustQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AdjustQuantity(invType, id, req.Delta); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Quantity adjusted"})
}

func (h *InventoryHandler) GetSealedProducts(c *fiber.Ctx) error {
	products, err := h.service.ListSealed()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) CreateSealedProduct(c *fiber.Ctx) error {
	var input service.SealedProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id, err := h.service.AddSealed(&input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sealed product added", "id": id})
}

func (h *InventoryHandler) UpdateSealedProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateSealed(id, patch); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sealed product updated"})
}

func (h *InventoryHandler) BulkUpdateSealedProducts(c *fiber.Ctx) error {
	var req bulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.BulkUpdateSealed(req.Filters, req.Updates)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"updated": count})
}

func (h *InventoryHandler) DeleteSealedProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteSealed(id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sealed product deleted"})
}
