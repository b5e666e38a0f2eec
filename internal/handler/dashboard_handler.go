package handler

import (
	"go-collector-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSummary returns the aggregated inventory, sales and ledger statistics.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.FetchSummary()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(summary)
}
