package handlers

import (
	"medbridge/internal/core/services"
	"medbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NGOHandler handles NGO dashboard endpoints
type NGOHandler struct {
	dashboardService *services.DashboardService
}

// NewNGOHandler creates a new NGO handler
func NewNGOHandler(dashboardService *services.DashboardService) *NGOHandler {
	return &NGOHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard handles the NGO aggregate view
// @Summary NGO dashboard
// @Description Counts plus the union of listings where the caller is donor or claimant (NGO only)
// @Tags NGO
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /ngo/dashboard [get]
func (h *NGOHandler) Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	data, err := h.dashboardService.GetNGODashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Server error")
	}

	return response.Success(c, "Dashboard retrieved", data)
}
