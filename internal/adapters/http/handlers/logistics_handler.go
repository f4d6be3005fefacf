package handlers

import (
	"errors"
	"strconv"

	"medbridge/internal/core/services"
	"medbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LogisticsHandler handles pickup/delivery endpoints
type LogisticsHandler struct {
	logisticsService *services.LogisticsService
}

// NewLogisticsHandler creates a new logistics handler
func NewLogisticsHandler(logisticsService *services.LogisticsService) *LogisticsHandler {
	return &LogisticsHandler{
		logisticsService: logisticsService,
	}
}

// Pickup handles a volunteer claiming a medicine for pickup
// @Summary Claim pickup
// @Description Assign a claimed medicine to the calling volunteer
// @Tags Logistics
// @Produce json
// @Security BearerAuth
// @Param medicineId path int true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /logistics/pickup/{medicineId} [post]
func (h *LogisticsHandler) Pickup(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	medicineID, err := strconv.ParseUint(c.Params("medicineId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	entry, err := h.logisticsService.ClaimPickup(c.Context(), uint(medicineID), volunteerID)
	if err != nil {
		if errors.Is(err, services.ErrNotReadyForPickup) {
			return response.NotFound(c, "Medicine not ready for pickup")
		}
		return response.InternalServerError(c, "Failed to assign pickup")
	}

	return response.Success(c, "Pickup assigned!", fiber.Map{
		"logistics": entry,
	})
}

// Deliver handles a volunteer marking their assignment delivered
// @Summary Mark delivered
// @Description Complete the caller's assignment for the medicine
// @Tags Logistics
// @Produce json
// @Security BearerAuth
// @Param medicineId path int true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /logistics/deliver/{medicineId} [post]
func (h *LogisticsHandler) Deliver(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	medicineID, err := strconv.ParseUint(c.Params("medicineId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	entry, err := h.logisticsService.MarkDelivered(c.Context(), uint(medicineID), volunteerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Not found")
		case errors.Is(err, services.ErrNotPickedUp):
			return response.NotFound(c, "Medicine not picked up")
		default:
			return response.InternalServerError(c, "Failed to mark delivered")
		}
	}

	return response.Success(c, "Marked as delivered!", fiber.Map{
		"logistics": entry,
	})
}

// ListMine handles listing the volunteer's own assignments
// @Summary List own assignments
// @Description List the caller's logistics entries with medicines expanded
// @Tags Logistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /logistics/my [get]
func (h *LogisticsHandler) ListMine(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	entries, err := h.logisticsService.ListMine(c.Context(), volunteerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch assignments")
	}

	return response.Success(c, "Assignments retrieved", fiber.Map{
		"entries": entries,
	})
}
