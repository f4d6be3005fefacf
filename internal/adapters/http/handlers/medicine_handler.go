package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"medbridge/internal/config"
	"medbridge/internal/core/services"
	"medbridge/internal/pkg/response"
	"medbridge/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// MedicineHandler handles medicine listing endpoints
type MedicineHandler struct {
	medicineService *services.MedicineService
	cfg             *config.Config
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(medicineService *services.MedicineService, cfg *config.Config) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
		cfg:             cfg,
	}
}

// Upload handles a new donation listing (multipart form)
// @Summary Upload medicine
// @Description Create a new donation listing at status pending
// @Tags Medicines
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Medicine name"
// @Param expiryDate formData string true "Expiry date (YYYY-MM-DD)"
// @Param quantity formData int true "Quantity"
// @Param photo formData file false "Photo"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /medicines [post]
func (h *MedicineHandler) Upload(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	expiryRaw := c.FormValue("expiryDate")
	if expiryRaw == "" {
		return response.BadRequest(c, "Expiry date is required")
	}
	expiryDate, err := parseDate(expiryRaw)
	if err != nil {
		return response.BadRequest(c, "Invalid expiry date")
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity <= 0 {
		return response.BadRequest(c, "Quantity must be a positive number")
	}

	photoURL := ""
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		photoURL, err = upload.SavePhoto(c, file, h.cfg.Upload.Dir)
		if err != nil {
			if errors.Is(err, upload.ErrNotAnImage) {
				return response.BadRequest(c, "Only images are allowed")
			}
			return response.InternalServerError(c, "Failed to store photo")
		}
	}

	input := &services.UploadInput{
		Name:       name,
		ExpiryDate: expiryDate,
		Quantity:   quantity,
		PhotoURL:   photoURL,
	}

	medicine, err := h.medicineService.Upload(c.Context(), donorID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuantity) {
			return response.BadRequest(c, "Quantity must be a positive number")
		}
		return response.InternalServerError(c, "Failed to upload medicine")
	}

	return response.Created(c, "Medicine uploaded", fiber.Map{
		"medicine": medicine,
	})
}

// List handles listing medicines by status (default approved)
// @Summary List medicines
// @Description List listings by status, defaulting to approved
// @Tags Medicines
// @Produce json
// @Param status query string false "Status filter" default(approved)
// @Success 200 {object} response.Response
// @Router /medicines [get]
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	medicines, err := h.medicineService.List(c.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
		return response.InternalServerError(c, "Failed to fetch medicines")
	}

	return response.Success(c, "Medicines retrieved", fiber.Map{
		"medicines": medicines,
	})
}

// ListMine handles listing the caller's own listings
// @Summary List own medicines
// @Description List all listings owned by the caller regardless of status
// @Tags Medicines
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /medicines/my [get]
func (h *MedicineHandler) ListMine(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)

	medicines, err := h.medicineService.ListMine(c.Context(), donorID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch your medicines")
	}

	return response.Success(c, "Medicines retrieved", fiber.Map{
		"medicines": medicines,
	})
}

// Approve handles admin approval of a pending listing
// @Summary Approve medicine
// @Description Move a pending listing to approved (admin only)
// @Tags Medicines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /medicines/{id}/approve [put]
func (h *MedicineHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	medicine, err := h.medicineService.Approve(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotPending) {
			return response.NotFound(c, "Medicine not found or not pending")
		}
		return response.InternalServerError(c, "Failed to approve medicine")
	}

	return response.Success(c, "Medicine approved", fiber.Map{
		"medicine": medicine,
	})
}

// Reject handles admin rejection of a pending listing
// @Summary Reject medicine
// @Description Move a pending listing to rejected (admin only)
// @Tags Medicines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /medicines/{id}/reject [put]
func (h *MedicineHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	medicine, err := h.medicineService.Reject(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotPending) {
			return response.NotFound(c, "Medicine not found or not pending")
		}
		return response.InternalServerError(c, "Failed to reject medicine")
	}

	return response.Success(c, "Medicine rejected", fiber.Map{
		"medicine": medicine,
	})
}

// Claim handles an NGO claiming an approved listing
// @Summary Claim medicine
// @Description Reserve an approved listing for the caller (NGO only)
// @Tags Medicines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /medicines/claim/{id} [post]
func (h *MedicineHandler) Claim(c *fiber.Ctx) error {
	claimantID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	if err := h.medicineService.Claim(c.Context(), uint(id), claimantID); err != nil {
		if errors.Is(err, services.ErrNotClaimable) {
			return response.NotFound(c, "Medicine not available for claim")
		}
		return response.InternalServerError(c, "Failed to claim medicine")
	}

	return response.Success(c, "Medicine claimed successfully", nil)
}

// parseDate accepts a bare date or a full RFC 3339 timestamp
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
