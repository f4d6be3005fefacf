package handlers

import (
	"errors"
	"strconv"

	"medbridge/internal/core/services"
	"medbridge/internal/pkg/pagination"
	"medbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	userService      *services.UserService
	medicineService  *services.MedicineService
	auditService     *services.AuditService
	dashboardService *services.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	medicineService *services.MedicineService,
	auditService *services.AuditService,
	dashboardService *services.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		medicineService:  medicineService,
		auditService:     auditService,
		dashboardService: dashboardService,
	}
}

// ListUsers handles listing users with role filter and sort
// @Summary List users
// @Description List users, optionally filtered by role (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param sort query string false "Sort key (name, -name, created_at)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.ListUsers(c.Context(),
		c.Query("role"), c.Query("sort"), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return response.BadRequest(c, "Invalid role filter")
		}
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Success(c, "Users retrieved", pagination.NewResponse(users, params, total))
}

// UpdateUserRequest represents admin user patch body
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Verified  *bool   `json:"verified"`
	IsBlocked *bool   `json:"isBlocked"`
}

// UpdateUser handles patching user fields with audit trail
// @Summary Update user
// @Description Patch user fields; changed fields are audit logged (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.AdminUpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Verified:  req.Verified,
		IsBlocked: req.IsBlocked,
	}

	user, err := h.userService.UpdateUser(c.Context(), uint(id), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already in use")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "Cannot change your own role")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated", fiber.Map{
		"user": user,
	})
}

// BlockUserRequest represents block/unblock body
type BlockUserRequest struct {
	IsBlocked *bool `json:"isBlocked"`
}

// BlockUser handles blocking or unblocking a user
// @Summary Block or unblock user
// @Description Set the user's block flag; a no-op request fails (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body BlockUserRequest true "Target block state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/block [patch]
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.IsBlocked == nil {
		return response.BadRequest(c, "isBlocked boolean is required")
	}

	user, err := h.userService.SetBlocked(c.Context(), uint(id), adminID, *req.IsBlocked)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrBlockUnchanged):
			if *req.IsBlocked {
				return response.BadRequest(c, "User already blocked")
			}
			return response.BadRequest(c, "User already unblocked")
		default:
			return response.InternalServerError(c, "Failed to update user block status")
		}
	}

	message := "User unblocked successfully"
	if *req.IsBlocked {
		message = "User blocked successfully"
	}

	return response.Success(c, message, fiber.Map{
		"user": user,
	})
}

// ListMedicines handles listing all medicines with donor/claimant info
// @Summary List all medicines
// @Description List every listing with donor and claimant summaries (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/medicines [get]
func (h *AdminHandler) ListMedicines(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	medicines, total, err := h.medicineService.AdminList(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch medicines")
	}

	return response.Success(c, "Medicines retrieved", pagination.NewResponse(medicines, params, total))
}

// UpdateMedicineRequest represents admin medicine patch body
type UpdateMedicineRequest struct {
	Name       *string `json:"name"`
	ExpiryDate *string `json:"expiryDate"`
	Quantity   *int    `json:"quantity"`
	Status     *string `json:"status"`
	Verified   *bool   `json:"verified"`
	IsBlocked  *bool   `json:"isBlocked"`
}

// UpdateMedicine handles patching medicine fields with audit trail
// @Summary Update medicine
// @Description Patch listing fields; changed fields are audit logged (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medicine ID"
// @Param body body UpdateMedicineRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/medicines/{id} [put]
func (h *AdminHandler) UpdateMedicine(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid medicine ID")
	}

	var req UpdateMedicineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.AdminUpdateInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Status:    req.Status,
		Verified:  req.Verified,
		IsBlocked: req.IsBlocked,
	}

	if req.ExpiryDate != nil {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return response.BadRequest(c, "Invalid expiry date")
		}
		input.ExpiryDate = &expiry
	}

	medicine, err := h.medicineService.AdminUpdate(c.Context(), uint(id), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMedicineNotFound):
			return response.NotFound(c, "Medicine not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be a positive number")
		default:
			return response.InternalServerError(c, "Failed to update medicine")
		}
	}

	return response.Success(c, "Medicine updated", fiber.Map{
		"medicine": medicine,
	})
}

// ListLogs handles reading the audit trail
// @Summary List audit entries
// @Description List action log entries newest first (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /admin/logs [get]
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.auditService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch audit log")
	}

	return response.Success(c, "Audit log retrieved", pagination.NewResponse(entries, params, total))
}

// Dashboard handles the admin aggregate view
// @Summary Admin dashboard
// @Description System-wide counts and recent listings (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved", data)
}
