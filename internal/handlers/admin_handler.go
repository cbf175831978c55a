package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "investrack/internal/errors"
	"investrack/internal/models"
	"investrack/internal/pagination"
	"investrack/internal/services"
)

// AdminHandler handles administrative endpoints.
type AdminHandler struct {
	adminService services.AdminServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService, auditService: auditService}
}

// listUsersQuery holds the user listing filters.
type listUsersQuery struct {
	pagination.PageRequest
	Role   models.Role `form:"role" binding:"omitempty,user_role"`
	Status string      `form:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateUserRequest represents the request payload for moderating a user.
type UpdateUserRequest struct {
	IsActive *bool        `json:"is_active"`
	Role     *models.Role `json:"role" binding:"omitempty,user_role"`
}

// auditLogQuery holds the audit log listing filters.
type auditLogQuery struct {
	pagination.PageRequest
	UserID string `form:"user_id"`
	Action string `form:"action"`
}

// GetStats returns system-wide user and investment statistics.
// @Summary     Get system statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SystemStats "System statistics"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetSystemStats()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// GetUsers lists users with optional role and status filters.
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       role query string false "Filter by role"
// @Param       status query string false "Filter by status (active or inactive)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.User] "Users"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.UserFilter{}
	if query.Role != "" {
		filter.Role = &query.Role
	}
	if query.Status != "" {
		active := query.Status == "active"
		filter.IsActive = &active
	}

	users, err := h.adminService.GetUsers(filter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// UpdateUser updates a user's active flag or role.
// @Summary     Update a user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.IsActive == nil && req.Role == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "no fields to update"))
		return
	}

	user, err := h.adminService.UpdateUser(userID, req.IsActive, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]any{}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		changes["role"] = *req.Role
	}
	h.auditService.Log(adminID, "user.update", "user", user.ID, c.ClientIP(), changes)

	respondData(c, http.StatusOK, UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
	})
}

// GetAuditLogs lists audit log entries, newest first.
// @Summary     List audit logs
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       user_id query string false "Filter by acting user"
// @Param       action query string false "Filter by action"
// @Param       start query string false "Created-at range start"
// @Param       end query string false "Created-at range end"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Audit logs"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/audit-logs [get]
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	var query auditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AuditLogFilter{}
	if query.UserID != "" {
		filter.UserID = &query.UserID
	}
	if query.Action != "" {
		filter.Action = &query.Action
	}
	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.Start = start
	filter.End = end

	logs, err := h.adminService.GetAuditLogs(filter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, logs)
}
