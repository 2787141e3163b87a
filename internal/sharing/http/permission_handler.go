// Package http provides HTTP handlers for sharing operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	"github.com/allisson/familyvault/internal/sharing/domain"
	"github.com/allisson/familyvault/internal/sharing/http/dto"
	"github.com/allisson/familyvault/internal/sharing/usecase"

	apperrors "github.com/allisson/familyvault/internal/errors"
	"github.com/allisson/familyvault/internal/httputil"
)

// PermissionHandler handles sharing-related HTTP requests
type PermissionHandler struct {
	permissionUseCase usecase.PermissionUseCase
	logger            *slog.Logger
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionUseCase usecase.PermissionUseCase, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{
		permissionUseCase: permissionUseCase,
		logger:            logger,
	}
}

// GrantHandler shares an item the user owns with another user.
// POST /v1/permissions - Returns 201 Created.
func (h *PermissionHandler) GrantHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input, err := req.ToGrantPermissionInput()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	permission, err := h.permissionUseCase.Grant(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPermissionResponse(permission))
}

// ListForItemHandler retrieves the grants on an item the user owns.
// GET /v1/permissions/item/:item_id - Returns 200 OK.
func (h *PermissionHandler) ListForItemHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	entries, err := h.permissionUseCase.ListForItem(c.Request.Context(), user.ID, itemID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionListResponse(entries))
}

// UpdateHandler changes the access level of a grant on an item the user owns.
// PUT /v1/permissions/:id - Returns 200 OK.
func (h *PermissionHandler) UpdateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid permission id"), h.logger)
		return
	}

	var req dto.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permission, err := h.permissionUseCase.UpdateLevel(c.Request.Context(), user.ID, id, domain.AccessLevel(req.Level))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPermissionResponse(permission))
}

// RevokeHandler removes a grant as the item owner or the grantee.
// DELETE /v1/permissions/:id - Returns 204 No Content.
func (h *PermissionHandler) RevokeHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid permission id"), h.logger)
		return
	}

	if err := h.permissionUseCase.Revoke(c.Request.Context(), user.ID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
