package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	"github.com/allisson/familyvault/internal/vault/http/dto"
	"github.com/allisson/familyvault/internal/vault/usecase"

	apperrors "github.com/allisson/familyvault/internal/errors"
	"github.com/allisson/familyvault/internal/httputil"
)

// FieldHandler handles field-related HTTP requests
type FieldHandler struct {
	fieldUseCase usecase.FieldUseCase
	logger       *slog.Logger
}

// NewFieldHandler creates a new FieldHandler
func NewFieldHandler(fieldUseCase usecase.FieldUseCase, logger *slog.Logger) *FieldHandler {
	return &FieldHandler{
		fieldUseCase: fieldUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves the fields of an item the user can see.
// GET /v1/items/:id/fields - Returns 200 OK.
func (h *FieldHandler) ListHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	fields, err := h.fieldUseCase.ListFields(c.Request.Context(), user.ID, itemID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToFieldListResponse(fields))
}

// CreateHandler adds a field to an item the user can edit.
// POST /v1/items/:id/fields - Returns 201 Created.
func (h *FieldHandler) CreateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	var req dto.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	field, err := h.fieldUseCase.CreateField(c.Request.Context(), user.ID, itemID, req.ToFieldInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFieldResponse(field))
}

// UpdateHandler applies a partial update to a field on an item the user can edit.
// PUT /v1/items/:id/fields/:field_id - Returns 200 OK.
func (h *FieldHandler) UpdateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	fieldID, err := uuid.Parse(c.Param("field_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid field id"), h.logger)
		return
	}

	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	field, err := h.fieldUseCase.UpdateField(c.Request.Context(), user.ID, itemID, fieldID, req.ToUpdateFieldInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToFieldResponse(field))
}

// DeleteHandler soft deletes a field on an item the user can edit.
// DELETE /v1/items/:id/fields/:field_id - Returns 204 No Content.
func (h *FieldHandler) DeleteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	fieldID, err := uuid.Parse(c.Param("field_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid field id"), h.logger)
		return
	}

	if err := h.fieldUseCase.DeleteField(c.Request.Context(), user.ID, itemID, fieldID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
