// Package http provides HTTP handlers for category operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	"github.com/allisson/familyvault/internal/category/http/dto"
	"github.com/allisson/familyvault/internal/category/usecase"

	apperrors "github.com/allisson/familyvault/internal/errors"
	"github.com/allisson/familyvault/internal/httputil"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryUseCase usecase.UseCase
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryUseCase usecase.UseCase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
		logger:          logger,
	}
}

// CreateHandler creates a personal category for the authenticated user.
// POST /v1/categories - Returns 201 Created.
func (h *CategoryHandler) CreateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request.Context(), user.ID, req.ToCreateCategoryInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// GetHandler retrieves a category by ID.
// GET /v1/categories/:id - Returns 200 OK.
func (h *CategoryHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid category id"), h.logger)
		return
	}

	category, err := h.categoryUseCase.GetCategory(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// ListHandler retrieves the categories visible to the authenticated user.
// GET /v1/categories - Returns 200 OK.
func (h *CategoryHandler) ListHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	categories, err := h.categoryUseCase.ListCategories(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// UpdateHandler applies a partial update to a category owned by the user.
// PATCH /v1/categories/:id - Returns 200 OK.
func (h *CategoryHandler) UpdateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid category id"), h.logger)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request.Context(), user.ID, id, req.ToUpdateCategoryInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DeleteHandler soft deletes a category owned by the user.
// DELETE /v1/categories/:id - Returns 204 No Content.
func (h *CategoryHandler) DeleteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid category id"), h.logger)
		return
	}

	if err := h.categoryUseCase.DeleteCategory(c.Request.Context(), user.ID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
