// Package http provides HTTP handlers for vault item and field operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	"github.com/allisson/familyvault/internal/vault/domain"
	"github.com/allisson/familyvault/internal/vault/http/dto"
	"github.com/allisson/familyvault/internal/vault/usecase"

	apperrors "github.com/allisson/familyvault/internal/errors"
	"github.com/allisson/familyvault/internal/httputil"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	itemUseCase usecase.ItemUseCase
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemUseCase usecase.ItemUseCase, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
		logger:      logger,
	}
}

// CreateHandler creates an item with its initial fields.
// POST /v1/items - Returns 201 Created.
func (h *ItemHandler) CreateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input, err := req.ToCreateItemInput()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	details, err := h.itemUseCase.CreateItem(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToItemDetailResponse(details))
}

// GetHandler retrieves the complete projection of an item the user can see.
// GET /v1/items/:id - Returns 200 OK.
func (h *ItemHandler) GetHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	details, err := h.itemUseCase.GetItem(c.Request.Context(), user.ID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDetailResponse(details))
}

// ListHandler retrieves the user's own items with optional filters.
// GET /v1/items - Returns 200 OK.
func (h *ItemHandler) ListHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	filter, err := parseItemFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	items, err := h.itemUseCase.ListItems(c.Request.Context(), user.ID, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemListResponse(items))
}

// ListSharedHandler retrieves items other users shared with the caller.
// GET /v1/items/shared - Returns 200 OK.
func (h *ItemHandler) ListSharedHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	items, err := h.itemUseCase.ListSharedItems(c.Request.Context(), user.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemListResponse(items))
}

// UpdateHandler applies a partial update to an item the user can edit.
// PUT /v1/items/:id - Returns 200 OK.
func (h *ItemHandler) UpdateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input, err := req.ToUpdateItemInput()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	details, err := h.itemUseCase.UpdateItem(c.Request.Context(), user.ID, id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDetailResponse(details))
}

// ToggleFavoriteHandler flips the favorite flag on an item the user owns.
// POST /v1/items/:id/favorite - Returns 200 OK.
func (h *ItemHandler) ToggleFavoriteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	item, err := h.itemUseCase.ToggleFavorite(c.Request.Context(), user.ID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// DeleteHandler soft deletes an item the user owns.
// DELETE /v1/items/:id - Returns 204 No Content.
func (h *ItemHandler) DeleteHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid item id"), h.logger)
		return
	}

	if err := h.itemUseCase.DeleteItem(c.Request.Context(), user.ID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// parseItemFilter builds the listing filter from query parameters
func parseItemFilter(c *gin.Context) (domain.ItemFilter, error) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		return domain.ItemFilter{}, err
	}

	filter := domain.ItemFilter{
		TitleSearch: c.Query("search"),
		Offset:      offset,
		Limit:       limit,
	}

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return domain.ItemFilter{}, fmt.Errorf("invalid category id")
		}
		filter.CategoryID = &categoryID
	}

	if raw := c.Query("favorite"); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.ItemFilter{}, fmt.Errorf("invalid favorite parameter: must be true or false")
		}
		filter.Favorite = &favorite
	}

	return filter, nil
}
