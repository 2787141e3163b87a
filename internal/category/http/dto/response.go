// Package dto provides data transfer objects for the category HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/category/domain"
)

// CategoryResponse represents the API response for a category
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	Name        string     `json:"name"`
	Icon        *string    `json:"icon"`
	Description *string    `json:"description"`
	Color       string     `json:"color"`
	System      bool       `json:"system"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryListResponse represents the API response for a list of categories
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category model to a CategoryResponse DTO
func ToCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		OwnerID:     category.OwnerID,
		Name:        category.Name,
		Icon:        category.Icon,
		Description: category.Description,
		Color:       category.Color,
		System:      category.IsSystem(),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a slice of domain categories to a CategoryListResponse DTO
func ToCategoryListResponse(categories []*domain.Category) CategoryListResponse {
	response := CategoryListResponse{Categories: []CategoryResponse{}}
	for _, category := range categories {
		response.Categories = append(response.Categories, ToCategoryResponse(category))
	}
	return response
}
