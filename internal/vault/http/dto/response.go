package dto

import (
	"time"

	"github.com/google/uuid"

	categoryDto "github.com/allisson/familyvault/internal/category/http/dto"
	"github.com/allisson/familyvault/internal/vault/domain"
	"github.com/allisson/familyvault/internal/vault/usecase"
)

// FieldResponse represents the API response for a field. Values are always
// plaintext; ciphertext never leaves the service.
type FieldResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	Sensitive bool      `json:"sensitive"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldListResponse represents the API response for a list of fields
type FieldListResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// ItemResponse is the basic item projection used in listings
type ItemResponse struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Title      string     `json:"title"`
	CategoryID *uuid.UUID `json:"category_id"`
	Note       *string    `json:"note"`
	Favorite   bool       `json:"favorite"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ItemListResponse represents the API response for a list of items
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

// ItemDetailResponse is the complete item projection: the item plus its
// category and decrypted fields
type ItemDetailResponse struct {
	ItemResponse
	Category *categoryDto.CategoryResponse `json:"category"`
	Fields   []FieldResponse               `json:"fields"`
}

// ToFieldResponse converts a domain Field model to a FieldResponse DTO
func ToFieldResponse(field *domain.Field) FieldResponse {
	return FieldResponse{
		ID:        field.ID,
		ItemID:    field.ItemID,
		Label:     field.Label,
		Value:     field.Value,
		Type:      string(field.Type),
		Sensitive: field.Sensitive,
		Position:  field.Position,
		CreatedAt: field.CreatedAt,
		UpdatedAt: field.UpdatedAt,
	}
}

// ToFieldListResponse converts a slice of domain fields to a FieldListResponse DTO
func ToFieldListResponse(fields []*domain.Field) FieldListResponse {
	response := FieldListResponse{Fields: []FieldResponse{}}
	for _, field := range fields {
		response.Fields = append(response.Fields, ToFieldResponse(field))
	}
	return response
}

// ToItemResponse converts a domain Item model to an ItemResponse DTO
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		OwnerID:    item.OwnerID,
		Title:      item.Title,
		CategoryID: item.CategoryID,
		Note:       item.Note,
		Favorite:   item.Favorite,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// ToItemListResponse converts a slice of domain items to an ItemListResponse DTO
func ToItemListResponse(items []*domain.Item) ItemListResponse {
	response := ItemListResponse{Items: []ItemResponse{}}
	for _, item := range items {
		response.Items = append(response.Items, ToItemResponse(item))
	}
	return response
}

// ToItemDetailResponse converts the complete use case projection to a DTO
func ToItemDetailResponse(details *usecase.ItemDetails) ItemDetailResponse {
	response := ItemDetailResponse{
		ItemResponse: ToItemResponse(details.Item),
		Fields:       []FieldResponse{},
	}

	if details.Category != nil {
		category := categoryDto.ToCategoryResponse(details.Category)
		response.Category = &category
	} else {
		// hide a dangling reference from clients
		response.CategoryID = nil
	}

	for _, field := range details.Fields {
		response.Fields = append(response.Fields, ToFieldResponse(field))
	}

	return response
}
