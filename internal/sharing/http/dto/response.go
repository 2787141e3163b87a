package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/sharing/domain"
	"github.com/allisson/familyvault/internal/sharing/usecase"

	userDto "github.com/allisson/familyvault/internal/user/http/dto"
)

// PermissionResponse represents the API response for a sharing grant
type PermissionResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	GranteeID uuid.UUID `json:"grantee_id"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PermissionWithGranteeResponse pairs a grant with the grantee's public
// profile. The profile is null when the grantee account no longer exists.
type PermissionWithGranteeResponse struct {
	PermissionResponse
	Grantee *userDto.UserResponse `json:"grantee"`
}

// PermissionListResponse represents the API response for the grants on an item
type PermissionListResponse struct {
	Permissions []PermissionWithGranteeResponse `json:"permissions"`
}

// ToPermissionResponse converts a domain Permission model to a PermissionResponse DTO
func ToPermissionResponse(permission *domain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:        permission.ID,
		ItemID:    permission.ItemID,
		OwnerID:   permission.OwnerID,
		GranteeID: permission.GranteeID,
		Level:     string(permission.Level),
		CreatedAt: permission.CreatedAt,
		UpdatedAt: permission.UpdatedAt,
	}
}

// ToPermissionListResponse converts the use case projection to a PermissionListResponse DTO
func ToPermissionListResponse(entries []*usecase.PermissionWithGrantee) PermissionListResponse {
	response := PermissionListResponse{Permissions: []PermissionWithGranteeResponse{}}
	for _, entry := range entries {
		item := PermissionWithGranteeResponse{
			PermissionResponse: ToPermissionResponse(entry.Permission),
		}
		if entry.Grantee != nil {
			grantee := userDto.ToUserResponse(entry.Grantee)
			item.Grantee = &grantee
		}
		response.Permissions = append(response.Permissions, item)
	}
	return response
}
