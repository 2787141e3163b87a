// Package dto provides data transfer objects for the sharing HTTP layer.
package dto

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/sharing/domain"
	"github.com/allisson/familyvault/internal/sharing/usecase"
)

// GrantPermissionRequest represents the item sharing request payload
type GrantPermissionRequest struct {
	ItemID    string `json:"item_id"`
	GranteeID string `json:"grantee_id"`
	Level     string `json:"level"`
}

// UpdatePermissionRequest represents the access level change request payload
type UpdatePermissionRequest struct {
	Level string `json:"level"`
}

// ToGrantPermissionInput converts the request DTO to a use case input
func (r *GrantPermissionRequest) ToGrantPermissionInput() (usecase.GrantPermissionInput, error) {
	itemID, err := uuid.Parse(r.ItemID)
	if err != nil {
		return usecase.GrantPermissionInput{}, fmt.Errorf("invalid item id")
	}

	granteeID, err := uuid.Parse(r.GranteeID)
	if err != nil {
		return usecase.GrantPermissionInput{}, fmt.Errorf("invalid grantee id")
	}

	return usecase.GrantPermissionInput{
		ItemID:    itemID,
		GranteeID: granteeID,
		Level:     domain.AccessLevel(r.Level),
	}, nil
}
