// Package domain defines the sharing grant entity and its access levels.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// Permission errors.
var (
	ErrPermissionNotFound      = apperrors.Wrap(apperrors.ErrNotFound, "permission not found")
	ErrPermissionAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "item is already shared with this user")
	ErrCannotShareWithSelf     = apperrors.Wrap(apperrors.ErrConflict, "cannot share an item with its owner")
)

// AccessLevel is the capability a grant confers on an item.
type AccessLevel string

// Supported access levels.
const (
	AccessLevelView AccessLevel = "view"
	AccessLevelEdit AccessLevel = "edit"
)

// IsValid reports whether l is a supported access level.
func (l AccessLevel) IsValid() bool {
	return l == AccessLevelView || l == AccessLevelEdit
}

// CanEdit reports whether the level allows modifying the item.
func (l AccessLevel) CanEdit() bool {
	return l == AccessLevelEdit
}

// Permission grants a user access to an item owned by someone else.
type Permission struct {
	ID        uuid.UUID   `json:"id"`
	ItemID    uuid.UUID   `json:"item_id"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	GranteeID uuid.UUID   `json:"grantee_id"`
	Level     AccessLevel `json:"level"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	DeletedAt *time.Time  `json:"deleted_at"`
}

// IsDeleted reports whether the grant was revoked.
func (p *Permission) IsDeleted() bool {
	return p.DeletedAt != nil
}
