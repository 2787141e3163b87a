// Package domain defines the vault item and dynamic field entities.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// ErrItemNotFound is returned when an item does not exist or the caller has
// no access to it. Access failures deliberately look identical to missing
// items so callers cannot probe which item IDs exist.
var ErrItemNotFound = apperrors.Wrap(apperrors.ErrNotFound, "item not found")

// Item is a vault entry (a credential, document or note) owned by a single
// user. Its data lives in dynamic fields.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Title      string     `json:"title"`
	CategoryID *uuid.UUID `json:"category_id"`
	Note       *string    `json:"note"`
	Favorite   bool       `json:"favorite"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at"`
}

// IsOwnedBy reports whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.OwnerID == userID
}

// IsDeleted reports whether the item was soft deleted.
func (i *Item) IsDeleted() bool {
	return i.DeletedAt != nil
}

// ItemFilter narrows item listings. Nil/zero members are ignored.
type ItemFilter struct {
	CategoryID  *uuid.UUID
	Favorite    *bool
	TitleSearch string
	Offset      int
	Limit       int
}
