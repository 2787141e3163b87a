// Package domain defines the category entity used to organize vault items.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// DefaultColor is the hex color assigned when a category is created without one.
const DefaultColor = "#6366f1"

var (
	// ErrCategoryNotFound is returned when a live category does not exist
	ErrCategoryNotFound = apperrors.Wrap(apperrors.ErrNotFound, "category not found")

	// ErrCategoryNameTaken is returned when the user already has a live category with the same name
	ErrCategoryNameTaken = apperrors.Wrap(apperrors.ErrConflict, "a category with this name already exists")

	// ErrSystemCategoryImmutable is returned when a user tries to change or delete a system category
	ErrSystemCategoryImmutable = apperrors.Wrap(apperrors.ErrForbidden, "system categories cannot be modified")

	// ErrCategoryAccessDenied is returned when a user tries to change a category owned by someone else
	ErrCategoryAccessDenied = apperrors.Wrap(apperrors.ErrForbidden, "you don't have permission to modify this category")
)

// Category organizes vault items. A nil OwnerID marks a system category
// visible to every user; those are seeded at install time and cannot be
// changed through the API.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	Name        string     `json:"name"`
	Icon        *string    `json:"icon"`
	Description *string    `json:"description"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// IsSystem reports whether the category is a seeded system category.
func (c *Category) IsSystem() bool {
	return c.OwnerID == nil
}

// IsOwnedBy reports whether the category belongs to the given user.
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// IsDeleted reports whether the category was soft deleted.
func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}
