// Package usecase implements sharing business logic: granting, adjusting and
// revoking access to vault items.
package usecase

import (
	"context"
	"errors"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/sharing/domain"
	userDomain "github.com/allisson/familyvault/internal/user/domain"
	vaultDomain "github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
	appValidation "github.com/allisson/familyvault/internal/validation"
)

// GrantPermissionInput contains the input data for sharing an item
type GrantPermissionInput struct {
	ItemID    uuid.UUID          `json:"item_id"`
	GranteeID uuid.UUID          `json:"grantee_id"`
	Level     domain.AccessLevel `json:"level"`
}

// PermissionWithGrantee pairs a grant with the grantee's public profile
type PermissionWithGrantee struct {
	Permission *domain.Permission
	Grantee    *userDomain.User
}

// PermissionUseCase defines the interface for sharing business logic operations
type PermissionUseCase interface {
	Grant(ctx context.Context, userID uuid.UUID, input GrantPermissionInput) (*domain.Permission, error)
	UpdateLevel(ctx context.Context, userID, permissionID uuid.UUID, level domain.AccessLevel) (*domain.Permission, error)
	Revoke(ctx context.Context, userID, permissionID uuid.UUID) error
	ListForItem(ctx context.Context, userID, itemID uuid.UUID) ([]*PermissionWithGrantee, error)
}

// PermissionRepository interface defines permission repository operations
type PermissionRepository interface {
	Create(ctx context.Context, permission *domain.Permission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
	GetLiveGrant(ctx context.Context, itemID, granteeID uuid.UUID) (*domain.Permission, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Permission, error)
	Update(ctx context.Context, permission *domain.Permission) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ItemReader exposes the item lookup the sharing module needs from the vault.
type ItemReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Item, error)
}

// UserReader exposes the user lookup for grant targets and grantee profiles.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// permissionUseCase handles sharing-related business logic
type permissionUseCase struct {
	permissionRepo PermissionRepository
	itemReader     ItemReader
	userReader     UserReader
}

// NewPermissionUseCase creates a new PermissionUseCase
func NewPermissionUseCase(
	permissionRepo PermissionRepository,
	itemReader ItemReader,
	userReader UserReader,
) PermissionUseCase {
	return &permissionUseCase{
		permissionRepo: permissionRepo,
		itemReader:     itemReader,
		userReader:     userReader,
	}
}

func validateLevel(level domain.AccessLevel) error {
	err := validation.Validate(string(level),
		validation.Required.Error("level is required"),
		validation.In(string(domain.AccessLevelView), string(domain.AccessLevelEdit)).
			Error("level must be view or edit"),
	)
	return appValidation.WrapValidationError(err)
}

// ownedItem loads the item and checks the caller owns it. Non-owners get the
// same answer as for a missing item.
func (uc *permissionUseCase) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*vaultDomain.Item, error) {
	item, err := uc.itemReader.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, vaultDomain.ErrItemNotFound
	}
	return item, nil
}

// Grant shares an item owned by the user with another live user. Sharing with
// yourself or stacking a second live grant on the same pair is a conflict.
func (uc *permissionUseCase) Grant(
	ctx context.Context,
	userID uuid.UUID,
	input GrantPermissionInput,
) (*domain.Permission, error) {
	if err := validateLevel(input.Level); err != nil {
		return nil, err
	}

	item, err := uc.ownedItem(ctx, userID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.GranteeID == userID {
		return nil, domain.ErrCannotShareWithSelf
	}

	if _, err := uc.userReader.GetByID(ctx, input.GranteeID); err != nil {
		return nil, err
	}

	_, err = uc.permissionRepo.GetLiveGrant(ctx, input.ItemID, input.GranteeID)
	switch {
	case err == nil:
		return nil, domain.ErrPermissionAlreadyExists
	case errors.Is(err, apperrors.ErrNotFound):
		// no live grant yet
	default:
		return nil, err
	}

	permission := &domain.Permission{
		ID:        uuid.Must(uuid.NewV7()),
		ItemID:    item.ID,
		OwnerID:   item.OwnerID,
		GranteeID: input.GranteeID,
		Level:     input.Level,
	}

	if err := uc.permissionRepo.Create(ctx, permission); err != nil {
		return nil, err
	}

	return permission, nil
}

// UpdateLevel changes the access level of a grant on an item the user owns.
// Grantees and strangers get the same answer as for a missing grant.
func (uc *permissionUseCase) UpdateLevel(
	ctx context.Context,
	userID, permissionID uuid.UUID,
	level domain.AccessLevel,
) (*domain.Permission, error) {
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	permission, err := uc.permissionRepo.GetByID(ctx, permissionID)
	if err != nil {
		return nil, err
	}
	if permission.OwnerID != userID {
		return nil, domain.ErrPermissionNotFound
	}

	permission.Level = level
	if err := uc.permissionRepo.Update(ctx, permission); err != nil {
		return nil, err
	}

	return permission, nil
}

// Revoke removes a grant. The item owner can revoke any grant on the item;
// a grantee can walk away from their own.
func (uc *permissionUseCase) Revoke(ctx context.Context, userID, permissionID uuid.UUID) error {
	permission, err := uc.permissionRepo.GetByID(ctx, permissionID)
	if err != nil {
		return err
	}
	if permission.OwnerID != userID && permission.GranteeID != userID {
		return domain.ErrPermissionNotFound
	}

	return uc.permissionRepo.SoftDelete(ctx, permissionID)
}

// ListForItem retrieves the live grants on an item the user owns, each paired
// with the grantee's public profile. Grantees deleted after the grant are
// listed without a profile.
func (uc *permissionUseCase) ListForItem(
	ctx context.Context,
	userID, itemID uuid.UUID,
) ([]*PermissionWithGrantee, error) {
	if _, err := uc.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	permissions, err := uc.permissionRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := make([]*PermissionWithGrantee, 0, len(permissions))
	for _, permission := range permissions {
		entry := &PermissionWithGrantee{Permission: permission}

		grantee, err := uc.userReader.GetByID(ctx, permission.GranteeID)
		switch {
		case err == nil:
			entry.Grantee = grantee
		case errors.Is(err, apperrors.ErrNotFound):
			// grantee account removed after the grant
		default:
			return nil, err
		}

		result = append(result, entry)
	}

	return result, nil
}
