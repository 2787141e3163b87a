package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	sharingDomain "github.com/allisson/familyvault/internal/sharing/domain"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// PermissionReader exposes the live grant lookup the vault needs from the
// sharing module.
type PermissionReader interface {
	GetLiveGrant(ctx context.Context, itemID, granteeID uuid.UUID) (*sharingDomain.Permission, error)
}

// accessResolver decides whether a user may see or modify an item. Every
// denial is reported as ErrItemNotFound so callers cannot tell a missing item
// apart from an item they were never granted.
type accessResolver struct {
	itemRepo       ItemRepository
	permissionRepo PermissionReader
}

func newAccessResolver(itemRepo ItemRepository, permissionRepo PermissionReader) *accessResolver {
	return &accessResolver{
		itemRepo:       itemRepo,
		permissionRepo: permissionRepo,
	}
}

// ResolveAccess loads the item and checks the caller's access to it. Owners
// always pass; other users need a live grant, and needEdit demands the edit
// level.
func (a *accessResolver) ResolveAccess(
	ctx context.Context,
	itemID, userID uuid.UUID,
	needEdit bool,
) (*domain.Item, error) {
	item, err := a.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsOwnedBy(userID) {
		return item, nil
	}

	grant, err := a.permissionRepo.GetLiveGrant(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	if needEdit && !grant.Level.CanEdit() {
		return nil, domain.ErrItemNotFound
	}

	return item, nil
}
