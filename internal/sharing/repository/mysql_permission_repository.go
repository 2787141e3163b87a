package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/database"
	"github.com/allisson/familyvault/internal/sharing/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// MySQLPermissionRepository handles permission persistence for MySQL
type MySQLPermissionRepository struct {
	db *sql.DB
}

// NewMySQLPermissionRepository creates a new MySQLPermissionRepository
func NewMySQLPermissionRepository(db *sql.DB) *MySQLPermissionRepository {
	return &MySQLPermissionRepository{
		db: db,
	}
}

// Create inserts a new permission
func (r *MySQLPermissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, item_id, owner_id, grantee_id, level, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		permission.ID.String(), permission.ItemID.String(),
		permission.OwnerID.String(), permission.GranteeID.String(), permission.Level,
	)
	if err != nil {
		// Concurrent grants for the same pair lose the race on the live index
		if isUniqueViolation(err) {
			return domain.ErrPermissionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetByID retrieves a live permission by ID
func (r *MySQLPermissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = ? AND deleted_at IS NULL`

	permission, err := scanPermission(querier.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission by id")
	}

	return permission, nil
}

// GetLiveGrant retrieves the live grant for an item/grantee pair
func (r *MySQLPermissionRepository) GetLiveGrant(
	ctx context.Context,
	itemID, granteeID uuid.UUID,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions
			  WHERE item_id = ? AND grantee_id = ? AND deleted_at IS NULL`

	permission, err := scanPermission(querier.QueryRowContext(ctx, query, itemID.String(), granteeID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get live grant")
	}

	return permission, nil
}

// ListByItem retrieves the live grants on an item, oldest first
func (r *MySQLPermissionRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions
			  WHERE item_id = ? AND deleted_at IS NULL
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, itemID.String())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer rows.Close()

	var permissions []*domain.Permission
	for rows.Next() {
		permission, err := scanPermission(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		permissions = append(permissions, permission)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate permissions")
	}

	return permissions, nil
}

// Update persists changes to a live permission
func (r *MySQLPermissionRepository) Update(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE permissions SET level = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, permission.Level, permission.ID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update permission")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return domain.ErrPermissionNotFound
	}
	return nil
}

// SoftDelete marks a live permission as revoked
func (r *MySQLPermissionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE permissions SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke permission")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revoked rows")
	}
	if rows == 0 {
		return domain.ErrPermissionNotFound
	}
	return nil
}
