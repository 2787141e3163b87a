// Package repository provides data persistence implementations for sharing
// grants.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/database"
	"github.com/allisson/familyvault/internal/sharing/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

const permissionColumns = "id, item_id, owner_id, grantee_id, level, created_at, updated_at, deleted_at"

// PostgreSQLPermissionRepository handles permission persistence for PostgreSQL
type PostgreSQLPermissionRepository struct {
	db *sql.DB
}

// NewPostgreSQLPermissionRepository creates a new PostgreSQLPermissionRepository
func NewPostgreSQLPermissionRepository(db *sql.DB) *PostgreSQLPermissionRepository {
	return &PostgreSQLPermissionRepository{
		db: db,
	}
}

// Create inserts a new permission
func (r *PostgreSQLPermissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, item_id, owner_id, grantee_id, level, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		permission.ID, permission.ItemID, permission.OwnerID, permission.GranteeID, permission.Level,
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

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}

// GetByID retrieves a live permission by ID
func (r *PostgreSQLPermissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1 AND deleted_at IS NULL`

	permission, err := scanPermission(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission by id")
	}

	return permission, nil
}

// GetLiveGrant retrieves the live grant for an item/grantee pair
func (r *PostgreSQLPermissionRepository) GetLiveGrant(
	ctx context.Context,
	itemID, granteeID uuid.UUID,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions
			  WHERE item_id = $1 AND grantee_id = $2 AND deleted_at IS NULL`

	permission, err := scanPermission(querier.QueryRowContext(ctx, query, itemID, granteeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get live grant")
	}

	return permission, nil
}

// ListByItem retrieves the live grants on an item, oldest first
func (r *PostgreSQLPermissionRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + permissionColumns + ` FROM permissions
			  WHERE item_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, itemID)
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
func (r *PostgreSQLPermissionRepository) Update(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE permissions SET level = $1, updated_at = NOW()
			  WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, permission.Level, permission.ID)
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
func (r *PostgreSQLPermissionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE permissions SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
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

func scanPermission(row interface{ Scan(...any) error }) (*domain.Permission, error) {
	var permission domain.Permission

	err := row.Scan(
		&permission.ID, &permission.ItemID, &permission.OwnerID, &permission.GranteeID, &permission.Level,
		&permission.CreatedAt, &permission.UpdatedAt, &permission.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &permission, nil
}
