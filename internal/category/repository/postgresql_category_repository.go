// Package repository provides data persistence implementations for categories.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/category/domain"
	"github.com/allisson/familyvault/internal/database"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// PostgreSQLCategoryRepository handles category persistence for PostgreSQL
type PostgreSQLCategoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLCategoryRepository creates a new PostgreSQLCategoryRepository
func NewPostgreSQLCategoryRepository(db *sql.DB) *PostgreSQLCategoryRepository {
	return &PostgreSQLCategoryRepository{
		db: db,
	}
}

const pgCategoryColumns = `id, owner_id, name, icon, description, color, created_at, updated_at, deleted_at`

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var category domain.Category
	var ownerID uuid.NullUUID
	err := row.Scan(
		&category.ID, &ownerID, &category.Name, &category.Icon,
		&category.Description, &category.Color,
		&category.CreatedAt, &category.UpdatedAt, &category.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if ownerID.Valid {
		category.OwnerID = &ownerID.UUID
	}
	return &category, nil
}

// ownerValue adapts an optional owner reference for a nullable uuid column.
func ownerValue(ownerID *uuid.UUID) uuid.NullUUID {
	if ownerID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *ownerID, Valid: true}
}

// Create inserts a new category
func (r *PostgreSQLCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, owner_id, name, icon, description, color, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		category.ID, ownerValue(category.OwnerID), category.Name, category.Icon, category.Description, category.Color,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// GetByID retrieves a live category by ID
func (r *PostgreSQLCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgCategoryColumns + ` FROM categories WHERE id = $1 AND deleted_at IS NULL`

	category, err := scanCategory(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category by id")
	}
	return category, nil
}

// ExistsByName reports whether the user already has a live category with this
// name, excluding the given category ID (uuid.Nil excludes nothing).
func (r *PostgreSQLCategoryRepository) ExistsByName(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM categories
				WHERE owner_id = $1 AND name = $2 AND id <> $3 AND deleted_at IS NULL
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, ownerID, name, excludeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check category name")
	}
	return exists, nil
}

// ListVisible retrieves the live categories visible to a user: the seeded
// system categories plus the user's own, ordered by name.
func (r *PostgreSQLCategoryRepository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgCategoryColumns + ` FROM categories
			  WHERE deleted_at IS NULL AND (owner_id IS NULL OR owner_id = $1)
			  ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}

	return categories, nil
}

// Update persists changes to a live category
func (r *PostgreSQLCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET name = $1, icon = $2, description = $3, color = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		category.Name, category.Icon, category.Description, category.Color, category.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// SoftDelete marks a live category as deleted. Deleting an already deleted
// category is a no-op.
func (r *PostgreSQLCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete category")
	}
	return nil
}

// SeedSystemCategories inserts the given system categories, skipping names
// that already exist as live system categories.
func (r *PostgreSQLCategoryRepository) SeedSystemCategories(ctx context.Context, categories []*domain.Category) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, owner_id, name, icon, description, color, created_at, updated_at)
			  SELECT $1, NULL, $2, $3, $4, $5, NOW(), NOW()
			  WHERE NOT EXISTS (
				SELECT 1 FROM categories WHERE owner_id IS NULL AND name = $2 AND deleted_at IS NULL
			  )`

	inserted := 0
	for _, category := range categories {
		result, err := querier.ExecContext(ctx, query,
			category.ID, category.Name, category.Icon, category.Description, category.Color,
		)
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to seed system category")
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to check seeded rows")
		}
		inserted += int(rows)
	}
	return inserted, nil
}
