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

// MySQLCategoryRepository handles category persistence for MySQL
type MySQLCategoryRepository struct {
	db *sql.DB
}

// NewMySQLCategoryRepository creates a new MySQLCategoryRepository
func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{
		db: db,
	}
}

// Create inserts a new category
func (r *MySQLCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, owner_id, name, icon, description, color, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	var ownerID any
	if category.OwnerID != nil {
		ownerID = category.OwnerID.String()
	}

	_, err := querier.ExecContext(ctx, query,
		category.ID.String(), ownerID, category.Name, category.Icon, category.Description, category.Color,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// GetByID retrieves a live category by ID
func (r *MySQLCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, icon, description, color, created_at, updated_at, deleted_at
			  FROM categories WHERE id = ? AND deleted_at IS NULL`

	category, err := scanCategory(querier.QueryRowContext(ctx, query, id.String()))
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
func (r *MySQLCategoryRepository) ExistsByName(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM categories
				WHERE owner_id = ? AND name = ? AND id <> ? AND deleted_at IS NULL
			  )`

	var exists bool
	err := querier.QueryRowContext(ctx, query, ownerID.String(), name, excludeID.String()).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check category name")
	}
	return exists, nil
}

// ListVisible retrieves the live categories visible to a user: the seeded
// system categories plus the user's own, ordered by name.
func (r *MySQLCategoryRepository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, icon, description, color, created_at, updated_at, deleted_at
			  FROM categories
			  WHERE deleted_at IS NULL AND (owner_id IS NULL OR owner_id = ?)
			  ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query, userID.String())
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
func (r *MySQLCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET name = ?, icon = ?, description = ?, color = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		category.Name, category.Icon, category.Description, category.Color, category.ID.String(),
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
func (r *MySQLCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, id.String()); err != nil {
		return apperrors.Wrap(err, "failed to delete category")
	}
	return nil
}

// SeedSystemCategories inserts the given system categories, skipping names
// that already exist as live system categories.
func (r *MySQLCategoryRepository) SeedSystemCategories(ctx context.Context, categories []*domain.Category) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO categories (id, owner_id, name, icon, description, color, created_at, updated_at)
			  SELECT ?, NULL, ?, ?, ?, ?, NOW(), NOW()
			  FROM DUAL
			  WHERE NOT EXISTS (
				SELECT 1 FROM categories WHERE owner_id IS NULL AND name = ? AND deleted_at IS NULL
			  )`

	inserted := 0
	for _, category := range categories {
		result, err := querier.ExecContext(ctx, query,
			category.ID.String(), category.Name, category.Icon, category.Description, category.Color,
			category.Name,
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
