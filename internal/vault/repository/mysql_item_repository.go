package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/database"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// MySQLItemRepository handles item persistence for MySQL
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a new MySQLItemRepository
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{
		db: db,
	}
}

// Create inserts a new item
func (r *MySQLItemRepository) Create(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO items (id, owner_id, title, category_id, note, favorite, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		item.ID.String(), item.OwnerID.String(), item.Title,
		categoryStringValue(item.CategoryID), item.Note, item.Favorite,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves a live item by ID
func (r *MySQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND deleted_at IS NULL`

	item, err := scanItem(querier.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item by id")
	}

	return item, nil
}

// ListByOwner retrieves live items owned by a user. Favorites come first,
// then titles in alphabetical order.
func (r *MySQLItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.ItemFilter,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? AND deleted_at IS NULL`
	args := []any{ownerID.String()}

	if filter.CategoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, filter.CategoryID.String())
	}
	if filter.Favorite != nil {
		query += ` AND favorite = ?`
		args = append(args, *filter.Favorite)
	}
	if filter.TitleSearch != "" {
		query += ` AND LOWER(title) LIKE LOWER(?)`
		args = append(args, "%"+filter.TitleSearch+"%")
	}

	query += ` ORDER BY favorite DESC, title ASC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListSharedWith retrieves live items shared with a user through live grants.
func (r *MySQLItemRepository) ListSharedWith(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT i.id, i.owner_id, i.title, i.category_id, i.note, i.favorite, i.created_at, i.updated_at, i.deleted_at
			  FROM items i
			  INNER JOIN permissions p ON p.item_id = i.id
			  WHERE p.grantee_id = ? AND p.deleted_at IS NULL AND i.deleted_at IS NULL
			  ORDER BY i.favorite DESC, i.title ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userID.String(), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list shared items")
	}
	defer rows.Close()

	return collectItems(rows)
}

// Update persists changes to a live item
func (r *MySQLItemRepository) Update(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE items SET title = ?, category_id = ?, note = ?, favorite = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		item.Title, categoryStringValue(item.CategoryID), item.Note, item.Favorite, item.ID.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// SoftDelete marks a live item as deleted
func (r *MySQLItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE items SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func categoryStringValue(categoryID *uuid.UUID) any {
	if categoryID == nil {
		return nil
	}
	return categoryID.String()
}
