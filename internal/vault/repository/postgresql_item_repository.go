// Package repository provides data persistence implementations for vault
// items and their dynamic fields.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/database"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

const itemColumns = "id, owner_id, title, category_id, note, favorite, created_at, updated_at, deleted_at"

// PostgreSQLItemRepository handles item persistence for PostgreSQL
type PostgreSQLItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLItemRepository creates a new PostgreSQLItemRepository
func NewPostgreSQLItemRepository(db *sql.DB) *PostgreSQLItemRepository {
	return &PostgreSQLItemRepository{
		db: db,
	}
}

// Create inserts a new item
func (r *PostgreSQLItemRepository) Create(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO items (id, owner_id, title, category_id, note, favorite, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Title, categoryValue(item.CategoryID), item.Note, item.Favorite,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves a live item by ID
func (r *PostgreSQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted_at IS NULL`

	item, err := scanItem(querier.QueryRowContext(ctx, query, id))
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
func (r *PostgreSQLItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.ItemFilter,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND deleted_at IS NULL`
	args := []any{ownerID}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if filter.Favorite != nil {
		args = append(args, *filter.Favorite)
		query += fmt.Sprintf(` AND favorite = $%d`, len(args))
	}
	if filter.TitleSearch != "" {
		args = append(args, "%"+filter.TitleSearch+"%")
		query += fmt.Sprintf(` AND title ILIKE $%d`, len(args))
	}

	args = append(args, filter.Offset, filter.Limit)
	query += fmt.Sprintf(` ORDER BY favorite DESC, title ASC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListSharedWith retrieves live items shared with a user through live grants.
func (r *PostgreSQLItemRepository) ListSharedWith(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT i.id, i.owner_id, i.title, i.category_id, i.note, i.favorite, i.created_at, i.updated_at, i.deleted_at
			  FROM items i
			  INNER JOIN permissions p ON p.item_id = i.id
			  WHERE p.grantee_id = $1 AND p.deleted_at IS NULL AND i.deleted_at IS NULL
			  ORDER BY i.favorite DESC, i.title ASC OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list shared items")
	}
	defer rows.Close()

	return collectItems(rows)
}

// Update persists changes to a live item
func (r *PostgreSQLItemRepository) Update(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE items SET title = $1, category_id = $2, note = $3, favorite = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		item.Title, categoryValue(item.CategoryID), item.Note, item.Favorite, item.ID,
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
func (r *PostgreSQLItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE items SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, id)
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

// scanItem maps a row into an item, handling the nullable category reference
func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	var item domain.Item
	var categoryID uuid.NullUUID

	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Title, &categoryID, &item.Note, &item.Favorite,
		&item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.UUID
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate items")
	}
	return items, nil
}

func categoryValue(categoryID *uuid.UUID) uuid.NullUUID {
	if categoryID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *categoryID, Valid: true}
}
