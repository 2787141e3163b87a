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

const fieldColumns = "id, item_id, label, value, type, sensitive, position, created_at, updated_at, deleted_at"

// PostgreSQLFieldRepository handles dynamic field persistence for PostgreSQL
type PostgreSQLFieldRepository struct {
	db *sql.DB
}

// NewPostgreSQLFieldRepository creates a new PostgreSQLFieldRepository
func NewPostgreSQLFieldRepository(db *sql.DB) *PostgreSQLFieldRepository {
	return &PostgreSQLFieldRepository{
		db: db,
	}
}

// Create inserts a new field
func (r *PostgreSQLFieldRepository) Create(ctx context.Context, field *domain.Field) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO fields (id, item_id, label, value, type, sensitive, position, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		field.ID, field.ItemID, field.Label, field.Value, field.Type, field.Sensitive, field.Position,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create field")
	}
	return nil
}

// GetByID retrieves a live field belonging to an item
func (r *PostgreSQLFieldRepository) GetByID(ctx context.Context, itemID, fieldID uuid.UUID) (*domain.Field, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + fieldColumns + ` FROM fields
			  WHERE id = $1 AND item_id = $2 AND deleted_at IS NULL`

	field, err := scanField(querier.QueryRowContext(ctx, query, fieldID, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get field by id")
	}

	return field, nil
}

// ListByItem retrieves the live fields of an item ordered by position
func (r *PostgreSQLFieldRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Field, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + fieldColumns + ` FROM fields
			  WHERE item_id = $1 AND deleted_at IS NULL
			  ORDER BY position ASC, created_at ASC`

	rows, err := querier.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list fields")
	}
	defer rows.Close()

	var fields []*domain.Field
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan field")
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate fields")
	}

	return fields, nil
}

// Update persists changes to a live field
func (r *PostgreSQLFieldRepository) Update(ctx context.Context, field *domain.Field) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE fields SET label = $1, value = $2, type = $3, sensitive = $4, position = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query,
		field.Label, field.Value, field.Type, field.Sensitive, field.Position, field.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update field")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

// SoftDelete marks a live field as deleted
func (r *PostgreSQLFieldRepository) SoftDelete(ctx context.Context, itemID, fieldID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE fields SET deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND item_id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, fieldID, itemID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete field")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if rows == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

// DeleteByItem removes every field of an item. Used when the whole field set
// is replaced in one operation.
func (r *PostgreSQLFieldRepository) DeleteByItem(ctx context.Context, itemID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM fields WHERE item_id = $1`

	_, err := querier.ExecContext(ctx, query, itemID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete item fields")
	}
	return nil
}

func scanField(row interface{ Scan(...any) error }) (*domain.Field, error) {
	var field domain.Field

	err := row.Scan(
		&field.ID, &field.ItemID, &field.Label, &field.Value, &field.Type,
		&field.Sensitive, &field.Position,
		&field.CreatedAt, &field.UpdatedAt, &field.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &field, nil
}
