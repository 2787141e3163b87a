// Package usecase implements vault business logic: item and field lifecycle,
// access resolution for shared items and transparent encryption of sensitive
// field values.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	categoryDomain "github.com/allisson/familyvault/internal/category/domain"
	"github.com/allisson/familyvault/internal/database"
	"github.com/allisson/familyvault/internal/metrics"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
	appValidation "github.com/allisson/familyvault/internal/validation"
)

// FieldInput describes a field as submitted by the client. Values arrive in
// plaintext; the use case decides the stored representation.
type FieldInput struct {
	Label     string           `json:"label"`
	Value     string           `json:"value"`
	Type      domain.FieldType `json:"type"`
	Sensitive *bool            `json:"sensitive"`
	Position  string           `json:"position"`
}

// CreateItemInput contains the input data for item creation
type CreateItemInput struct {
	Title      string       `json:"title"`
	CategoryID *uuid.UUID   `json:"category_id"`
	Note       *string      `json:"note"`
	Favorite   bool         `json:"favorite"`
	Fields     []FieldInput `json:"fields"`
}

// UpdateItemInput contains the input data for a partial item update. Nil
// pointers leave the current value untouched. A non-nil Fields slice replaces
// the whole field set, empty slice included. ClearCategory detaches the item
// from its category.
type UpdateItemInput struct {
	Title         *string       `json:"title"`
	CategoryID    *uuid.UUID    `json:"category_id"`
	ClearCategory bool          `json:"-"`
	Note          *string       `json:"note"`
	Favorite      *bool         `json:"favorite"`
	Fields        *[]FieldInput `json:"fields"`
}

// ItemDetails is the complete projection of an item: the item itself, its
// category (nil when the reference dangles after a category delete) and its
// fields with sensitive values decrypted.
type ItemDetails struct {
	Item     *domain.Item
	Category *categoryDomain.Category
	Fields   []*domain.Field
}

// ItemUseCase defines the interface for item business logic operations
type ItemUseCase interface {
	CreateItem(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*ItemDetails, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*ItemDetails, error)
	ListItems(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.Item, error)
	ListSharedItems(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Item, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input UpdateItemInput) (*ItemDetails, error)
	ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (*domain.Item, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
}

// ItemRepository interface defines item repository operations
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter domain.ItemFilter) ([]*domain.Item, error)
	ListSharedWith(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FieldRepository interface defines field repository operations
type FieldRepository interface {
	Create(ctx context.Context, field *domain.Field) error
	GetByID(ctx context.Context, itemID, fieldID uuid.UUID) (*domain.Field, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Field, error)
	Update(ctx context.Context, field *domain.Field) error
	SoftDelete(ctx context.Context, itemID, fieldID uuid.UUID) error
	DeleteByItem(ctx context.Context, itemID uuid.UUID) error
}

// CategoryReader exposes the category lookup the vault needs for item
// projections.
type CategoryReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*categoryDomain.Category, error)
}

// FieldCipher encrypts and decrypts sensitive field values.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
	IsCipherToken(value string) bool
}

// itemUseCase handles item-related business logic
type itemUseCase struct {
	itemRepo       ItemRepository
	fieldRepo      FieldRepository
	categoryReader CategoryReader
	access         *accessResolver
	codec          *fieldCodec
	txManager      database.TxManager
}

// NewItemUseCase creates a new ItemUseCase
func NewItemUseCase(
	itemRepo ItemRepository,
	fieldRepo FieldRepository,
	categoryReader CategoryReader,
	permissionReader PermissionReader,
	cipher FieldCipher,
	txManager database.TxManager,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) ItemUseCase {
	return &itemUseCase{
		itemRepo:       itemRepo,
		fieldRepo:      fieldRepo,
		categoryReader: categoryReader,
		access:         newAccessResolver(itemRepo, permissionReader),
		codec: &fieldCodec{
			cipher:          cipher,
			businessMetrics: businessMetrics,
			logger:          logger,
		},
		txManager: txManager,
	}
}

func validateFieldInputs(fields []FieldInput) error {
	for _, field := range fields {
		err := validation.ValidateStruct(&field,
			validation.Field(&field.Label,
				validation.Required.Error("field label is required"),
				appValidation.NotBlank,
				validation.Length(1, 100).Error("field label must be at most 100 characters"),
			),
			validation.Field(&field.Type,
				validation.Required.Error("field type is required"),
				validation.By(validateFieldType),
			),
			validation.Field(&field.Position,
				validation.Length(0, 50).Error("field position must be at most 50 characters"),
			),
		)
		if err != nil {
			return appValidation.WrapValidationError(err)
		}
	}
	return nil
}

func validateFieldType(value interface{}) error {
	fieldType, ok := value.(domain.FieldType)
	if !ok || !fieldType.IsValid() {
		return validation.NewError("validation_field_type", "unsupported field type")
	}
	return nil
}

func (uc *itemUseCase) validateCreateItemInput(input CreateItemInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be at most 255 characters"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}
	return validateFieldInputs(input.Fields)
}

func (uc *itemUseCase) validateUpdateItemInput(input UpdateItemInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.NilOrNotEmpty.Error("title cannot be blank"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be at most 255 characters"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}
	if input.Fields != nil {
		return validateFieldInputs(*input.Fields)
	}
	return nil
}

// CreateItem creates an item together with its initial fields in a single
// transaction. Sensitive values are encrypted before they touch storage.
func (uc *itemUseCase) CreateItem(
	ctx context.Context,
	userID uuid.UUID,
	input CreateItemInput,
) (*ItemDetails, error) {
	if err := uc.validateCreateItemInput(input); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:         uuid.Must(uuid.NewV7()),
		OwnerID:    userID,
		Title:      strings.TrimSpace(input.Title),
		CategoryID: input.CategoryID,
		Note:       input.Note,
		Favorite:   input.Favorite,
	}

	fields := make([]*domain.Field, 0, len(input.Fields))
	for _, fieldInput := range input.Fields {
		field, err := uc.codec.encode(item.ID, fieldInput)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.itemRepo.Create(ctx, item); err != nil {
			return err
		}
		for _, field := range fields {
			if err := uc.fieldRepo.Create(ctx, field); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.buildDetails(ctx, item, fields)
}

// GetItem retrieves the complete projection of an item the user has access to
func (uc *itemUseCase) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*ItemDetails, error) {
	item, err := uc.access.ResolveAccess(ctx, itemID, userID, false)
	if err != nil {
		return nil, err
	}

	fields, err := uc.fieldRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return uc.buildDetails(ctx, item, fields)
}

// ListItems retrieves the user's own live items
func (uc *itemUseCase) ListItems(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ItemFilter,
) ([]*domain.Item, error) {
	return uc.itemRepo.ListByOwner(ctx, userID, filter)
}

// ListSharedItems retrieves live items other users shared with this user
func (uc *itemUseCase) ListSharedItems(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Item, error) {
	return uc.itemRepo.ListSharedWith(ctx, userID, offset, limit)
}

// UpdateItem applies a partial update to an item the user can edit. When the
// input carries a field set, the existing fields are replaced wholesale in
// the same transaction.
func (uc *itemUseCase) UpdateItem(
	ctx context.Context,
	userID, itemID uuid.UUID,
	input UpdateItemInput,
) (*ItemDetails, error) {
	if err := uc.validateUpdateItemInput(input); err != nil {
		return nil, err
	}

	item, err := uc.access.ResolveAccess(ctx, itemID, userID, true)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.ClearCategory {
		item.CategoryID = nil
	} else if input.CategoryID != nil {
		item.CategoryID = input.CategoryID
	}
	if input.Note != nil {
		item.Note = input.Note
	}
	if input.Favorite != nil {
		item.Favorite = *input.Favorite
	}

	var newFields []*domain.Field
	if input.Fields != nil {
		newFields = make([]*domain.Field, 0, len(*input.Fields))
		for _, fieldInput := range *input.Fields {
			field, err := uc.codec.encode(item.ID, fieldInput)
			if err != nil {
				return nil, err
			}
			newFields = append(newFields, field)
		}
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.itemRepo.Update(ctx, item); err != nil {
			return err
		}
		if input.Fields == nil {
			return nil
		}
		if err := uc.fieldRepo.DeleteByItem(ctx, item.ID); err != nil {
			return err
		}
		for _, field := range newFields {
			if err := uc.fieldRepo.Create(ctx, field); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := newFields
	if input.Fields == nil {
		fields, err = uc.fieldRepo.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
	}

	return uc.buildDetails(ctx, item, fields)
}

// ToggleFavorite flips the favorite flag on an item owned by the user.
// Grantees cannot change it, whatever their access level.
func (uc *itemUseCase) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (*domain.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, domain.ErrItemNotFound
	}

	item.Favorite = !item.Favorite
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem soft deletes an item owned by the user. Fields and grants stay
// in place but become unreachable because every read path checks the item
// first.
func (uc *itemUseCase) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.IsOwnedBy(userID) {
		return domain.ErrItemNotFound
	}

	return uc.itemRepo.SoftDelete(ctx, itemID)
}

// buildDetails assembles the complete projection: category resolved (dangling
// references read as no category) and sensitive values decrypted.
func (uc *itemUseCase) buildDetails(
	ctx context.Context,
	item *domain.Item,
	fields []*domain.Field,
) (*ItemDetails, error) {
	details := &ItemDetails{Item: item}

	if item.CategoryID != nil {
		category, err := uc.categoryReader.GetByID(ctx, *item.CategoryID)
		switch {
		case err == nil:
			details.Category = category
		case errors.Is(err, apperrors.ErrNotFound):
			// category was deleted after the item pointed at it
		default:
			return nil, err
		}
	}

	details.Fields = make([]*domain.Field, 0, len(fields))
	for _, field := range fields {
		details.Fields = append(details.Fields, uc.codec.decode(ctx, field))
	}

	return details, nil
}
