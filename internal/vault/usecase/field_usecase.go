package usecase

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/metrics"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
	appValidation "github.com/allisson/familyvault/internal/validation"
)

// UpdateFieldInput contains the input data for a partial field update. Nil
// pointers leave the current value untouched.
type UpdateFieldInput struct {
	Label     *string           `json:"label"`
	Value     *string           `json:"value"`
	Type      *domain.FieldType `json:"type"`
	Sensitive *bool             `json:"sensitive"`
	Position  *string           `json:"position"`
}

// FieldUseCase defines the interface for field business logic operations
type FieldUseCase interface {
	ListFields(ctx context.Context, userID, itemID uuid.UUID) ([]*domain.Field, error)
	CreateField(ctx context.Context, userID, itemID uuid.UUID, input FieldInput) (*domain.Field, error)
	UpdateField(ctx context.Context, userID, itemID, fieldID uuid.UUID, input UpdateFieldInput) (*domain.Field, error)
	DeleteField(ctx context.Context, userID, itemID, fieldID uuid.UUID) error
}

// fieldUseCase handles field-related business logic
type fieldUseCase struct {
	fieldRepo FieldRepository
	access    *accessResolver
	codec     *fieldCodec
}

// NewFieldUseCase creates a new FieldUseCase
func NewFieldUseCase(
	itemRepo ItemRepository,
	fieldRepo FieldRepository,
	permissionReader PermissionReader,
	cipher FieldCipher,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) FieldUseCase {
	return &fieldUseCase{
		fieldRepo: fieldRepo,
		access:    newAccessResolver(itemRepo, permissionReader),
		codec: &fieldCodec{
			cipher:          cipher,
			businessMetrics: businessMetrics,
			logger:          logger,
		},
	}
}

func (uc *fieldUseCase) validateUpdateFieldInput(input UpdateFieldInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Label,
			// A present-but-empty label would blank the field on update
			validation.NilOrNotEmpty.Error("field label cannot be blank"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("field label must be at most 100 characters"),
		),
		validation.Field(&input.Type, validation.By(validateOptionalFieldType)),
		validation.Field(&input.Position,
			validation.Length(0, 50).Error("field position must be at most 50 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

func validateOptionalFieldType(value interface{}) error {
	fieldType, ok := value.(*domain.FieldType)
	if !ok || fieldType == nil {
		return nil
	}
	if !fieldType.IsValid() {
		return validation.NewError("validation_field_type", "unsupported field type")
	}
	return nil
}

// ListFields retrieves the fields of an item the user has access to, with
// sensitive values decrypted
func (uc *fieldUseCase) ListFields(ctx context.Context, userID, itemID uuid.UUID) ([]*domain.Field, error) {
	if _, err := uc.access.ResolveAccess(ctx, itemID, userID, false); err != nil {
		return nil, err
	}

	fields, err := uc.fieldRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	decrypted := make([]*domain.Field, 0, len(fields))
	for _, field := range fields {
		decrypted = append(decrypted, uc.codec.decode(ctx, field))
	}
	return decrypted, nil
}

// CreateField adds a field to an item the user can edit
func (uc *fieldUseCase) CreateField(
	ctx context.Context,
	userID, itemID uuid.UUID,
	input FieldInput,
) (*domain.Field, error) {
	if err := validateFieldInputs([]FieldInput{input}); err != nil {
		return nil, err
	}

	if _, err := uc.access.ResolveAccess(ctx, itemID, userID, true); err != nil {
		return nil, err
	}

	field, err := uc.codec.encode(itemID, input)
	if err != nil {
		return nil, err
	}

	if err := uc.fieldRepo.Create(ctx, field); err != nil {
		return nil, err
	}

	return uc.codec.decode(ctx, field), nil
}

// UpdateField applies a partial update to a field on an item the user can
// edit. The stored representation is derived from the effective sensitivity
// and the effective plaintext, so a value is never encrypted twice and flag
// flips re-encode the current value.
func (uc *fieldUseCase) UpdateField(
	ctx context.Context,
	userID, itemID, fieldID uuid.UUID,
	input UpdateFieldInput,
) (*domain.Field, error) {
	if err := uc.validateUpdateFieldInput(input); err != nil {
		return nil, err
	}

	if _, err := uc.access.ResolveAccess(ctx, itemID, userID, true); err != nil {
		return nil, err
	}

	field, err := uc.fieldRepo.GetByID(ctx, itemID, fieldID)
	if err != nil {
		return nil, err
	}

	plaintext := uc.codec.plaintext(ctx, field)
	if input.Value != nil {
		plaintext = *input.Value
	}

	sensitive := field.Sensitive
	if input.Sensitive != nil {
		sensitive = *input.Sensitive
	}

	if input.Label != nil {
		field.Label = strings.TrimSpace(*input.Label)
	}
	if input.Type != nil {
		field.Type = *input.Type
	}
	if input.Position != nil {
		field.Position = *input.Position
	}

	field.Sensitive = sensitive
	field.Value = plaintext
	if sensitive {
		encrypted, err := uc.codec.cipher.Encrypt(plaintext)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt field value")
		}
		field.Value = encrypted
	}

	if err := uc.fieldRepo.Update(ctx, field); err != nil {
		return nil, err
	}

	return uc.codec.decode(ctx, field), nil
}

// DeleteField soft deletes a field on an item the user can edit
func (uc *fieldUseCase) DeleteField(ctx context.Context, userID, itemID, fieldID uuid.UUID) error {
	if _, err := uc.access.ResolveAccess(ctx, itemID, userID, true); err != nil {
		return err
	}

	return uc.fieldRepo.SoftDelete(ctx, itemID, fieldID)
}
