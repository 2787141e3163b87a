package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/metrics"
	"github.com/allisson/familyvault/internal/vault/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// fieldCodec applies the storage rules shared by item and field operations:
// sensitive values are encrypted on the way in and decrypted on the way out,
// with a fail-open fallback for values stored before encryption was enabled.
type fieldCodec struct {
	cipher          FieldCipher
	businessMetrics metrics.BusinessMetrics
	logger          *slog.Logger
}

// encode turns client input into the stored representation, encrypting the
// value when the field is sensitive.
func (c *fieldCodec) encode(itemID uuid.UUID, input FieldInput) (*domain.Field, error) {
	sensitive := defaultSensitive(input.Type)
	if input.Sensitive != nil {
		sensitive = *input.Sensitive
	}

	value := input.Value
	if sensitive {
		encrypted, err := c.cipher.Encrypt(value)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt field value")
		}
		value = encrypted
	}

	position := input.Position
	if position == "" {
		position = "0"
	}

	return &domain.Field{
		ID:        uuid.Must(uuid.NewV7()),
		ItemID:    itemID,
		Label:     strings.TrimSpace(input.Label),
		Value:     value,
		Type:      input.Type,
		Sensitive: sensitive,
		Position:  position,
	}, nil
}

// decode returns a copy of the field with the value decrypted. When
// decryption fails the stored value is returned as-is: values written before
// encryption was enabled are plaintext, and losing access to them would be
// worse than showing what is stored.
func (c *fieldCodec) decode(ctx context.Context, field *domain.Field) *domain.Field {
	decrypted := *field
	if !field.Sensitive {
		return &decrypted
	}

	plaintext, err := c.cipher.Decrypt(field.Value)
	if err != nil {
		c.logger.Warn("field decrypt fallback",
			"field_id", field.ID,
			"item_id", field.ItemID,
			"error", err,
		)
		c.businessMetrics.RecordOperation(ctx, "vault", "field_decrypt_fallback", "fallback")
		return &decrypted
	}

	decrypted.Value = plaintext
	return &decrypted
}

// plaintext recovers the current plaintext of a stored field, falling back to
// the stored value when it never was a cipher token.
func (c *fieldCodec) plaintext(ctx context.Context, field *domain.Field) string {
	if !field.Sensitive || !c.cipher.IsCipherToken(field.Value) {
		return field.Value
	}
	return c.decode(ctx, field).Value
}

// defaultSensitive is the sensitivity applied when the client does not say.
func defaultSensitive(fieldType domain.FieldType) bool {
	return fieldType == domain.FieldTypePassword
}
