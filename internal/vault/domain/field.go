package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// ErrFieldNotFound is returned when a field does not exist on the item.
var ErrFieldNotFound = apperrors.Wrap(apperrors.ErrNotFound, "field not found")

// FieldType classifies the value of a dynamic field.
type FieldType string

// Supported field types.
const (
	FieldTypeText       FieldType = "text"
	FieldTypePassword   FieldType = "password"
	FieldTypeEmail      FieldType = "email"
	FieldTypePhone      FieldType = "phone"
	FieldTypeDate       FieldType = "date"
	FieldTypeNumber     FieldType = "number"
	FieldTypeURL        FieldType = "url"
	FieldTypeNationalID FieldType = "national_id"
	FieldTypeCompanyID  FieldType = "company_id"
	FieldTypeFile       FieldType = "file"
)

// FieldTypes lists every valid field type.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypePassword,
	FieldTypeEmail,
	FieldTypePhone,
	FieldTypeDate,
	FieldTypeNumber,
	FieldTypeURL,
	FieldTypeNationalID,
	FieldTypeCompanyID,
	FieldTypeFile,
}

// IsValid reports whether t is one of the supported field types.
func (t FieldType) IsValid() bool {
	for _, valid := range FieldTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// Field is a labeled value attached to an item. Sensitive fields are stored
// encrypted; Value always holds the stored representation. Position is a
// string-sortable display-order token, not a numeric index.
type Field struct {
	ID        uuid.UUID  `json:"id"`
	ItemID    uuid.UUID  `json:"item_id"`
	Label     string     `json:"label"`
	Value     string     `json:"value"`
	Type      FieldType  `json:"type"`
	Sensitive bool       `json:"sensitive"`
	Position  string     `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// IsDeleted reports whether the field was soft deleted.
func (f *Field) IsDeleted() bool {
	return f.DeletedAt != nil
}
