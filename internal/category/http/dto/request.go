// Package dto provides data transfer objects for the category HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/familyvault/internal/category/usecase"

	appValidation "github.com/allisson/familyvault/internal/validation"
)

// CreateCategoryRequest represents the API request for category creation
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Validate validates the CreateCategoryRequest
func (r *CreateCategoryRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(2, 100).Error("name must be between 2 and 100 characters"),
		),
		validation.Field(&r.Icon,
			validation.Length(0, 50).Error("icon must be at most 50 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 255).Error("description must be at most 255 characters"),
		),
		validation.Field(&r.Color, appValidation.HexColor),
	)
	return appValidation.WrapValidationError(err)
}

// ToCreateCategoryInput converts the request to a use case input
func (r *CreateCategoryRequest) ToCreateCategoryInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:        r.Name,
		Icon:        r.Icon,
		Description: r.Description,
		Color:       r.Color,
	}
}

// UpdateCategoryRequest represents the API request for a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Validate validates the UpdateCategoryRequest
func (r *UpdateCategoryRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			appValidation.NotBlank,
			validation.Length(2, 100).Error("name must be between 2 and 100 characters"),
		),
		validation.Field(&r.Icon,
			validation.Length(0, 50).Error("icon must be at most 50 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 255).Error("description must be at most 255 characters"),
		),
		validation.Field(&r.Color, appValidation.HexColor),
	)
	return appValidation.WrapValidationError(err)
}

// ToUpdateCategoryInput converts the request to a use case input
func (r *UpdateCategoryRequest) ToUpdateCategoryInput() usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		Name:        r.Name,
		Icon:        r.Icon,
		Description: r.Description,
		Color:       r.Color,
	}
}
