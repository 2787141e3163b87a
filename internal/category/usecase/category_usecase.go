// Package usecase implements category business logic: visibility of seeded
// system categories, per-user management and name uniqueness.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/category/domain"

	appValidation "github.com/allisson/familyvault/internal/validation"
)

// CreateCategoryInput contains the input data for category creation
type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// UpdateCategoryInput contains the input data for a partial category update.
// Nil pointers leave the current value untouched.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// UseCase defines the interface for category business logic operations
type UseCase interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryRepository interface defines category repository operations
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CategoryUseCase handles category-related business logic
type CategoryUseCase struct {
	categoryRepo CategoryRepository
}

// NewCategoryUseCase creates a new CategoryUseCase
func NewCategoryUseCase(categoryRepo CategoryRepository) UseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

func (uc *CategoryUseCase) validateCreateCategoryInput(input CreateCategoryInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(2, 100).Error("name must be between 2 and 100 characters"),
		),
		validation.Field(&input.Icon,
			validation.Length(0, 50).Error("icon must be at most 50 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 255).Error("description must be at most 255 characters"),
		),
		validation.Field(&input.Color, appValidation.HexColor),
	)
	return appValidation.WrapValidationError(err)
}

func (uc *CategoryUseCase) validateUpdateCategoryInput(input UpdateCategoryInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			appValidation.NotBlank,
			validation.Length(2, 100).Error("name must be between 2 and 100 characters"),
		),
		validation.Field(&input.Icon,
			validation.Length(0, 50).Error("icon must be at most 50 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 255).Error("description must be at most 255 characters"),
		),
		validation.Field(&input.Color, appValidation.HexColor),
	)
	return appValidation.WrapValidationError(err)
}

// CreateCategory creates a personal category for the user. The name must be
// unique among the user's own live categories; clashing with a system
// category name is allowed.
func (uc *CategoryUseCase) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	input CreateCategoryInput,
) (*domain.Category, error) {
	if err := uc.validateCreateCategoryInput(input); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)

	taken, err := uc.categoryRepo.ExistsByName(ctx, userID, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrCategoryNameTaken
	}

	color := domain.DefaultColor
	if input.Color != nil && *input.Color != "" {
		color = *input.Color
	}

	category := &domain.Category{
		ID:          uuid.Must(uuid.NewV7()),
		OwnerID:     &userID,
		Name:        name,
		Icon:        input.Icon,
		Description: input.Description,
		Color:       color,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a live category by ID
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListCategories retrieves the system categories plus the user's own, by name
func (uc *CategoryUseCase) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return uc.categoryRepo.ListVisible(ctx, userID)
}

// UpdateCategory applies a partial update to a category owned by the user.
// System categories and categories owned by other users are off limits.
func (uc *CategoryUseCase) UpdateCategory(
	ctx context.Context,
	userID, id uuid.UUID,
	input UpdateCategoryInput,
) (*domain.Category, error) {
	if err := uc.validateUpdateCategoryInput(input); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.IsSystem() {
		return nil, domain.ErrSystemCategoryImmutable
	}
	if !category.IsOwnedBy(userID) {
		return nil, domain.ErrCategoryAccessDenied
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != category.Name {
			taken, err := uc.categoryRepo.ExistsByName(ctx, userID, name, category.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrCategoryNameTaken
			}
		}
		category.Name = name
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.Color != nil {
		category.Color = *input.Color
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft deletes a category owned by the user. Items pointing at
// the category keep their reference; reads tolerate the dangling pointer.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if category.IsSystem() {
		return domain.ErrSystemCategoryImmutable
	}
	if !category.IsOwnedBy(userID) {
		return domain.ErrCategoryAccessDenied
	}

	return uc.categoryRepo.SoftDelete(ctx, id)
}

// SystemCategories returns the seeded system category set.
func SystemCategories() []*domain.Category {
	names := []struct {
		name string
		icon string
	}{
		{"Banking", "bank"},
		{"Documents", "file-text"},
		{"Emails", "mail"},
		{"Health", "heart"},
		{"Social Media", "users"},
		{"Streaming", "play"},
		{"Work", "briefcase"},
		{"Other", "folder"},
	}

	categories := make([]*domain.Category, 0, len(names))
	for _, entry := range names {
		icon := entry.icon
		categories = append(categories, &domain.Category{
			ID:    uuid.Must(uuid.NewV7()),
			Name:  entry.name,
			Icon:  &icon,
			Color: domain.DefaultColor,
		})
	}
	return categories
}
