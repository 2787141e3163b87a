// Package dto provides data transfer objects for the vault HTTP layer.
package dto

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/vault/domain"
	"github.com/allisson/familyvault/internal/vault/usecase"
)

// FieldRequest represents a field as submitted by the client
type FieldRequest struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	Sensitive *bool  `json:"sensitive"`
	Position  string `json:"position"`
}

// CreateItemRequest represents the item creation request payload
type CreateItemRequest struct {
	Title      string         `json:"title"`
	CategoryID *string        `json:"category_id"`
	Note       *string        `json:"note"`
	Favorite   bool           `json:"favorite"`
	Fields     []FieldRequest `json:"fields"`
}

// UpdateItemRequest represents the item update request payload. An empty
// category_id detaches the item from its category; an absent one leaves it
// alone. A present fields array replaces the whole field set.
type UpdateItemRequest struct {
	Title      *string         `json:"title"`
	CategoryID *string         `json:"category_id"`
	Note       *string         `json:"note"`
	Favorite   *bool           `json:"favorite"`
	Fields     *[]FieldRequest `json:"fields"`
}

// CreateFieldRequest represents the field creation request payload
type CreateFieldRequest = FieldRequest

// UpdateFieldRequest represents the field update request payload
type UpdateFieldRequest struct {
	Label     *string `json:"label"`
	Value     *string `json:"value"`
	Type      *string `json:"type"`
	Sensitive *bool   `json:"sensitive"`
	Position  *string `json:"position"`
}

func toFieldInput(req FieldRequest) usecase.FieldInput {
	return usecase.FieldInput{
		Label:     req.Label,
		Value:     req.Value,
		Type:      domain.FieldType(req.Type),
		Sensitive: req.Sensitive,
		Position:  req.Position,
	}
}

func toFieldInputs(reqs []FieldRequest) []usecase.FieldInput {
	inputs := make([]usecase.FieldInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, toFieldInput(req))
	}
	return inputs
}

// ToCreateItemInput converts the request DTO to a use case input
func (r *CreateItemRequest) ToCreateItemInput() (usecase.CreateItemInput, error) {
	input := usecase.CreateItemInput{
		Title:    r.Title,
		Note:     r.Note,
		Favorite: r.Favorite,
		Fields:   toFieldInputs(r.Fields),
	}

	if r.CategoryID != nil && *r.CategoryID != "" {
		categoryID, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return usecase.CreateItemInput{}, fmt.Errorf("invalid category id")
		}
		input.CategoryID = &categoryID
	}

	return input, nil
}

// ToUpdateItemInput converts the request DTO to a use case input
func (r *UpdateItemRequest) ToUpdateItemInput() (usecase.UpdateItemInput, error) {
	input := usecase.UpdateItemInput{
		Title:    r.Title,
		Note:     r.Note,
		Favorite: r.Favorite,
	}

	if r.CategoryID != nil {
		if *r.CategoryID == "" {
			input.ClearCategory = true
		} else {
			categoryID, err := uuid.Parse(*r.CategoryID)
			if err != nil {
				return usecase.UpdateItemInput{}, fmt.Errorf("invalid category id")
			}
			input.CategoryID = &categoryID
		}
	}

	if r.Fields != nil {
		fields := toFieldInputs(*r.Fields)
		input.Fields = &fields
	}

	return input, nil
}

// ToFieldInput converts the request DTO to a use case input
func (r *FieldRequest) ToFieldInput() usecase.FieldInput {
	return toFieldInput(*r)
}

// ToUpdateFieldInput converts the request DTO to a use case input
func (r *UpdateFieldRequest) ToUpdateFieldInput() usecase.UpdateFieldInput {
	input := usecase.UpdateFieldInput{
		Label:     r.Label,
		Value:     r.Value,
		Sensitive: r.Sensitive,
		Position:  r.Position,
	}
	if r.Type != nil {
		fieldType := domain.FieldType(*r.Type)
		input.Type = &fieldType
	}
	return input
}
