package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := RegisterUserRequest{
			Name:     "Ana Silva",
			Email:    "ana@example.com",
			Password: "Str0ngpass",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingName", func(t *testing.T) {
		req := RegisterUserRequest{
			Email:    "ana@example.com",
			Password: "Str0ngpass",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		req := RegisterUserRequest{
			Name:     "Ana Silva",
			Email:    "not-an-email",
			Password: "Str0ngpass",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		req := RegisterUserRequest{
			Name:     "Ana Silva",
			Email:    "ana@example.com",
			Password: "weakpass",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	t.Run("Success_NameOnly", func(t *testing.T) {
		name := "Johnny Doe"
		req := UpdateUserRequest{Name: &name}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_EmptyRequest", func(t *testing.T) {
		req := UpdateUserRequest{}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_AllFields", func(t *testing.T) {
		name := "Johnny Doe"
		email := "johnny@example.com"
		password := "Str0ngpass"
		req := UpdateUserRequest{Name: &name, Email: &email, Password: &password}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		blank := ""
		req := UpdateUserRequest{Name: &blank}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_BlankPassword", func(t *testing.T) {
		blank := ""
		req := UpdateUserRequest{Password: &blank}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		weak := "weakpass"
		req := UpdateUserRequest{Password: &weak}

		err := req.Validate()
		assert.Error(t, err)
	})
}
