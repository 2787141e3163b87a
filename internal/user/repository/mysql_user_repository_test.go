package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/familyvault/internal/user/domain"
)

func TestMySQLUserRepositoryCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user := newTestUser()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), user.Name, user.Email, user.PasswordHash, user.Active).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewMySQLUserRepository(db)
		err = repo.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// The unique index on users.email raises MySQL error 1062
		user := newTestUser()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), user.Name, user.Email, user.PasswordHash, user.Active).
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice@example.com' for key 'users.idx_users_email'"))

		repo := NewMySQLUserRepository(db)
		err = repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
