package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/familyvault/internal/user/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(
	ctx context.Context,
	search string,
	offset, limit int,
) ([]*domain.User, error) {
	args := m.Called(ctx, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func TestNewUserUseCase(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)
	assert.NotNil(t, useCase)
}

func TestUserUseCase_RegisterUser_Success(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	input := RegisterUserInput{
		Name:     "John Doe",
		Email:    "John@Example.com",
		Password: "SecurePass123",
	}

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := useCase.RegisterUser(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, input.Name, user.Name)
	assert.Equal(t, "John@Example.com", user.Email) // Email is stored exactly as given
	assert.True(t, user.Active)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, input.Password, user.PasswordHash) // Password should be hashed

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_RegisterUser_ValidationError(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterUserInput
	}{
		{
			name:  "MissingName",
			input: RegisterUserInput{Email: "john@example.com", Password: "SecurePass123"},
		},
		{
			name:  "InvalidEmail",
			input: RegisterUserInput{Name: "John Doe", Email: "not-an-email", Password: "SecurePass123"},
		},
		{
			name:  "WeakPassword",
			input: RegisterUserInput{Name: "John Doe", Email: "john@example.com", Password: "weak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := useCase.RegisterUser(ctx, tt.input)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	userRepo.AssertNotCalled(t, "Create")
}

func TestUserUseCase_RegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	input := RegisterUserInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "SecurePass123",
	}

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(domain.ErrEmailAlreadyRegistered)

	user, err := useCase.RegisterUser(ctx, input)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_UpdateUser_Success(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	existing := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "old-hash",
		Active:       true,
	}

	newName := "Johnny Doe"
	newPassword := "NewSecurePass123"

	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := useCase.UpdateUser(ctx, existing.ID, UpdateUserInput{
		Name:     &newName,
		Password: &newPassword,
	})

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, newName, user.Name)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEqual(t, "old-hash", user.PasswordHash)
	assert.NotEqual(t, newPassword, user.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_UpdateUser_NameOnly(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	existing := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "old-hash",
		Active:       true,
	}

	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	// Updating the name alone must not trip the password rules
	newName := "Johnny Doe"
	user, err := useCase.UpdateUser(ctx, existing.ID, UpdateUserInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, user.Name)
	assert.Equal(t, "old-hash", user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestUserUseCase_UpdateUser_ValidationError(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	blank := ""
	weak := "weakpass"

	tests := []struct {
		name  string
		input UpdateUserInput
	}{
		{"BlankName", UpdateUserInput{Name: &blank}},
		{"BlankEmail", UpdateUserInput{Email: &blank}},
		{"BlankPassword", UpdateUserInput{Password: &blank}},
		{"WeakPassword", UpdateUserInput{Password: &weak}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := useCase.UpdateUser(ctx, uuid.Must(uuid.NewV7()), tt.input)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	userRepo.AssertNotCalled(t, "Update")
}

func TestUserUseCase_UpdateUser_EmailTakenByAnotherUser(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	existing := &domain.User{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   "John Doe",
		Email:  "john@example.com",
		Active: true,
	}
	other := &domain.User{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Active: true,
	}

	newEmail := "jane@example.com"

	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("GetByEmail", ctx, newEmail).Return(other, nil)

	user, err := useCase.UpdateUser(ctx, existing.ID, UpdateUserInput{Email: &newEmail})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)

	userRepo.AssertNotCalled(t, "Update")
}

func TestUserUseCase_UpdateUser_EmailFreed(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	existing := &domain.User{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   "John Doe",
		Email:  "john@example.com",
		Active: true,
	}

	newEmail := "new@example.com"

	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("GetByEmail", ctx, newEmail).Return(nil, domain.ErrUserNotFound)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := useCase.UpdateUser(ctx, existing.ID, UpdateUserInput{Email: &newEmail})

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, newEmail, user.Email)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_UpdateUser_NotFound(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	newName := "Johnny Doe"

	userRepo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound)

	user, err := useCase.UpdateUser(ctx, id, UpdateUserInput{Name: &newName})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_GetUserByEmail(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	expectedUser := &domain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Name:  "John Doe",
		Email: "john@example.com",
	}

	userRepo.On("GetByEmail", ctx, "john@example.com").Return(expectedUser, nil)

	user, err := useCase.GetUserByEmail(ctx, "john@example.com")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, expectedUser.ID, user.ID)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_GetUserByID_NotFound(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	notFoundUUID := uuid.Must(uuid.NewV7())

	userRepo.On("GetByID", ctx, notFoundUUID).Return(nil, domain.ErrUserNotFound)

	user, err := useCase.GetUserByID(ctx, notFoundUUID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_ListUsers(t *testing.T) {
	userRepo := &MockUserRepository{}

	useCase, err := NewUserUseCase(userRepo)
	require.NoError(t, err)

	ctx := context.Background()
	expected := []*domain.User{
		{ID: uuid.Must(uuid.NewV7()), Name: "Jane Doe", Email: "jane@example.com"},
		{ID: uuid.Must(uuid.NewV7()), Name: "John Doe", Email: "john@example.com"},
	}

	userRepo.On("List", ctx, "doe", 0, 50).Return(expected, nil)

	users, err := useCase.ListUsers(ctx, "doe", 0, 50)

	assert.NoError(t, err)
	assert.Len(t, users, 2)

	listErr := errors.New("database error")
	userRepo.On("List", ctx, "", 0, 50).Return(nil, listErr)

	users, err = useCase.ListUsers(ctx, "", 0, 50)
	assert.Nil(t, users)
	assert.Equal(t, listErr, err)

	userRepo.AssertExpectations(t)
}
