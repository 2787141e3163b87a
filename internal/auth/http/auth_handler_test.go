package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/familyvault/internal/auth/domain"
	"github.com/allisson/familyvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/familyvault/internal/auth/usecase"
	userDomain "github.com/allisson/familyvault/internal/user/domain"
	userDto "github.com/allisson/familyvault/internal/user/http/dto"
	userUseCase "github.com/allisson/familyvault/internal/user/usecase"
)

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*authUseCase.LoginOutput, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.LoginOutput), args.Error(1)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockUserUseCase is a mock implementation of the user usecase.UseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) RegisterUser(
	ctx context.Context,
	input userUseCase.RegisterUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	input userUseCase.UpdateUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(
	ctx context.Context,
	search string,
	offset, limit int,
) ([]*userDomain.User, error) {
	args := m.Called(ctx, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*AuthHandler, *MockAuthUseCase, *MockUserUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockAuth := &MockAuthUseCase{}
	mockUsers := &MockUserUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthHandler(mockAuth, mockUsers, logger), mockAuth, mockUsers
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestAuthHandler_LoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockAuth, _ := setupTestHandler(t)

		user := &userDomain.User{
			ID:     uuid.Must(uuid.NewV7()),
			Name:   "John Doe",
			Email:  "john@example.com",
			Active: true,
		}
		output := &authUseCase.LoginOutput{
			AccessToken: "signed-token",
			TokenType:   "bearer",
			ExpiresAt:   time.Now().Add(30 * time.Minute).UTC(),
			User:        user,
		}

		mockAuth.On("Login", mock.Anything, "john@example.com", "SecurePass123").
			Return(output, nil)

		request := dto.LoginRequest{Email: "john@example.com", Password: "SecurePass123"}
		c, w := createTestContext(http.MethodPost, "/v1/auth/login", request)
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed-token", response.AccessToken)
		assert.Equal(t, "bearer", response.TokenType)
		assert.Equal(t, user.ID, response.User.ID)

		mockAuth.AssertExpectations(t)
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		handler, mockAuth, _ := setupTestHandler(t)

		mockAuth.On("Login", mock.Anything, "john@example.com", "WrongPass123").
			Return(nil, authDomain.ErrInvalidCredentials)

		request := dto.LoginRequest{Email: "john@example.com", Password: "WrongPass123"}
		c, w := createTestContext(http.MethodPost, "/v1/auth/login", request)
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		handler, mockAuth, _ := setupTestHandler(t)

		request := dto.LoginRequest{Email: "not-an-email", Password: "SecurePass123"}
		c, w := createTestContext(http.MethodPost, "/v1/auth/login", request)
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockAuth.AssertNotCalled(t, "Login")
	})
}

func TestAuthHandler_MeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, _ := setupTestHandler(t)

		user := &userDomain.User{
			ID:     uuid.Must(uuid.NewV7()),
			Name:   "John Doe",
			Email:  "john@example.com",
			Active: true,
		}

		c, w := createTestContext(http.MethodGet, "/v1/auth/me", nil)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		handler.MeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response userDto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.ID)
	})

	t.Run("Error_NoUserInContext", func(t *testing.T) {
		handler, _, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/auth/me", nil)
		handler.MeHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_UpdateMeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockUsers := setupTestHandler(t)

		user := &userDomain.User{
			ID:     uuid.Must(uuid.NewV7()),
			Name:   "John Doe",
			Email:  "john@example.com",
			Active: true,
		}
		newName := "Johnny Doe"
		updated := &userDomain.User{
			ID:     user.ID,
			Name:   newName,
			Email:  user.Email,
			Active: true,
		}

		mockUsers.On("UpdateUser", mock.Anything, user.ID, userUseCase.UpdateUserInput{Name: &newName}).
			Return(updated, nil)

		request := userDto.UpdateUserRequest{Name: &newName}
		c, w := createTestContext(http.MethodPatch, "/v1/auth/me", request)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		handler.UpdateMeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response userDto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, newName, response.Name)

		mockUsers.AssertExpectations(t)
	})

	t.Run("Error_NoUserInContext", func(t *testing.T) {
		handler, _, mockUsers := setupTestHandler(t)

		newName := "Johnny Doe"
		request := userDto.UpdateUserRequest{Name: &newName}
		c, w := createTestContext(http.MethodPatch, "/v1/auth/me", request)
		handler.UpdateMeHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUsers.AssertNotCalled(t, "UpdateUser")
	})
}
