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

	"github.com/allisson/familyvault/internal/user/domain"
	"github.com/allisson/familyvault/internal/user/http/dto"
	"github.com/allisson/familyvault/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) RegisterUser(
	ctx context.Context,
	input usecase.RegisterUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	input usecase.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(
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

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*UserHandler, *MockUserUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockUserUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserHandler(mockUseCase, logger), mockUseCase
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

func TestUserHandler_RegisterHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		request := dto.RegisterUserRequest{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "SecurePass123",
		}
		expectedUser := &domain.User{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "John Doe",
			Email:     "john@example.com",
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}

		mockUseCase.On("RegisterUser", mock.Anything, dto.ToRegisterUserInput(request)).
			Return(expectedUser, nil)

		c, w := createTestContext(http.MethodPost, "/v1/auth/register", request)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expectedUser.ID, response.ID)
		assert.Equal(t, expectedUser.Email, response.Email)
		assert.True(t, response.Active)
		assert.NotContains(t, w.Body.String(), "password")

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader([]byte("{not-json")))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "RegisterUser")
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.RegisterUserRequest{
			Name:     "John Doe",
			Email:    "not-an-email",
			Password: "SecurePass123",
		}

		c, w := createTestContext(http.MethodPost, "/v1/auth/register", request)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "RegisterUser")
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.RegisterUserRequest{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "SecurePass123",
		}

		mockUseCase.On("RegisterUser", mock.Anything, dto.ToRegisterUserInput(request)).
			Return(nil, domain.ErrEmailAlreadyRegistered)

		c, w := createTestContext(http.MethodPost, "/v1/auth/register", request)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestUserHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		expectedUser := &domain.User{
			ID:     uuid.Must(uuid.NewV7()),
			Name:   "John Doe",
			Email:  "john@example.com",
			Active: true,
		}

		mockUseCase.On("GetUserByID", mock.Anything, expectedUser.ID).Return(expectedUser, nil)

		c, w := createTestContext(http.MethodGet, "/v1/users/"+expectedUser.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: expectedUser.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expectedUser.ID, response.ID)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/users/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GetUserByID")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("GetUserByID", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/users/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestUserHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		users := []*domain.User{
			{ID: uuid.Must(uuid.NewV7()), Name: "Jane Doe", Email: "jane@example.com", Active: true},
			{ID: uuid.Must(uuid.NewV7()), Name: "John Doe", Email: "john@example.com", Active: true},
		}

		mockUseCase.On("ListUsers", mock.Anything, "doe", 0, 50).Return(users, nil)

		c, w := createTestContext(http.MethodGet, "/v1/users?search=doe", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Users, 2)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/users?limit=abc", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "ListUsers")
	})
}
