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

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	"github.com/allisson/familyvault/internal/category/domain"
	"github.com/allisson/familyvault/internal/category/http/dto"
	"github.com/allisson/familyvault/internal/category/usecase"
	userDomain "github.com/allisson/familyvault/internal/user/domain"
)

// MockCategoryUseCase is a mock implementation of usecase.UseCase
type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	input usecase.CreateCategoryInput,
) (*domain.Category, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) UpdateCategory(
	ctx context.Context,
	userID, id uuid.UUID,
	input usecase.UpdateCategoryInput,
) (*domain.Category, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryUseCase) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func setupTestHandler(t *testing.T) (*CategoryHandler, *MockCategoryUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockCategoryUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCategoryHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(
	method, path string,
	body interface{},
	user *userDomain.User,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(authHTTP.WithUser(req.Context(), user))
	}
	c.Request = req

	return c, w
}

func testUser() *userDomain.User {
	return &userDomain.User{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   "John Doe",
		Email:  "john@example.com",
		Active: true,
	}
}

func TestCategoryHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		request := dto.CreateCategoryRequest{Name: "Banking"}
		expected := &domain.Category{
			ID:      uuid.Must(uuid.NewV7()),
			OwnerID: &user.ID,
			Name:    "Banking",
			Color:   domain.DefaultColor,
		}

		mockUseCase.On("CreateCategory", mock.Anything, user.ID, request.ToCreateCategoryInput()).
			Return(expected, nil)

		c, w := createTestContext(http.MethodPost, "/v1/categories", request, user)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CategoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expected.ID, response.ID)
		assert.False(t, response.System)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.CreateCategoryRequest{Name: "Banking"}
		c, w := createTestContext(http.MethodPost, "/v1/categories", request, nil)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "CreateCategory")
	})

	t.Run("Error_NameConflict", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		request := dto.CreateCategoryRequest{Name: "Banking"}
		mockUseCase.On("CreateCategory", mock.Anything, user.ID, request.ToCreateCategoryInput()).
			Return(nil, domain.ErrCategoryNameTaken)

		c, w := createTestContext(http.MethodPost, "/v1/categories", request, user)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		request := dto.CreateCategoryRequest{Name: "a"}
		c, w := createTestContext(http.MethodPost, "/v1/categories", request, user)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "CreateCategory")
	})
}

func TestCategoryHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		expected := &domain.Category{
			ID:    uuid.Must(uuid.NewV7()),
			Name:  "Documents",
			Color: domain.DefaultColor,
		}

		mockUseCase.On("GetCategory", mock.Anything, expected.ID).Return(expected, nil)

		c, w := createTestContext(http.MethodGet, "/v1/categories/"+expected.ID.String(), nil, testUser())
		c.Params = gin.Params{{Key: "id", Value: expected.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.CategoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.System)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("GetCategory", mock.Anything, id).Return(nil, domain.ErrCategoryNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/categories/"+id.String(), nil, testUser())
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/categories/not-a-uuid", nil, testUser())
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GetCategory")
	})
}

func TestCategoryHandler_UpdateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		newName := "Finance"
		request := dto.UpdateCategoryRequest{Name: &newName}
		expected := &domain.Category{
			ID:      uuid.Must(uuid.NewV7()),
			OwnerID: &user.ID,
			Name:    newName,
			Color:   domain.DefaultColor,
		}

		mockUseCase.On("UpdateCategory", mock.Anything, user.ID, expected.ID, request.ToUpdateCategoryInput()).
			Return(expected, nil)

		c, w := createTestContext(http.MethodPatch, "/v1/categories/"+expected.ID.String(), request, user)
		c.Params = gin.Params{{Key: "id", Value: expected.ID.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_SystemCategory", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		newName := "Finance"
		request := dto.UpdateCategoryRequest{Name: &newName}
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("UpdateCategory", mock.Anything, user.ID, id, request.ToUpdateCategoryInput()).
			Return(nil, domain.ErrSystemCategoryImmutable)

		c, w := createTestContext(http.MethodPatch, "/v1/categories/"+id.String(), request, user)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCategoryHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("DeleteCategory", mock.Anything, user.ID, id).Return(nil)

		c, w := createTestContext(http.MethodDelete, "/v1/categories/"+id.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testUser()

		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("DeleteCategory", mock.Anything, user.ID, id).
			Return(domain.ErrCategoryAccessDenied)

		c, w := createTestContext(http.MethodDelete, "/v1/categories/"+id.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCategoryHandler_ListHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	user := testUser()

	expected := []*domain.Category{
		{ID: uuid.Must(uuid.NewV7()), Name: "Banking", Color: domain.DefaultColor},
		{ID: uuid.Must(uuid.NewV7()), OwnerID: &user.ID, Name: "Crypto", Color: domain.DefaultColor},
	}

	mockUseCase.On("ListCategories", mock.Anything, user.ID).Return(expected, nil)

	c, w := createTestContext(http.MethodGet, "/v1/categories", nil, user)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Categories, 2)
	assert.True(t, response.Categories[0].System)
	assert.False(t, response.Categories[1].System)
}
