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
	userDomain "github.com/allisson/familyvault/internal/user/domain"
	"github.com/allisson/familyvault/internal/vault/domain"
	"github.com/allisson/familyvault/internal/vault/http/dto"
	"github.com/allisson/familyvault/internal/vault/usecase"
)

// MockItemUseCase is a mock implementation of usecase.ItemUseCase
type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) CreateItem(
	ctx context.Context,
	userID uuid.UUID,
	input usecase.CreateItemInput,
) (*usecase.ItemDetails, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ItemDetails), args.Error(1)
}

func (m *MockItemUseCase) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*usecase.ItemDetails, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ItemDetails), args.Error(1)
}

func (m *MockItemUseCase) ListItems(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ItemFilter,
) ([]*domain.Item, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Item), args.Error(1)
}

func (m *MockItemUseCase) ListSharedItems(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Item, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Item), args.Error(1)
}

func (m *MockItemUseCase) UpdateItem(
	ctx context.Context,
	userID, itemID uuid.UUID,
	input usecase.UpdateItemInput,
) (*usecase.ItemDetails, error) {
	args := m.Called(ctx, userID, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ItemDetails), args.Error(1)
}

func (m *MockItemUseCase) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemUseCase) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func setupItemHandler(t *testing.T) (*ItemHandler, *MockItemUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &MockItemUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewItemHandler(mockUseCase, logger), mockUseCase
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

func testItem(ownerID uuid.UUID) *domain.Item {
	return &domain.Item{
		ID:      uuid.Must(uuid.NewV7()),
		OwnerID: ownerID,
		Title:   "Bank account",
	}
}

func TestItemHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		item := testItem(user.ID)
		details := &usecase.ItemDetails{Item: item, Fields: []*domain.Field{}}

		mockUseCase.On("CreateItem", mock.Anything, user.ID, mock.AnythingOfType("usecase.CreateItemInput")).
			Return(details, nil)

		body := dto.CreateItemRequest{
			Title: "Bank account",
			Fields: []dto.FieldRequest{
				{Label: "password", Value: "s3cret!", Type: "password"},
			},
		}
		c, w := createTestContext(http.MethodPost, "/v1/items", body, user)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.ItemDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, item.ID, response.ID)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		handler, _ := setupItemHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/items", dto.CreateItemRequest{Title: "x"}, nil)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidCategoryID", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		badCategory := "not-a-uuid"

		body := dto.CreateItemRequest{Title: "Bank account", CategoryID: &badCategory}
		c, w := createTestContext(http.MethodPost, "/v1/items", body, user)

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestItemHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		item := testItem(user.ID)
		details := &usecase.ItemDetails{
			Item: item,
			Fields: []*domain.Field{
				{ID: uuid.Must(uuid.NewV7()), ItemID: item.ID, Label: "password", Value: "s3cret!", Type: domain.FieldTypePassword, Sensitive: true},
			},
		}

		mockUseCase.On("GetItem", mock.Anything, user.ID, item.ID).Return(details, nil)

		c, w := createTestContext(http.MethodGet, "/v1/items/"+item.ID.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: item.ID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ItemDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Fields, 1)
		assert.Equal(t, "s3cret!", response.Fields[0].Value)
	})

	t.Run("NotFound", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetItem", mock.Anything, user.ID, itemID).Return(nil, domain.ErrItemNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/items/"+itemID.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: itemID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		handler, _ := setupItemHandler(t)
		user := testUser()

		c, w := createTestContext(http.MethodGet, "/v1/items/not-a-uuid", nil, user)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemHandler_ListHandler(t *testing.T) {
	t.Run("Success_WithFilters", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		categoryID := uuid.Must(uuid.NewV7())
		items := []*domain.Item{testItem(user.ID)}

		mockUseCase.On("ListItems", mock.Anything, user.ID, mock.MatchedBy(func(filter domain.ItemFilter) bool {
			return filter.CategoryID != nil && *filter.CategoryID == categoryID &&
				filter.Favorite != nil && *filter.Favorite &&
				filter.TitleSearch == "bank" &&
				filter.Offset == 0 && filter.Limit == 50
		})).Return(items, nil)

		path := "/v1/items?category_id=" + categoryID.String() + "&favorite=true&search=bank"
		c, w := createTestContext(http.MethodGet, path, nil, user)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ItemListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Items, 1)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("InvalidFavorite", func(t *testing.T) {
		handler, _ := setupItemHandler(t)
		user := testUser()

		c, w := createTestContext(http.MethodGet, "/v1/items?favorite=maybe", nil, user)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemHandler_ListSharedHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		items := []*domain.Item{testItem(uuid.Must(uuid.NewV7()))}

		mockUseCase.On("ListSharedItems", mock.Anything, user.ID, 0, 50).Return(items, nil)

		c, w := createTestContext(http.MethodGet, "/v1/items/shared", nil, user)

		handler.ListSharedHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ItemListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Items, 1)
	})
}

func TestItemHandler_UpdateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		item := testItem(user.ID)
		item.Title = "New title"
		details := &usecase.ItemDetails{Item: item, Fields: []*domain.Field{}}
		newTitle := "New title"

		mockUseCase.On("UpdateItem", mock.Anything, user.ID, item.ID, mock.AnythingOfType("usecase.UpdateItemInput")).
			Return(details, nil)

		c, w := createTestContext(http.MethodPut, "/v1/items/"+item.ID.String(), dto.UpdateItemRequest{Title: &newTitle}, user)
		c.Params = gin.Params{{Key: "id", Value: item.ID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ItemDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "New title", response.Title)
	})

	t.Run("NoAccessLooksLikeMissingItem", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		itemID := uuid.Must(uuid.NewV7())
		newTitle := "Hijacked"

		mockUseCase.On("UpdateItem", mock.Anything, user.ID, itemID, mock.AnythingOfType("usecase.UpdateItemInput")).
			Return(nil, domain.ErrItemNotFound)

		c, w := createTestContext(http.MethodPut, "/v1/items/"+itemID.String(), dto.UpdateItemRequest{Title: &newTitle}, user)
		c.Params = gin.Params{{Key: "id", Value: itemID.String()}}

		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestItemHandler_ToggleFavoriteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		item := testItem(user.ID)
		item.Favorite = true

		mockUseCase.On("ToggleFavorite", mock.Anything, user.ID, item.ID).Return(item, nil)

		c, w := createTestContext(http.MethodPost, "/v1/items/"+item.ID.String()+"/favorite", nil, user)
		c.Params = gin.Params{{Key: "id", Value: item.ID.String()}}

		handler.ToggleFavoriteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Favorite)
	})
}

func TestItemHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("DeleteItem", mock.Anything, user.ID, itemID).Return(nil)

		c, w := createTestContext(http.MethodDelete, "/v1/items/"+itemID.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: itemID.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("NotOwnerLooksLikeMissingItem", func(t *testing.T) {
		handler, mockUseCase := setupItemHandler(t)
		user := testUser()
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("DeleteItem", mock.Anything, user.ID, itemID).Return(domain.ErrItemNotFound)

		c, w := createTestContext(http.MethodDelete, "/v1/items/"+itemID.String(), nil, user)
		c.Params = gin.Params{{Key: "id", Value: itemID.String()}}

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
