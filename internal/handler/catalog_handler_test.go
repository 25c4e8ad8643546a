package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"paper-mart/internal/model"
	"paper-mart/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) QueryByCategoryID(ctx context.Context, categoryID int64, page int) (*service.CatalogPage, error) {
	args := m.Called(ctx, categoryID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CatalogPage), args.Error(1)
}

func (m *MockCatalogService) QueryBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) (*service.CatalogPage, error) {
	args := m.Called(ctx, categorySlug, subCategorySlug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CatalogPage), args.Error(1)
}

func (m *MockCatalogService) ProductsByCategoryID(ctx context.Context, categoryID int64, page int) ([]model.Product, error) {
	args := m.Called(ctx, categoryID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) ProductsBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) ([]model.Product, error) {
	args := m.Called(ctx, categorySlug, subCategorySlug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) RootCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error) {
	args := m.Called(ctx, name, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testPage() *service.CatalogPage {
	return &service.CatalogPage{
		Products:     []model.Product{{ID: 1, Name: "Daily Planner"}},
		CategoryID:   2,
		CategoryName: "Planners",
		Page:         1,
		Categories:   []model.Category{{ID: 2, Name: "Planners", Slug: "planners"}},
	}
}

func TestCatalogHandler_CategoryPage(t *testing.T) {
	tests := []struct {
		name           string
		categoryID     string
		query          string
		mockPage       *service.CatalogPage
		mockError      error
		expectedPage   int
		expectedStatus int
	}{
		{
			name:           "Success with default page",
			categoryID:     "2",
			mockPage:       testPage(),
			expectedPage:   1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Success with explicit page",
			categoryID:     "2",
			query:          "?page=3",
			mockPage:       testPage(),
			expectedPage:   3,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unparsable page falls back to 1",
			categoryID:     "2",
			query:          "?page=abc",
			mockPage:       testPage(),
			expectedPage:   1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing category yields 404",
			categoryID:     "99",
			mockError:      model.ErrCategoryNotFound,
			expectedPage:   1,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Store failure yields 500",
			categoryID:     "2",
			mockError:      errors.New("database error"),
			expectedPage:   1,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			if tt.mockPage != nil {
				svc.On("QueryByCategoryID", mock.Anything, mock.AnythingOfType("int64"), tt.expectedPage).
					Return(tt.mockPage, nil)
			} else {
				svc.On("QueryByCategoryID", mock.Anything, mock.AnythingOfType("int64"), tt.expectedPage).
					Return(nil, tt.mockError)
			}

			h := NewCatalogHandler(svc, zerolog.Nop())

			r := httptest.NewRequest(http.MethodGet, "/categoria/"+tt.categoryID+tt.query, nil)
			r = mux.SetURLVars(r, map[string]string{"categoryId": tt.categoryID})
			w := httptest.NewRecorder()

			h.CategoryPage(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var page service.CatalogPage
				require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
				assert.Equal(t, "Planners", page.CategoryName)
			}
		})
	}
}

func TestCatalogHandler_CategoryPage_InvalidID(t *testing.T) {
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc, zerolog.Nop())

	r := httptest.NewRequest(http.MethodGet, "/categoria/abc", nil)
	r = mux.SetURLVars(r, map[string]string{"categoryId": "abc"})
	w := httptest.NewRecorder()

	h.CategoryPage(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "QueryByCategoryID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogHandler_ProductsFragment(t *testing.T) {
	svc := new(MockCatalogService)
	products := []model.Product{{ID: 1, Name: "Daily Planner"}}
	svc.On("ProductsByCategoryID", mock.Anything, int64(2), 2).Return(products, nil)

	h := NewCatalogHandler(svc, zerolog.Nop())

	r := httptest.NewRequest(http.MethodGet, "/categoria/products?categoryId=2&page=2", nil)
	w := httptest.NewRecorder()

	h.ProductsFragment(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []model.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestCatalogHandler_ProductsFragment_MissingCategoryID(t *testing.T) {
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc, zerolog.Nop())

	r := httptest.NewRequest(http.MethodGet, "/categoria/products", nil)
	w := httptest.NewRecorder()

	h.ProductsFragment(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_SlugPage(t *testing.T) {
	tests := []struct {
		name           string
		vars           map[string]string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Category slug only",
			vars:           map[string]string{"categorySlug": "planners"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Category and subcategory slugs",
			vars:           map[string]string{"categorySlug": "planners", "subCategorySlug": "weekly-agendas"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing slug yields 400",
			vars:           map[string]string{"categorySlug": ""},
			mockError:      model.ErrSlugRequired,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			if tt.mockError != nil {
				svc.On("QueryBySlug", mock.Anything, tt.vars["categorySlug"], tt.vars["subCategorySlug"], 1).
					Return(nil, tt.mockError)
			} else {
				svc.On("QueryBySlug", mock.Anything, tt.vars["categorySlug"], tt.vars["subCategorySlug"], 1).
					Return(testPage(), nil)
			}

			h := NewCatalogHandler(svc, zerolog.Nop())

			r := httptest.NewRequest(http.MethodGet, "/c/"+tt.vars["categorySlug"], nil)
			r = mux.SetURLVars(r, tt.vars)
			w := httptest.NewRecorder()

			h.SlugPage(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCatalogHandler_SlugProductsFragment(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("ProductsBySlug", mock.Anything, "mugs", "ceramic-mugs", 1).
		Return([]model.Product{{ID: 3, Name: "Ceramic Mug"}}, nil)

	h := NewCatalogHandler(svc, zerolog.Nop())

	r := httptest.NewRequest(http.MethodGet, "/c/products?categorySlug=mugs&subCategorySlug=ceramic-mugs", nil)
	w := httptest.NewRecorder()

	h.SlugProductsFragment(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCatalogHandler_Categories(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("RootCategories", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Mugs", Slug: "mugs"},
	}, nil)

	h := NewCatalogHandler(svc, zerolog.Nop())

	r := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	h.Categories(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []model.Category
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "mugs", got[0].Slug)
}

func TestCatalogHandler_CreateCategory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateCategory", mock.Anything, "Stationery", (*int64)(nil)).
			Return(&model.Category{ID: 9, Name: "Stationery", Slug: "stationery"}, nil)

		h := NewCatalogHandler(svc, zerolog.Nop())

		body := bytes.NewBufferString(`{"name":"Stationery"}`)
		r := httptest.NewRequest(http.MethodPost, "/api/categories", body)
		w := httptest.NewRecorder()

		h.CreateCategory(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Validation failure yields 422 with field errors", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateCategory", mock.Anything, "", (*int64)(nil)).
			Return(nil, model.ValidationErrors{"name": "Category name is required"})

		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(`{"name":""}`))
		w := httptest.NewRecorder()

		h.CreateCategory(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp ValidationResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, "name")
	})

	t.Run("Nesting violation yields 409", func(t *testing.T) {
		svc := new(MockCatalogService)
		parent := int64(3)
		svc.On("CreateCategory", mock.Anything, "Deep", &parent).
			Return(nil, model.ErrCategoryDepth)

		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(`{"name":"Deep","parentId":3}`))
		w := httptest.NewRecorder()

		h.CreateCategory(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Malformed body yields 400", func(t *testing.T) {
		svc := new(MockCatalogService)
		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(`{`))
		w := httptest.NewRecorder()

		h.CreateCategory(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCatalogHandler_DeleteCategory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("DeleteCategory", mock.Anything, int64(4)).Return(nil)

		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodDelete, "/api/categories/4", nil)
		r = mux.SetURLVars(r, map[string]string{"id": "4"})
		w := httptest.NewRecorder()

		h.DeleteCategory(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Referenced category yields 409", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("DeleteCategory", mock.Anything, int64(4)).Return(model.ErrCategoryInUse)

		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodDelete, "/api/categories/4", nil)
		r = mux.SetURLVars(r, map[string]string{"id": "4"})
		w := httptest.NewRecorder()

		h.DeleteCategory(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing category yields 404", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("DeleteCategory", mock.Anything, int64(99)).Return(model.ErrCategoryNotFound)

		h := NewCatalogHandler(svc, zerolog.Nop())

		r := httptest.NewRequest(http.MethodDelete, "/api/categories/99", nil)
		r = mux.SetURLVars(r, map[string]string{"id": "99"})
		w := httptest.NewRecorder()

		h.DeleteCategory(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
