package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/service"
)

// MockCategoryService mocks the CategoryService interface
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil && c.ID == 0 {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *MockCategoryService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func TestCategoryList(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.GET("/categories", h.List)

	cats := []models.Category{
		{ID: 1, Name: "Movies", Slug: "movies"},
		{ID: 2, Name: "Books", Slug: "books"},
	}
	mockSvc.On("List", mock.Anything, "", 1, 20).Return(cats, int64(2), nil)

	req, _ := http.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var page dto.Page[dto.CategoryResponse]
	json.Unmarshal(w.Body.Bytes(), &page)
	assert.Equal(t, int64(2), page.Count)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, "movies", page.Results[0].Slug)
	// internal ids never leak into responses
	assert.NotContains(t, w.Body.String(), `"id"`)
}

func TestCategoryList_SearchForwarded(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.GET("/categories", h.List)

	mockSvc.On("List", mock.Anything, "mov", 1, 20).Return([]models.Category{}, int64(0), nil)

	req, _ := http.NewRequest("GET", "/categories?search=mov", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCategoryCreate(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.POST("/categories", h.Create)

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	w := postJSON(router, "/categories", dto.CategoryRequest{Name: "Movies", Slug: "movies"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CategoryResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Movies", resp.Name)
	assert.Equal(t, "movies", resp.Slug)
}

func TestCategoryCreate_SlugTaken(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.POST("/categories", h.Create)

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(service.ErrSlugTaken)

	w := postJSON(router, "/categories", dto.CategoryRequest{Name: "Movies", Slug: "movies"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCreate_MissingName(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.POST("/categories", h.Create)

	w := postJSON(router, "/categories", map[string]string{"slug": "movies"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryDelete(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.DELETE("/categories/:slug", h.Delete)

	mockSvc.On("DeleteBySlug", mock.Anything, "movies").Return(nil)

	req, _ := http.NewRequest("DELETE", "/categories/movies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCategoryDelete_NotFound(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	router := setupRouter()
	router.DELETE("/categories/:slug", h.Delete)

	mockSvc.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest("DELETE", "/categories/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
