package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/category/domain/entity"
	"catalog_backend/internal/feature/category/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockCategoryUsecase struct {
	CreateFunc     func(name string, description *string) (*entity.Category, error)
	GetFunc        func(id uuid.UUID) (*entity.Category, error)
	ListFunc       func() ([]entity.Category, error)
	FilterFunc     func(name string) ([]entity.Category, error)
	UpdateFunc     func(id uuid.UUID, in usecase.CategoryUpdate) (*entity.Category, error)
	SoftDeleteFunc func(id uuid.UUID) error
	HardDeleteFunc func(id uuid.UUID) error
}

func (m *mockCategoryUsecase) Create(_ context.Context, name string, description *string) (*entity.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(name, description)
	}
	return &entity.Category{ID: uuid.New(), Name: name, Description: description}, nil
}

func (m *mockCategoryUsecase) Get(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, usecase.ErrCategoryNotFound
}

func (m *mockCategoryUsecase) List(_ context.Context) ([]entity.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *mockCategoryUsecase) Filter(_ context.Context, name string) ([]entity.Category, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(name)
	}
	return nil, nil
}

func (m *mockCategoryUsecase) Update(_ context.Context, id uuid.UUID, in usecase.CategoryUpdate) (*entity.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, in)
	}
	return nil, usecase.ErrCategoryNotFound
}

func (m *mockCategoryUsecase) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(id)
	}
	return nil
}

func (m *mockCategoryUsecase) HardDelete(_ context.Context, id uuid.UUID) error {
	if m.HardDeleteFunc != nil {
		return m.HardDeleteFunc(id)
	}
	return nil
}

func newRouter(h *CategoryHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/category")
	g.POST("/create", h.Create)
	g.GET("/list", h.List)
	g.GET("/filter", h.Filter)
	g.GET("/:id", h.Get)
	g.PATCH("/update/:id", h.Update)
	g.PATCH("/delete/soft/:id", h.SoftDelete)
	g.DELETE("/delete/hard/:id", h.HardDelete)
	return r
}

func serve(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		createFunc     func(string, *string) (*entity.Category, error)
		expectedStatus int
	}{
		{"created", gin.H{"name": "Shoes", "description": "footwear"}, nil, http.StatusCreated},
		{"missing name", gin.H{"description": "footwear"}, nil, http.StatusBadRequest},
		{
			"duplicate",
			gin.H{"name": "Shoes"},
			func(string, *string) (*entity.Category, error) { return nil, usecase.ErrCategoryNameTaken },
			http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewCategoryHandler(&mockCategoryUsecase{CreateFunc: tt.createFunc}))

			w := serve(r, http.MethodPost, "/api/category/create", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCategoryHandler_GetSoftDeleted(t *testing.T) {
	id := uuid.New()
	deletedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r := newRouter(NewCategoryHandler(&mockCategoryUsecase{
		GetFunc: func(got uuid.UUID) (*entity.Category, error) {
			return &entity.Category{ID: got, Name: "Old", DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true}}, nil
		},
	}))

	w := serve(r, http.MethodGet, "/api/category/"+id.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-01-02T03:04:05Z", body["deleted_at"])
}

func TestCategoryHandler_InvalidID(t *testing.T) {
	r := newRouter(NewCategoryHandler(&mockCategoryUsecase{}))

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/category/abc"},
		{http.MethodPatch, "/api/category/update/abc"},
		{http.MethodPatch, "/api/category/delete/soft/abc"},
		{http.MethodDelete, "/api/category/delete/hard/abc"},
	} {
		w := serve(r, tc.method, tc.path, gin.H{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCategoryHandler_Filter(t *testing.T) {
	var got string
	r := newRouter(NewCategoryHandler(&mockCategoryUsecase{
		FilterFunc: func(name string) ([]entity.Category, error) {
			got = name
			return []entity.Category{{ID: uuid.New(), Name: "Shoes"}}, nil
		},
	}))

	w := serve(r, http.MethodGet, "/api/category/filter?name=sho", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sho", got)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestCategoryHandler_Deletes(t *testing.T) {
	id := uuid.New()

	t.Run("soft delete already deleted", func(t *testing.T) {
		r := newRouter(NewCategoryHandler(&mockCategoryUsecase{
			SoftDeleteFunc: func(uuid.UUID) error { return usecase.ErrCategoryNotFound },
		}))

		w := serve(r, http.MethodPatch, "/api/category/delete/soft/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("hard delete", func(t *testing.T) {
		r := newRouter(NewCategoryHandler(&mockCategoryUsecase{}))

		w := serve(r, http.MethodDelete, "/api/category/delete/hard/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
