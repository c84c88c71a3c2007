// Package handler provides the HTTP handlers of the category feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/category/domain/entity"
	"catalog_backend/internal/feature/category/usecase"
)

// CategoryUsecase defines the category operations used by the handler.
type CategoryUsecase interface {
	Create(ctx context.Context, name string, description *string) (*entity.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Filter(ctx context.Context, name string) ([]entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, in usecase.CategoryUpdate) (*entity.Category, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles /api/category.
type CategoryHandler struct {
	categories CategoryUsecase
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create handles POST /api/category/create.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req api.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// Get handles GET /api/category/:id. Soft-deleted categories are returned with deleted_at set.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	cat, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// List handles GET /api/category/list.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponses(cats))
}

// Filter handles GET /api/category/filter?name=.
func (h *CategoryHandler) Filter(c *gin.Context) {
	cats, err := h.categories.Filter(c.Request.Context(), c.Query("name"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponses(cats))
}

// Update handles PATCH /api/category/update/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req api.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	cat, err := h.categories.Update(c.Request.Context(), id, usecase.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("category updated", "category_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// SoftDelete handles PATCH /api/category/delete/soft/:id.
func (h *CategoryHandler) SoftDelete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.SoftDelete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("category soft-deleted", "category_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "category soft-deleted"})
}

// HardDelete handles DELETE /api/category/delete/hard/:id.
func (h *CategoryHandler) HardDelete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.HardDelete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("category deleted", "category_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "category deleted"})
}

func toCategoryResponse(cat *entity.Category) api.CategoryResponse {
	out := api.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
	if cat.DeletedAt.Valid {
		t := cat.DeletedAt.Time
		out.DeletedAt = &t
	}
	return out
}

func toCategoryResponses(cats []entity.Category) []api.CategoryResponse {
	out := make([]api.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i]))
	}
	return out
}
