// Package handler provides the HTTP handlers of the product feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/product/domain/entity"
	"catalog_backend/internal/feature/product/usecase"
)

// ProductUsecase defines the product operations used by the handler.
type ProductUsecase interface {
	Create(ctx context.Context, in usecase.NewProduct) (*entity.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, page, limit int) (*entity.Page, error)
	Search(ctx context.Context, f entity.SearchFilter) (*entity.Page, error)
	Update(ctx context.Context, id uuid.UUID, in usecase.ProductUpdate) (*entity.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// ProductHandler handles /api/products.
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req api.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), usecase.NewProduct{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toProductResponse(p))
}

// Get handles GET /api/products/:id. Soft-deleted products are returned with deleted_at set.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// List handles GET /api/products?page=&limit=.
func (h *ProductHandler) List(c *gin.Context) {
	page, ok := intQuery(c, "page", entity.DefaultPage)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", entity.DefaultLimit)
	if !ok {
		return
	}
	result, err := h.products.List(c.Request.Context(), page, limit)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result))
}

// Search handles GET /api/products/search.
func (h *ProductHandler) Search(c *gin.Context) {
	f, ok := parseSearchFilter(c)
	if !ok {
		return
	}
	result, err := h.products.Search(c.Request.Context(), f)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(result))
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req api.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, usecase.ProductUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product updated", "product_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toProductResponse(p))
}

// SoftDelete handles DELETE /api/products/soft/:id.
func (h *ProductHandler) SoftDelete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.SoftDelete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product soft-deleted", "product_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "product soft-deleted"})
}

// HardDelete handles DELETE /api/products/:id.
func (h *ProductHandler) HardDelete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.HardDelete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product deleted", "product_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "product deleted"})
}

func parseSearchFilter(c *gin.Context) (entity.SearchFilter, bool) {
	f := entity.SearchFilter{Query: c.Query("query")}

	var ok bool
	if f.Page, ok = intQuery(c, "page", entity.DefaultPage); !ok {
		return f, false
	}
	if f.Limit, ok = intQuery(c, "limit", entity.DefaultLimit); !ok {
		return f, false
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badQuery(c, "category_id", raw)
			return f, false
		}
		f.CategoryID = &id
	}
	if f.MinPrice, ok = decimalQuery(c, "min_price"); !ok {
		return f, false
	}
	if f.MaxPrice, ok = decimalQuery(c, "max_price"); !ok {
		return f, false
	}
	if raw := c.Query("in_stock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badQuery(c, "in_stock", raw)
			return f, false
		}
		f.InStock = v
	}
	return f, true
}

// intQuery returns def when the parameter is absent. Range checks belong to the usecase.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badQuery(c, name, raw)
		return 0, false
	}
	return v, true
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		badQuery(c, name, raw)
		return nil, false
	}
	return &v, true
}

func badQuery(c *gin.Context, name, value string) {
	slog.Warn("invalid query parameter", "param", name, "value", value, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + name})
}

func toProductResponse(p *entity.Product) api.ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	out := api.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		out.DeletedAt = &t
	}
	return out
}

func toPageResponse(page *entity.Page) api.ProductPageResponse {
	items := make([]api.ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toProductResponse(&page.Items[i]))
	}
	return api.ProductPageResponse{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
	}
}
