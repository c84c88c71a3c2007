// Package handler provides the HTTP handlers of the product image feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/productimage/domain/entity"
	"catalog_backend/internal/feature/productimage/usecase"
)

// multipartOverhead is allowed on top of the file limit for the other form parts.
const multipartOverhead = 1 << 20

// ProductImageUsecase defines the image operations used by the handler.
type ProductImageUsecase interface {
	MaxBytes() int64
	Upload(ctx context.Context, in usecase.Upload) (*entity.ProductImage, error)
	List(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error)
	SetPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	UpdatePrimary(ctx context.Context, id uuid.UUID, primary bool) (*entity.ProductImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductImageHandler handles the /api/products image routes.
type ProductImageHandler struct {
	images ProductImageUsecase
}

// NewProductImageHandler creates a ProductImageHandler.
func NewProductImageHandler(images ProductImageUsecase) *ProductImageHandler {
	return &ProductImageHandler{images: images}
}

// Upload handles POST /api/products/images (multipart: product_id, image, is_primary).
func (h *ProductImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.images.MaxBytes()+multipartOverhead)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.RespondError(c, usecase.ErrImageTooLarge)
			return
		}
		api.RespondBindError(c, err)
		return
	}

	productID, err := uuid.Parse(firstValue(form.Value, "product_id"))
	if err != nil {
		badRequest(c, "invalid product_id")
		return
	}
	isPrimary := false
	if raw := firstValue(form.Value, "is_primary"); raw != "" {
		if isPrimary, err = strconv.ParseBool(raw); err != nil {
			badRequest(c, "invalid is_primary")
			return
		}
	}
	files := form.File["image"]
	if len(files) == 0 {
		badRequest(c, "image is required")
		return
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		api.RespondError(c, err)
		return
	}
	defer f.Close()

	img, err := h.images.Upload(c.Request.Context(), usecase.Upload{
		ProductID: productID,
		IsPrimary: isPrimary,
		Size:      fh.Size,
		Content:   f,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product image uploaded", "image_id", img.ID, "product_id", productID, "is_primary", img.IsPrimary, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toImageResponse(img))
}

// List handles GET /api/products/:id/images.
func (h *ProductImageHandler) List(c *gin.Context) {
	productID, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	images, err := h.images.List(c.Request.Context(), productID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	out := make([]api.ProductImageResponse, 0, len(images))
	for i := range images {
		out = append(out, toImageResponse(&images[i]))
	}
	c.JSON(http.StatusOK, out)
}

// SetPrimary handles PUT /api/products/images/:image_id/primary.
func (h *ProductImageHandler) SetPrimary(c *gin.Context) {
	id, ok := api.UUIDParam(c, "image_id")
	if !ok {
		return
	}
	img, err := h.images.SetPrimary(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("primary image set", "image_id", id, "product_id", img.ProductID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toImageResponse(img))
}

// Update handles PUT /api/products/images/:image_id with {"is_primary": bool}.
func (h *ProductImageHandler) Update(c *gin.Context) {
	id, ok := api.UUIDParam(c, "image_id")
	if !ok {
		return
	}
	var req api.UpdateProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	img, err := h.images.UpdatePrimary(c.Request.Context(), id, *req.IsPrimary)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("image updated", "image_id", id, "is_primary", img.IsPrimary, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toImageResponse(img))
}

// Delete handles DELETE /api/products/images/:image_id.
func (h *ProductImageHandler) Delete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "image_id")
	if !ok {
		return
	}
	if err := h.images.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("product image deleted", "image_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "image deleted"})
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func badRequest(c *gin.Context, msg string) {
	slog.Warn("invalid upload", "error", msg, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}

func toImageResponse(img *entity.ProductImage) api.ProductImageResponse {
	return api.ProductImageResponse{
		ID:        img.ID,
		ProductID: img.ProductID,
		ImageURL:  img.ImageURL,
		IsPrimary: img.IsPrimary,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}
