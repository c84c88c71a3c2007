// Package handler provides the HTTP handlers of the cart feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/cart/domain/entity"
)

// CartUsecase defines the cart operations used by the handler.
type CartUsecase interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

// CartHandler handles /api/cart. Every route acts on the authenticated user's cart.
type CartHandler struct {
	carts CartUsecase
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts CartUsecase) *CartHandler {
	return &CartHandler{carts: carts}
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	var req api.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	item, err := h.carts.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("cart item added", "user_id", userID, "product_id", req.ProductID, "quantity", item.Quantity)
	c.JSON(http.StatusOK, toCartItemResponse(item))
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	items, err := h.carts.List(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	out := make([]api.CartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toCartItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Remove handles DELETE /api/cart/:product_id.
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	productID, ok := api.UUIDParam(c, "product_id")
	if !ok {
		return
	}
	n, err := h.carts.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("cart item removed", "user_id", userID, "product_id", productID)
	c.JSON(http.StatusOK, api.RemoveFromCartResponse{Message: "removed from cart", Deleted: n})
}

func toCartItemResponse(item *entity.CartItem) api.CartItemResponse {
	return api.CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
