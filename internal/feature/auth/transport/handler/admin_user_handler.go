package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/auth/domain/entity"
)

// UserAdminUsecase は管理者向けのユーザー操作を定義します。
type UserAdminUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}

// AdminUserHandler は /api/admin/users を処理します。
type AdminUserHandler struct {
	users UserAdminUsecase
}

func NewAdminUserHandler(users UserAdminUsecase) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	out := make([]api.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req api.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	user, err := h.users.UpdateRole(c.Request.Context(), id, entity.Role(req.Role))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("role changed by admin", "user_id", id, "role", req.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toUserResponse(user))
}
