package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/feature/auth/usecase"
)

// ProfileUsecase は自分のプロフィール操作を定義します。
type ProfileUsecase interface {
	Me(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in usecase.ProfileUpdate) (*entity.User, error)
}

// ProfileHandler は /api/user/profile を処理します。
type ProfileHandler struct {
	profile ProfileUsecase
}

func NewProfileHandler(profile ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	user, err := h.profile.Me(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial profile update.
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	user, err := h.profile.UpdateProfile(c.Request.Context(), id, usecase.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("profile updated", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toUserResponse(user))
}
