// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/auth/domain/entity"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, *entity.AuthToken, error)
	Me(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - メール重複時は409
// - 成功時は201と {id,name,email,role}
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 未登録メールとパスワード不一致はどちらも400 "invalid email or password"。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      toUserResponse(user),
	})
}

// Verify はトークンの持ち主を返します。
func (h *AuthHandler) Verify(c *gin.Context) {
	id, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	user, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword は現在のパスワードを確認して更新します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	var req api.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("password changed", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}

// DeleteAccount は認証済みユーザー自身のアカウントを削除します。
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	id, ok := api.CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.auth.DeleteAccount(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("account deleted", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "account deleted"})
}


func toUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: openapi_types.Email(u.Email),
		Role:  string(u.Role),
	}
}
