// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"catalog_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。メール重複時は ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスに一致するユーザーを取得します。存在しない場合 ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDに一致するユーザーを取得します。存在しない場合 ErrUserNotFound。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Update は name, email, password_hash, role を保存します。メール重複時は ErrEmailAlreadyExists。
	Update(ctx context.Context, user *entity.User) error

	// Delete はユーザーとそのカートを削除します。存在しない場合 ErrUserNotFound。
	Delete(ctx context.Context, id uuid.UUID) error

	// List は全ユーザーを作成日時順に返します。
	List(ctx context.Context) ([]entity.User, error)
}

// TokenIssuer はJWTトークン発行のインターフェースを定義します。
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, time.Time, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(encoded, plain string) (bool, error)
}

// ProfileUpdate holds the optional fields of a profile update. Nil keeps the current value.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher

	// dummyHash はユーザー未検出時にも照合処理を走らせるためのハッシュです。
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, hasher PasswordHasher) (*authUsecase, error) {
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &authUsecase{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummy,
	}, nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailValidator applies the same "email" rule as the request binding.
var emailValidator = validator.New()

// validEmail reports whether email is a well-formed address.
func validEmail(email string) bool {
	return email != "" && emailValidator.Var(email, "email") == nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを role=user として登録します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleUser,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// ユーザーが存在しない場合でもダミーハッシュで照合を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, *entity.AuthToken, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, nil, err
	}

	passwordHash := u.dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}

	ok, verifyErr := u.hasher.Verify(passwordHash, password)
	if verifyErr != nil {
		return nil, nil, fmt.Errorf("failed to verify password: %w", verifyErr)
	}

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if user == nil || !ok {
		return nil, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := u.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return user, &entity.AuthToken{Token: token, ExpiresAt: expiresAt}, nil
}

// Me はトークンの subject に対応するユーザーを返します。
func (u *authUsecase) Me(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile は name と email を部分更新します。
func (u *authUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, ErrInvalidEmail
		}
		user.Email = email
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword は現在のパスワードを確認した上で新しいパスワードに置き換えます。
func (u *authUsecase) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := u.hasher.Verify(user.PasswordHash, current)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return ErrCurrentPasswordMismatch
	}

	hashed, err := u.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed
	return u.users.Update(ctx, user)
}

// DeleteAccount はユーザーとそのカートを削除します。
func (u *authUsecase) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return u.users.Delete(ctx, id)
}

// ListUsers は管理者向けに全ユーザーを返します。
func (u *authUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// UpdateRole は管理者がユーザーのロールを変更します。
// 新しいロールは次回ログインで発行されるトークンから有効になります。
func (u *authUsecase) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	user.Role = role
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("user role updated", "user_id", user.ID, "role", role)
	return user, nil
}

// EnsureAdmin registers an admin account, or promotes the account that
// already uses email. The password of an existing account is left unchanged.
// created reports whether a new account was registered.
func (u *authUsecase) EnsureAdmin(ctx context.Context, name, email, password string) (user *entity.User, created bool, err error) {
	if !validEmail(normalizeEmail(email)) {
		return nil, false, ErrInvalidEmail
	}
	existing, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		user, err = u.UpdateRole(ctx, existing.ID, entity.RoleAdmin)
		return user, false, err
	case !errors.Is(err, ErrUserNotFound):
		return nil, false, err
	}

	user, err = u.Register(ctx, name, email, password)
	if err != nil {
		return nil, false, err
	}
	user.Role = entity.RoleAdmin
	if err := u.users.Update(ctx, user); err != nil {
		return nil, false, err
	}
	slog.Info("admin account created", "user_id", user.ID)
	return user, true, nil
}
