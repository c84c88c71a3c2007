package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/platform/password"
	"catalog_backend/internal/shared/apperr"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc      func(user *entity.User) error
	FindByEmailFunc func(email string) (*entity.User, error)
	FindByIDFunc    func(id uuid.UUID) (*entity.User, error)
	UpdateFunc      func(user *entity.User) error
	DeleteFunc      func(id uuid.UUID) error
	ListFunc        func() ([]entity.User, error)
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Update(_ context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(user)
	}
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockUserRepository) List(_ context.Context) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	IssueFunc func(userID uuid.UUID, role string) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, role)
	}
	return "mock-jwt-token", time.Unix(1700000000, 0), nil
}

var testHasher = password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

func newTestUsecase(t *testing.T, repo UserRepository, tokens TokenIssuer) *authUsecase {
	t.Helper()
	uc, err := NewAuthUsecase(repo, tokens, testHasher)
	require.NoError(t, err)
	return uc
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := testHasher.Hash(plain)
	require.NoError(t, err)
	return h
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes password and assigns user role", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				created = user
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		user, err := uc.Register(context.Background(), " Alice ", "Alice@Example.com", "password123")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, entity.RoleUser, user.Role)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))

		ok, err := testHasher.Verify(user.PasswordHash, "password123")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("validation failures do not reach the repository", func(t *testing.T) {
		tests := []struct {
			name     string
			userName string
			email    string
			password string
			wantErr  error
		}{
			{"short password", "Alice", "a@x.com", "short", ErrPasswordTooShort},
			{"blank name", "  ", "a@x.com", "password123", ErrInvalidName},
			{"blank email", "Alice", " ", "password123", ErrInvalidEmail},
			{"email without domain", "Alice", "root", "password123", ErrInvalidEmail},
			{"email without local part", "Alice", "@example.com", "password123", ErrInvalidEmail},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockUserRepository{
					CreateFunc: func(user *entity.User) error {
						t.Error("Create should not be called")
						return nil
					},
				}
				uc := newTestUsecase(t, repo, &mockTokenIssuer{})

				_, err := uc.Register(context.Background(), tt.userName, tt.email, tt.password)

				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrValidation)
			})
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error { return ErrEmailAlreadyExists },
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		_, err := uc.Register(context.Background(), "Alice", "a@x.com", "password123")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	testUser := &entity.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "test@example.com",
		PasswordHash: hashed(t, "password123"),
		Role:         entity.RoleAdmin,
	}
	findUser := func(email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		var issuedFor uuid.UUID
		var issuedRole string
		tokens := &mockTokenIssuer{
			IssueFunc: func(userID uuid.UUID, role string) (string, time.Time, error) {
				issuedFor, issuedRole = userID, role
				return "signed", time.Unix(1700003600, 0), nil
			},
		}
		uc := newTestUsecase(t, &mockUserRepository{FindByEmailFunc: findUser}, tokens)

		user, token, err := uc.Login(context.Background(), "Test@Example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, testUser.ID, user.ID)
		assert.Equal(t, "signed", token.Token)
		assert.Equal(t, int64(1700003600), token.ExpiresAt.Unix())
		assert.Equal(t, testUser.ID, issuedFor)
		assert.Equal(t, "admin", issuedRole)
	})

	t.Run("wrong password and unknown email give the same error", func(t *testing.T) {
		uc := newTestUsecase(t, &mockUserRepository{FindByEmailFunc: findUser}, &mockTokenIssuer{})

		_, _, errWrongPassword := uc.Login(context.Background(), "test@example.com", "wrong-password")
		_, _, errUnknownEmail := uc.Login(context.Background(), "nobody@example.com", "password123")

		assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})

	t.Run("repository failure is propagated", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) { return nil, dbErr },
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		_, _, err := uc.Login(context.Background(), "test@example.com", "password123")

		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("malformed stored hash is internal", func(t *testing.T) {
		broken := *testUser
		broken.PasswordHash = "not-a-hash"
		repo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) { return &broken, nil },
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		_, _, err := uc.Login(context.Background(), "test@example.com", "password123")

		assert.ErrorIs(t, err, password.ErrMalformedHash)
		assert.Equal(t, 500, apperr.HTTPStatus(err))
	})

	t.Run("token issue failure", func(t *testing.T) {
		tokens := &mockTokenIssuer{
			IssueFunc: func(userID uuid.UUID, role string) (string, time.Time, error) {
				return "", time.Time{}, errors.New("jwt secret is not configured")
			},
		}
		uc := newTestUsecase(t, &mockUserRepository{FindByEmailFunc: findUser}, tokens)

		_, _, err := uc.Login(context.Background(), "test@example.com", "password123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate token")
	})
}

func TestAuthUsecase_UpdateProfile(t *testing.T) {
	id := uuid.New()
	current := func() *entity.User {
		return &entity.User{ID: id, Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	}
	newName := "Alicia"
	newEmail := "ALICIA@example.com"
	blank := " "
	malformed := "alice.example.com"

	tests := []struct {
		name      string
		in        ProfileUpdate
		wantName  string
		wantEmail string
		wantErr   error
	}{
		{"absent fields keep values", ProfileUpdate{}, "Alice", "alice@example.com", nil},
		{"name only", ProfileUpdate{Name: &newName}, "Alicia", "alice@example.com", nil},
		{"email only is normalized", ProfileUpdate{Email: &newEmail}, "Alice", "alicia@example.com", nil},
		{"blank name rejected", ProfileUpdate{Name: &blank}, "", "", ErrInvalidName},
		{"malformed email rejected", ProfileUpdate{Email: &malformed}, "", "", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *entity.User
			repo := &mockUserRepository{
				FindByIDFunc: func(uuid.UUID) (*entity.User, error) { return current(), nil },
				UpdateFunc: func(u *entity.User) error {
					saved = u
					return nil
				},
			}
			uc := newTestUsecase(t, repo, &mockTokenIssuer{})

			user, err := uc.UpdateProfile(context.Background(), id, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
			assert.Equal(t, tt.wantEmail, user.Email)
			assert.Same(t, user, saved)
		})
	}
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	id := uuid.New()
	stored := hashed(t, "old-password")

	t.Run("success replaces the hash", func(t *testing.T) {
		var saved string
		repo := &mockUserRepository{
			FindByIDFunc: func(uuid.UUID) (*entity.User, error) {
				return &entity.User{ID: id, PasswordHash: stored}, nil
			},
			UpdateFunc: func(u *entity.User) error {
				saved = u.PasswordHash
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		require.NoError(t, uc.ChangePassword(context.Background(), id, "old-password", "new-password"))

		ok, err := testHasher.Verify(saved, "new-password")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("current password mismatch", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(uuid.UUID) (*entity.User, error) {
				return &entity.User{ID: id, PasswordHash: stored}, nil
			},
			UpdateFunc: func(u *entity.User) error {
				t.Error("Update should not be called")
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		err := uc.ChangePassword(context.Background(), id, "wrong", "new-password")

		assert.ErrorIs(t, err, ErrCurrentPasswordMismatch)
		assert.Equal(t, 400, apperr.HTTPStatus(err))
	})

	t.Run("new password too short", func(t *testing.T) {
		uc := newTestUsecase(t, &mockUserRepository{}, &mockTokenIssuer{})

		assert.ErrorIs(t, uc.ChangePassword(context.Background(), id, "old-password", "short"), ErrPasswordTooShort)
	})
}

func TestAuthUsecase_UpdateRole(t *testing.T) {
	id := uuid.New()

	t.Run("promotes user to admin", func(t *testing.T) {
		updated := false
		repo := &mockUserRepository{
			FindByIDFunc: func(uuid.UUID) (*entity.User, error) {
				return &entity.User{ID: id, Role: entity.RoleUser}, nil
			},
			UpdateFunc: func(u *entity.User) error {
				updated = true
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		user, err := uc.UpdateRole(context.Background(), id, entity.RoleAdmin)

		require.NoError(t, err)
		assert.True(t, updated)
		assert.True(t, user.IsAdmin())
	})

	t.Run("unknown role", func(t *testing.T) {
		uc := newTestUsecase(t, &mockUserRepository{}, &mockTokenIssuer{})

		_, err := uc.UpdateRole(context.Background(), id, entity.Role("root"))

		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("missing user", func(t *testing.T) {
		uc := newTestUsecase(t, &mockUserRepository{}, &mockTokenIssuer{})

		_, err := uc.UpdateRole(context.Background(), id, entity.RoleAdmin)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthUsecase_DeleteAccount(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	repo := &mockUserRepository{
		DeleteFunc: func(got uuid.UUID) error {
			deleted = got
			return nil
		},
	}
	uc := newTestUsecase(t, repo, &mockTokenIssuer{})

	require.NoError(t, uc.DeleteAccount(context.Background(), id))
	assert.Equal(t, id, deleted)
}

func TestAuthUsecase_EnsureAdmin(t *testing.T) {
	t.Run("creates a new admin", func(t *testing.T) {
		var updated *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				user.ID = uuid.New()
				return nil
			},
			UpdateFunc: func(user *entity.User) error {
				updated = user
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		user, created, err := uc.EnsureAdmin(context.Background(), "Root", "root@example.com", "password123")

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, entity.RoleAdmin, user.Role)
		require.NotNil(t, updated)
		assert.Equal(t, entity.RoleAdmin, updated.Role)
	})

	t.Run("promotes an existing user without touching the password", func(t *testing.T) {
		existing := &entity.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", PasswordHash: "keep", Role: entity.RoleUser}
		repo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				assert.Equal(t, "bob@example.com", email)
				return existing, nil
			},
			FindByIDFunc: func(uuid.UUID) (*entity.User, error) { return existing, nil },
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		user, created, err := uc.EnsureAdmin(context.Background(), "ignored", " BOB@example.com", "password123")

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, entity.RoleAdmin, user.Role)
		assert.Equal(t, "keep", user.PasswordHash)
	})

	t.Run("short password for a new admin", func(t *testing.T) {
		uc := newTestUsecase(t, &mockUserRepository{}, &mockTokenIssuer{})

		_, _, err := uc.EnsureAdmin(context.Background(), "Root", "root@example.com", "short")

		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("malformed email is rejected before any lookup", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(string) (*entity.User, error) {
				t.Error("FindByEmail should not be called")
				return nil, ErrUserNotFound
			},
			CreateFunc: func(*entity.User) error {
				t.Error("Create should not be called")
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		_, _, err := uc.EnsureAdmin(context.Background(), "Root", "root", "password123")

		assert.ErrorIs(t, err, ErrInvalidEmail)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("lookup failure", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := &mockUserRepository{
			FindByEmailFunc: func(string) (*entity.User, error) { return nil, dbErr },
		}
		uc := newTestUsecase(t, repo, &mockTokenIssuer{})

		_, _, err := uc.EnsureAdmin(context.Background(), "Root", "root@example.com", "password123")

		assert.ErrorIs(t, err, dbErr)
	})
}
