package jwtmw

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

var (
	ErrSecretMissing     = errors.New("jwt secret is not configured")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	Role   string    `json:"role"`
	UserID uuid.UUID `json:"-"`
	jwt.RegisteredClaims
}

// SecretFunc returns the signing secret at call time.
type SecretFunc func() string

// EnvSecret reads JWT_SECRET on every call so a rotated secret takes effect without restart.
func EnvSecret() SecretFunc {
	return func() string { return os.Getenv(EnvKeyJWTSecret) }
}

// StaticSecret always returns s.
func StaticSecret(s string) SecretFunc {
	return func() string { return s }
}

// Service issues and verifies HS256 tokens.
type Service struct {
	secret SecretFunc
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a token service. A nil secret falls back to EnvSecret.
func NewService(secret SecretFunc, ttl time.Duration) *Service {
	if secret == nil {
		secret = EnvSecret()
	}
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the user. The returned time is the absolute expiry.
func (s *Service) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	secret := s.secret()
	if secret == "" {
		return "", time.Time{}, ErrSecretMissing
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp.Truncate(time.Second), nil
}

// Verify parses and validates a token. Only HS256 is accepted and exp is mandatory.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	secret := s.secret()
	if secret == "" {
		return nil, ErrSecretMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenBadSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrTokenMalformed)
	}
	claims.UserID = id
	return claims, nil
}
