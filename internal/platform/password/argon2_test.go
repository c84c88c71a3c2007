package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams keeps argon2 cheap in tests.
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(testParams)

	passwords := []string{"password123", "p", "日本語のパスワード", strings.Repeat("x", 200)}
	for _, pw := range passwords {
		encoded, err := h.Hash(pw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"), "unexpected encoding: %s", encoded)

		ok, err := h.Verify(encoded, pw)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)

		ok, err = h.Verify(encoded, pw+"x")
		require.NoError(t, err)
		assert.False(t, ok, "different password should not verify")
	}
}

func TestHasher_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(testParams)

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_VerifyUsesEncodedParams(t *testing.T) {
	t.Parallel()

	old := NewHasher(Params{Memory: 2048, Iterations: 2, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	encoded, err := old.Hash("password123")
	require.NoError(t, err)

	current := NewHasher(testParams)
	ok, err := current.Verify(encoded, "password123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_VerifyMalformed(t *testing.T) {
	t.Parallel()

	h := NewHasher(testParams)

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"bcrypt hash", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$ZGlnZXN0"},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$ZGlnZXN0"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$ZGlnZXN0"},
		{"zero iterations", "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$ZGlnZXN0"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$ZGlnZXN0"},
		{"empty digest", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := h.Verify(tt.encoded, "password123")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
