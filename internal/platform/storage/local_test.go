package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save(strings.NewReader("png-bytes"), ".png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	onDisk := filepath.Join(root, "products", filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	t.Run("already removed", func(t *testing.T) {
		assert.NoError(t, store.Remove(url))
	})
}

func TestLocalStore_SaveUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Save(strings.NewReader("a"), ".jpg")
	require.NoError(t, err)
	b, err := store.Save(strings.NewReader("b"), ".jpg")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestLocalStore_RemoveRejectsForeignURLs(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/uploads")
	require.NoError(t, err)

	secret := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o600))

	for _, url := range []string{
		"",
		"/uploads/products/",
		"/uploads/products/../secret.txt",
		"/uploads/products/a/b.png",
		"/other/products/a.png",
		"https://example.com/uploads/products/a.png",
	} {
		err := store.Remove(url)
		assert.ErrorIs(t, err, ErrInvalidURL, url)
	}

	_, err = os.Stat(secret)
	assert.NoError(t, err, "files outside the store are untouched")
}
