// Package storage keeps uploaded product images on the local filesystem.
// Files are served statically under the URL prefix by the router.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ProductsDir is the sub-directory holding product images.
const ProductsDir = "products"

// ErrInvalidURL is returned by Remove for URLs that do not point into the store.
var ErrInvalidURL = errors.New("storage: url outside the store")

// LocalStore writes files under <root>/products and addresses them as
// <urlPrefix>/products/<file>.
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore creates the products directory under root if needed.
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, ProductsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Root is the directory served under the URL prefix.
func (s *LocalStore) Root() string { return s.root }

// Save writes r to a new file with a random name and the given extension
// and returns its public URL.
func (s *LocalStore) Save(r io.Reader, ext string) (string, error) {
	name := uuid.NewString() + ext
	dst := filepath.Join(s.root, ProductsDir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path.Join(s.urlPrefix, ProductsDir, name), nil
}

// Remove deletes the file behind url. A file that is already gone is not an error.
func (s *LocalStore) Remove(url string) error {
	name, ok := strings.CutPrefix(url, path.Join(s.urlPrefix, ProductsDir)+"/")
	if !ok || name == "" || name != filepath.Base(name) || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	err := os.Remove(filepath.Join(s.root, ProductsDir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
