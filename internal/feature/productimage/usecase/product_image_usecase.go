package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"catalog_backend/internal/feature/productimage/domain/entity"
)

// DefaultMaxBytes is the upload limit used when none is configured.
const DefaultMaxBytes int64 = 10 << 20

// sniffLen is enough for the magic numbers of every allowed format.
const sniffLen = 512

// allowedTypes maps accepted content types to the stored file extension.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProductImageRepository は商品画像の永続化層を抽象化します。
type ProductImageRepository interface {
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
	// Create inserts img. When img.IsPrimary is set the product's other
	// images are unset in the same transaction.
	Create(ctx context.Context, img *entity.ProductImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	// ListByProduct returns the primary image first, then oldest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error)
	// SetPrimary makes id the only primary image of its product.
	SetPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	// ClearPrimary unsets is_primary on id, leaving the product without a primary image.
	ClearPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	// Delete removes the row and returns it.
	Delete(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
}

// ImageStore persists image files and addresses them by URL.
type ImageStore interface {
	Save(r io.Reader, ext string) (string, error)
	Remove(url string) error
}

// Upload is one uploaded image file.
type Upload struct {
	ProductID uuid.UUID
	IsPrimary bool
	Size      int64
	Content   io.Reader
}

type productImageUsecase struct {
	repo     ProductImageRepository
	store    ImageStore
	maxBytes int64
}

// NewProductImageUsecase creates the product image usecase. maxBytes <= 0 selects DefaultMaxBytes.
func NewProductImageUsecase(repo ProductImageRepository, store ImageStore, maxBytes int64) *productImageUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &productImageUsecase{repo: repo, store: store, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted upload.
func (u *productImageUsecase) MaxBytes() int64 { return u.maxBytes }

// Upload validates and stores the file, then records it for the product.
// The file is removed again if the row cannot be written.
func (u *productImageUsecase) Upload(ctx context.Context, in Upload) (*entity.ProductImage, error) {
	if in.Size > u.maxBytes {
		return nil, ErrImageTooLarge
	}

	ok, err := u.repo.ProductExists(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Content, head)
	switch {
	case errors.Is(err, io.EOF):
		return nil, ErrEmptyImage
	case err != nil && !errors.Is(err, io.ErrUnexpectedEOF):
		return nil, err
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	ext, ok := allowedTypes[mime.String()]
	if !ok {
		slog.Warn("rejected image upload", "product_id", in.ProductID, "content_type", mime.String())
		return nil, ErrUnsupportedType
	}

	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), in.Content), u.maxBytes)
	url, err := u.store.Save(body, ext)
	if err != nil {
		return nil, err
	}

	img := &entity.ProductImage{ProductID: in.ProductID, ImageURL: url, IsPrimary: in.IsPrimary}
	if err := u.repo.Create(ctx, img); err != nil {
		u.removeFile(url)
		return nil, err
	}
	return img, nil
}

func (u *productImageUsecase) List(ctx context.Context, productID uuid.UUID) ([]entity.ProductImage, error) {
	return u.repo.ListByProduct(ctx, productID)
}

func (u *productImageUsecase) SetPrimary(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	return u.repo.SetPrimary(ctx, id)
}

// UpdatePrimary sets or clears the primary flag of an image.
func (u *productImageUsecase) UpdatePrimary(ctx context.Context, id uuid.UUID, primary bool) (*entity.ProductImage, error) {
	if primary {
		return u.repo.SetPrimary(ctx, id)
	}
	return u.repo.ClearPrimary(ctx, id)
}

// Delete removes the row first, then the file. File removal is best effort.
func (u *productImageUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	u.removeFile(img.ImageURL)
	return nil
}

func (u *productImageUsecase) removeFile(url string) {
	if err := u.store.Remove(url); err != nil {
		slog.Warn("failed to remove image file", "url", url, "error", err)
	}
}
