// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"catalog_backend/internal/feature/category/domain/entity"
	"catalog_backend/internal/feature/category/usecase"
)

// CachingCategoryRepository decorates a CategoryRepository with Redis caching
// of the live listings (List and Filter). Every mutation drops the whole
// namespace, since any write can change any listing.
type CachingCategoryRepository struct {
	inner     usecase.CategoryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CategoryRepository = (*CachingCategoryRepository)(nil)

// NewCachingCategoryRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "categories".
// A nil rdb disables caching.
func NewCachingCategoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CategoryRepository, namespace string) *CachingCategoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "categories"
	}
	return &CachingCategoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingCategoryRepository) Create(ctx context.Context, cat *entity.Category) error {
	if err := c.inner.Create(ctx, cat); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID is not cached; it also serves soft-deleted rows.
func (c *CachingCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return c.inner.FindByID(ctx, id)
}

func (c *CachingCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	return c.readThrough(ctx, c.namespace+":list", func() ([]entity.Category, error) {
		return c.inner.List(ctx)
	})
}

func (c *CachingCategoryRepository) Filter(ctx context.Context, name string) ([]entity.Category, error) {
	key := c.namespace + ":filter:" + safe(strings.ToLower(name))
	return c.readThrough(ctx, key, func() ([]entity.Category, error) {
		return c.inner.Filter(ctx, name)
	})
}

func (c *CachingCategoryRepository) Update(ctx context.Context, cat *entity.Category) error {
	if err := c.inner.Update(ctx, cat); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingCategoryRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.HardDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// readThrough checks the cache first, then falls back to load and stores the result.
func (c *CachingCategoryRepository) readThrough(ctx context.Context, key string, load func() ([]entity.Category, error)) ([]entity.Category, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Category
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate drops every key of the namespace. Failures only shorten the
// window until the TTL expires, so they are logged and ignored.
func (c *CachingCategoryRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("category cache invalidation failed", "error", err)
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCategoryRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
