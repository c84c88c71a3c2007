package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	categoryadapters "catalog_backend/internal/feature/category/adapters"
	categoryusecase "catalog_backend/internal/feature/category/usecase"
	"catalog_backend/internal/platform/cache"
)

// NewCategoryRepository creates a CategoryRepository implementation.
// If Redis is available, the gorm repository is wrapped with a Redis cache.
// Otherwise, the gorm repository is returned as is.
func NewCategoryRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) categoryusecase.CategoryRepository {
	repo := categoryadapters.NewCategoryGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingCategoryRepository(rdb, ttl, repo, "categories")
}
