// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog_backend/internal/app/router"
	authadapters "catalog_backend/internal/feature/auth/adapters"
	authentity "catalog_backend/internal/feature/auth/domain/entity"
	authhandler "catalog_backend/internal/feature/auth/transport/handler"
	authusecase "catalog_backend/internal/feature/auth/usecase"
	cartadapters "catalog_backend/internal/feature/cart/adapters"
	cartentity "catalog_backend/internal/feature/cart/domain/entity"
	carthandler "catalog_backend/internal/feature/cart/transport/handler"
	cartusecase "catalog_backend/internal/feature/cart/usecase"
	categoryentity "catalog_backend/internal/feature/category/domain/entity"
	categoryhandler "catalog_backend/internal/feature/category/transport/handler"
	categoryusecase "catalog_backend/internal/feature/category/usecase"
	productadapters "catalog_backend/internal/feature/product/adapters"
	productentity "catalog_backend/internal/feature/product/domain/entity"
	producthandler "catalog_backend/internal/feature/product/transport/handler"
	productusecase "catalog_backend/internal/feature/product/usecase"
	imageadapters "catalog_backend/internal/feature/productimage/adapters"
	imageentity "catalog_backend/internal/feature/productimage/domain/entity"
	imagehandler "catalog_backend/internal/feature/productimage/transport/handler"
	imageusecase "catalog_backend/internal/feature/productimage/usecase"
	"catalog_backend/internal/platform/events"
	platformhandler "catalog_backend/internal/platform/http/handler"
	"catalog_backend/internal/platform/storage"
)

// Models lists every table owned by the application, in creation order.
func Models() []any {
	return []any{
		&authentity.User{},
		&categoryentity.Category{},
		&productentity.Product{},
		&imageentity.ProductImage{},
		&cartentity.CartItem{},
	}
}

// Deps are the infrastructure clients shared by every feature.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client // nil disables the category cache
	Tokens    authusecase.TokenIssuer
	Hasher    authusecase.PasswordHasher
	Store     *storage.LocalStore
	Publisher categoryusecase.EventPublisher

	CategoryCacheTTL time.Duration
	MaxUploadBytes   int64
}

// NewHandlers builds repositories, usecases and handlers for the router.
func NewHandlers(d Deps) (router.Handlers, error) {
	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	// Repository
	userRepo := authadapters.NewUserGorm(d.DB)
	categoryRepo := NewCategoryRepository(d.Redis, d.DB, d.CategoryCacheTTL)
	productRepo := productadapters.NewProductGorm(d.DB)
	imageRepo := imageadapters.NewProductImageGorm(d.DB)
	cartRepo := cartadapters.NewCartGorm(d.DB)

	// Usecase
	authUC, err := authusecase.NewAuthUsecase(userRepo, d.Tokens, d.Hasher)
	if err != nil {
		return router.Handlers{}, fmt.Errorf("auth usecase: %w", err)
	}
	categoryUC := categoryusecase.NewCategoryUsecase(categoryRepo, publisher)
	productUC := productusecase.NewProductUsecase(productRepo, d.Store, publisher)
	imageUC := imageusecase.NewProductImageUsecase(imageRepo, d.Store, d.MaxUploadBytes)
	cartUC := cartusecase.NewCartUsecase(cartRepo)

	// Handler
	sqlDB, err := d.DB.DB()
	if err != nil {
		return router.Handlers{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return router.Handlers{
		Health:     platformhandler.NewHealthHandler(sqlDB),
		Auth:       authhandler.NewAuthHandler(authUC),
		Profile:    authhandler.NewProfileHandler(authUC),
		AdminUsers: authhandler.NewAdminUserHandler(authUC),
		Products:   producthandler.NewProductHandler(productUC),
		Images:     imagehandler.NewProductImageHandler(imageUC),
		Categories: categoryhandler.NewCategoryHandler(categoryUC),
		Cart:       carthandler.NewCartHandler(cartUC),
	}, nil
}
