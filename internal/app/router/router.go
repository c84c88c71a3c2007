// Package router assembles the gin engine and its routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "catalog_backend/internal/feature/auth/transport/handler"
	carthandler "catalog_backend/internal/feature/cart/transport/handler"
	categoryhandler "catalog_backend/internal/feature/category/transport/handler"
	producthandler "catalog_backend/internal/feature/product/transport/handler"
	imagehandler "catalog_backend/internal/feature/productimage/transport/handler"
	platformhandler "catalog_backend/internal/platform/http/handler"
	jwtmw "catalog_backend/internal/platform/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Health     *platformhandler.HealthHandler
	Auth       *authhandler.AuthHandler
	Profile    *authhandler.ProfileHandler
	AdminUsers *authhandler.AdminUserHandler
	Products   *producthandler.ProductHandler
	Images     *imagehandler.ProductImageHandler
	Categories *categoryhandler.CategoryHandler
	Cart       *carthandler.CartHandler
}

// Options configures the engine around the routes.
type Options struct {
	// UploadDir is served under /uploads. Empty disables static files.
	UploadDir string
	// CORSOrigins lists allowed origins. Empty allows all origins.
	CORSOrigins []string
}

func NewRouter(h Handlers, verifier jwtmw.TokenVerifier, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	authRequired := jwtmw.AuthRequired(verifier)
	adminRequired := []gin.HandlerFunc{authRequired, jwtmw.AdminRequired()}

	// 認証不要
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		public.GET("/products", h.Products.List)
		public.GET("/products/search", h.Products.Search)
		public.GET("/products/:id", h.Products.Get)
		public.GET("/products/:id/images", h.Images.List)

		public.GET("/category/list", h.Categories.List)
		public.GET("/category/filter", h.Categories.Filter)
		public.GET("/category/:id", h.Categories.Get)
	}

	// 認証必須のルート
	auth := r.Group("/api", authRequired)
	{
		auth.GET("/auth/verify", h.Auth.Verify)
		auth.PUT("/auth/password", h.Auth.ChangePassword)
		auth.DELETE("/auth/delete", h.Auth.DeleteAccount)

		auth.GET("/user/profile", h.Profile.Get)
		auth.PUT("/user/profile", h.Profile.Update)

		auth.POST("/cart", h.Cart.Add)
		auth.GET("/cart", h.Cart.List)
		auth.DELETE("/cart/:product_id", h.Cart.Remove)
	}

	// 管理者のみ
	admin := r.Group("/api", adminRequired...)
	{
		admin.POST("/products", h.Products.Create)
		admin.PUT("/products/:id", h.Products.Update)
		admin.DELETE("/products/:id", h.Products.HardDelete)
		admin.DELETE("/products/soft/:id", h.Products.SoftDelete)

		admin.POST("/products/images", h.Images.Upload)
		admin.PUT("/products/images/:image_id", h.Images.Update)
		admin.PUT("/products/images/:image_id/primary", h.Images.SetPrimary)
		admin.DELETE("/products/images/:image_id", h.Images.Delete)

		admin.POST("/category/create", h.Categories.Create)
		admin.PATCH("/category/update/:id", h.Categories.Update)
		admin.PATCH("/category/delete/soft/:id", h.Categories.SoftDelete)
		admin.DELETE("/category/delete/hard/:id", h.Categories.HardDelete)

		admin.GET("/admin/users", h.AdminUsers.List)
		admin.PUT("/admin/users/:id/role", h.AdminUsers.UpdateRole)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
