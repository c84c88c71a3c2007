package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/app/di"
	"catalog_backend/internal/app/router"
	"catalog_backend/internal/platform/config"
	infradb "catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/events"
	platformhttp "catalog_backend/internal/platform/http"
	jwtmw "catalog_backend/internal/platform/jwt"
	"catalog_backend/internal/platform/password"
	infraredis "catalog_backend/internal/platform/redis"
	"catalog_backend/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.ConnectWithRetry(cfg.DatabaseURL, cfg.DB.ConnectTimeout, infradb.PostgresOpener)
	if err != nil {
		return err
	}
	if err := infradb.ApplyPool(db, infradb.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}); err != nil {
		return err
	}
	if cfg.DB.RunMigrations {
		if err := infradb.Migrate(db, di.Models()...); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// RabbitMQ
	var publisher interface {
		Publish(context.Context, events.Event) error
		Close() error
	} = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.DialRabbit(cfg.RabbitMQURL)
		if err != nil {
			slog.Warn("RabbitMQ unavailable. Events are discarded.", "error", err)
		} else {
			publisher = p
		}
	} else {
		slog.Info("RABBITMQ_URL not set; events are discarded")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("failed to close event publisher", "error", err)
		}
	}()

	store, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return err
	}

	tokens := jwtmw.NewService(jwtmw.EnvSecret(), cfg.JWTTTL)
	handlers, err := di.NewHandlers(di.Deps{
		DB:               db,
		Redis:            rdb,
		Tokens:           tokens,
		Hasher:           password.NewHasher(password.DefaultParams),
		Store:            store,
		Publisher:        publisher,
		CategoryCacheTTL: cfg.CategoryCacheTTL,
		MaxUploadBytes:   cfg.MaxUploadBytes,
	})
	if err != nil {
		return err
	}

	// ルータ生成
	r := router.NewRouter(handlers, tokens, router.Options{
		UploadDir:   store.Root(),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := platformhttp.NewServer(":"+cfg.Port, r, platformhttp.ServerConfig{
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	})
	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	return platformhttp.Serve(ctx, srv, cfg.HTTP.ShutdownTimeout)
}
