// Command seedadmin creates the first admin account, or promotes an existing
// account to admin. With -hash it only prints an argon2id hash of the password.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"catalog_backend/internal/app/di"
	authadapters "catalog_backend/internal/feature/auth/adapters"
	"catalog_backend/internal/feature/auth/domain/entity"
	authusecase "catalog_backend/internal/feature/auth/usecase"
	infradb "catalog_backend/internal/platform/db"
	jwtmw "catalog_backend/internal/platform/jwt"
	"catalog_backend/internal/platform/password"
)

type seedConfig struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
	Name           string        `env:"ADMIN_NAME" envDefault:"admin"`
	Email          string        `env:"ADMIN_EMAIL"`
	Password       string        `env:"ADMIN_PASSWORD"`
	HashOnly       bool
}

// adminSeeder is satisfied by the auth usecase.
type adminSeeder interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (*entity.User, bool, error)
}

type hasher interface {
	Hash(plain string) (string, error)
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	h := password.NewHasher(password.DefaultParams)
	if cfg.HashOnly {
		if err := printHash(os.Stdout, h, cfg.Password); err != nil {
			slog.Error("hash failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infradb.ConnectWithRetry(cfg.DatabaseURL, cfg.ConnectTimeout, infradb.PostgresOpener)
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := infradb.Migrate(db, di.Models()...); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// トークンは発行しないが、usecaseの依存として必要
	tokens := jwtmw.NewService(jwtmw.EnvSecret(), time.Hour)
	uc, err := authusecase.NewAuthUsecase(authadapters.NewUserGorm(db), tokens, h)
	if err != nil {
		slog.Error("failed to build auth usecase", "error", err)
		os.Exit(1)
	}

	if err := seed(ctx, os.Stdout, uc, cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// parseConfig reads the environment first; flags override it.
func parseConfig(fs *flag.FlagSet, args []string) (seedConfig, error) {
	cfg, err := env.ParseAs[seedConfig]()
	if err != nil {
		return seedConfig{}, err
	}

	fs.StringVar(&cfg.Name, "name", cfg.Name, "admin display name")
	fs.StringVar(&cfg.Email, "email", cfg.Email, "admin email (ADMIN_EMAIL)")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "admin password (ADMIN_PASSWORD)")
	fs.BoolVar(&cfg.HashOnly, "hash", false, "print the password hash and exit")
	if err := fs.Parse(args); err != nil {
		return seedConfig{}, err
	}

	if cfg.Password == "" {
		return seedConfig{}, errors.New("password is required")
	}
	if cfg.HashOnly {
		return cfg, nil
	}
	if cfg.Email == "" {
		return seedConfig{}, errors.New("email is required")
	}
	if err := validator.New().Var(cfg.Email, "email"); err != nil {
		return seedConfig{}, fmt.Errorf("email %q is not a valid address", cfg.Email)
	}
	if cfg.DatabaseURL == "" {
		return seedConfig{}, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func printHash(out io.Writer, h hasher, plain string) error {
	encoded, err := h.Hash(plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, encoded)
	return err
}

func seed(ctx context.Context, out io.Writer, s adminSeeder, cfg seedConfig) error {
	user, created, err := s.EnsureAdmin(ctx, cfg.Name, cfg.Email, cfg.Password)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "created admin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(out, "promoted %s (%s) to admin\n", user.Email, user.ID)
	}
	return nil
}
