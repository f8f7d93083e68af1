// Command create-admin provisions the bootstrap admin account.
// It is a no-op when any admin already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/upb/notice-board/app"
	"github.com/upb/notice-board/config"
	"github.com/upb/notice-board/internal/observability"
	"github.com/upb/notice-board/services"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.New(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// seeding is done explicitly below
	cfg.Seed.Enabled = false

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize dependencies", zap.Error(err))
	}

	if err := provisionAdmin(ctx, deps.UserService, deps.Close, cfg.Seed, logger); err != nil {
		logger.Fatal("failed to create admin", zap.Error(err))
	}
}

// provisionAdmin ensures the seed admin exists, then releases the store.
// A close failure is logged but does not fail the command.
func provisionAdmin(ctx context.Context, users *services.UserService, closeFn func(context.Context) error, seed config.SeedConfig, logger *zap.Logger) error {
	created, err := users.EnsureAdmin(ctx, seed.Email, seed.Password, seed.FullName)
	if cerr := closeFn(context.Background()); cerr != nil {
		logger.Error("failed to close dependencies", zap.Error(cerr))
	}
	if err != nil {
		return err
	}

	if created {
		logger.Info("admin user created", zap.String("email", seed.Email))
	} else {
		logger.Info("admin user already exists")
	}
	return nil
}
