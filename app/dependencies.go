package app

import (
	"context"
	"fmt"

	"github.com/upb/notice-board/auth"
	"github.com/upb/notice-board/config"
	"github.com/upb/notice-board/middleware"
	"github.com/upb/notice-board/repositories"
	"github.com/upb/notice-board/repositories/memory"
	"github.com/upb/notice-board/repositories/postgres"
	"github.com/upb/notice-board/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil with the memory store
	Logger *zap.Logger

	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users   repositories.UserRepository
	Notices repositories.NoticeRepository

	// Auth
	Tokens         *auth.TokenManager
	Hasher         *auth.PasswordHasher
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	AuthService   *services.AuthService
	UserService   *services.UserService
	NoticeService *services.NoticeService
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	repos, err := deps.initStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	deps.wire(repos)

	if cfg.Seed.Enabled {
		if err := deps.SeedAdmin(ctx); err != nil {
			_ = deps.Close(ctx)
			return nil, fmt.Errorf("failed to seed admin: %w", err)
		}
	}

	logger.Info("all dependencies initialized successfully",
		zap.String("store", cfg.Store.Driver))
	return deps, nil
}

// NewDependenciesWithRepositories wires services over an existing set of repositories
func NewDependenciesWithRepositories(cfg *config.Config, logger *zap.Logger, repos *repositories.Repositories) *Dependencies {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}
	deps.wire(repos)
	return deps
}

func (d *Dependencies) initStore(cfg *config.Config) (*repositories.Repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		d.Logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore().Repositories(), nil

	case config.StoreDriverPostgres, "":
		factory, err := postgres.NewRepositoryFactory(cfg.Database, d.Logger)
		if err != nil {
			d.Logger.Error("database connection failed",
				zap.String("connection", cfg.Database.LogString()),
				zap.Error(err))
			return nil, err
		}
		d.RepoFactory = factory
		d.DB = factory.GetDB()
		return factory.NewRepositories(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (d *Dependencies) wire(repos *repositories.Repositories) {
	d.Users = repos.Users
	d.Notices = repos.Notices

	if d.Config.Auth.SecretGenerated {
		d.Logger.Warn("JWT_SECRET not set, signing tokens with a random per-process secret")
	}
	d.Tokens = auth.NewTokenManager(d.Config.Auth)
	d.Hasher = auth.NewPasswordHasher(d.Config.Auth.BcryptCost)

	d.AuthService = services.NewAuthService(d.Users, d.Tokens, d.Hasher, d.Logger)
	d.UserService = services.NewUserService(d.Users, d.Hasher, d.Logger)
	d.NoticeService = services.NewNoticeService(d.Notices, d.Users, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.AuthService, d.Logger)
}

// SeedAdmin creates the configured bootstrap admin unless an admin exists
func (d *Dependencies) SeedAdmin(ctx context.Context) error {
	seed := d.Config.Seed
	_, err := d.UserService.EnsureAdmin(ctx, seed.Email, seed.Password, seed.FullName)
	return err
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
