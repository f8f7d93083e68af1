package services

import (
	"context"
	"errors"

	"github.com/upb/notice-board/auth"
	"github.com/upb/notice-board/internal/policy"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories"
	"github.com/upb/notice-board/utils"
	"go.uber.org/zap"
)

// CreateUserInput carries the fields for a new account
type CreateUserInput struct {
	Email    string      `json:"email" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=admin teacher student"`
	FullName string      `json:"fullName" validate:"required"`
}

// UserService provisions accounts
type UserService struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUser provisions an account on behalf of actor. The actor's role is
// re-read from the store so a stale token cannot outlive a role change.
func (s *UserService) CreateUser(ctx context.Context, actor models.Actor, in CreateUserInput) (*models.User, error) {
	if d := policy.Decide(policy.Request{Actor: actor, Action: policy.ActionCreateUser}); !d.Allowed {
		return nil, ErrCreateUserForbidden
	}

	current, err := currentActor(ctx, s.users, actor)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCreateUserForbidden
		}
		return nil, WrapInternal("failed to load acting user", err)
	}
	if d := policy.Decide(policy.Request{Actor: current, Action: policy.ActionCreateUser}); !d.Allowed {
		s.logger.Warn("token role is stale",
			zap.String("user_id", actor.ID.String()),
			zap.String("token_role", string(actor.Role)),
			zap.String("stored_role", string(current.Role)))
		return nil, ErrCreateUserForbidden
	}

	user, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", actor.ID.String()))
	return user, nil
}

// EnsureAdmin creates the bootstrap admin unless an admin already exists.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, WrapInternal("failed to look up admins", err)
	}
	if exists {
		s.logger.Info("admin already exists, skipping bootstrap")
		return false, nil
	}

	user, err := s.create(ctx, CreateUserInput{
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		FullName: fullName,
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("bootstrap admin created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return true, nil
}

func (s *UserService) create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, invalidInput(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, ErrInvalidInput.Wrap(err).WithDetail("password", "password could not be hashed")
	}

	user := models.NewUser(in.Email, hash, in.Role, in.FullName)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail.Wrap(err)
		}
		return nil, WrapInternal("failed to create user", err)
	}
	return user, nil
}

// currentActor re-reads actor from the store so authorization uses the
// persisted role rather than the one in the token.
func currentActor(ctx context.Context, users repositories.UserRepository, actor models.Actor) (models.Actor, error) {
	stored, err := users.GetByID(ctx, actor.ID)
	if err != nil {
		return models.Actor{}, err
	}
	return stored.Actor(), nil
}
