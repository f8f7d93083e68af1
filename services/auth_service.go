package services

import (
	"context"
	"errors"

	"github.com/upb/notice-board/auth"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories"
	"go.uber.org/zap"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string
	User  *models.User
}

// AuthService verifies credentials and session tokens
type AuthService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Login checks email and password and issues a session token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to load user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
		return nil, WrapInternal("failed to verify password", err)
	}

	token, err := s.tokens.Issue(user.Actor())
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token into the acting identity
func (s *AuthService) Authenticate(_ context.Context, token string) (models.Actor, error) {
	if token == "" {
		return models.Actor{}, ErrMissingToken
	}

	actor, err := s.tokens.Parse(token)
	if err != nil {
		return models.Actor{}, ErrInvalidToken.Wrap(err)
	}
	return actor, nil
}
