package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/services"
	"github.com/upb/notice-board/utils"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token into the acting identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Actor, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	authenticator Authenticator
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// RequireAuth rejects requests without a valid bearer token.
// A missing token is 401; a token that fails verification is 403.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		actor, err := m.authenticator.Authenticate(ctx, extractBearerToken(r))
		if err != nil {
			m.logger.Warn("authentication failed",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path),
				zap.Error(err))

			message := services.GetErrorMessage(err)
			switch {
			case services.IsUnauthorizedError(err):
				_ = utils.WriteUnauthorized(w, message)
			case services.IsInvalidTokenError(err):
				_ = utils.WriteForbidden(w, message)
			default:
				_ = utils.WriteInternalServerError(w, "Server error", nil)
			}
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", actor.ID.String()),
			zap.String("role", string(actor.Role)))

		next.ServeHTTP(w, r.WithContext(WithActor(ctx, actor)))
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header.
// Any other scheme counts as no token.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
