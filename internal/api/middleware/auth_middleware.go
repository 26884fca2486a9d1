package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/auth"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

const AccessTokenCookie = "accessToken"

// SessionChecker reports whether a token still belongs to a live login session.
type SessionChecker interface {
	SessionExists(ctx context.Context, claims *models.Claims, token string) (bool, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthMiddleware struct {
	tokens   *auth.TokenManager
	sessions SessionChecker
	users    UserLookup
}

func NewAuthMiddleware(tokens *auth.TokenManager, sessions SessionChecker, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, users: users}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		tokenString, appErr := extractToken(r)
		if appErr != nil {
			logger.Warn("Missing or malformed credentials", slog.String("error", appErr.Message))
			response.Error(w, appErr)

			return
		}

		claims, err := m.tokens.ParseAccess(tokenString)
		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		exists, err := m.sessions.SessionExists(r.Context(), claims, tokenString)
		if err != nil {
			logger.Error("Session lookup failed", slog.Any("error", err))
			response.Error(w, errors.DatabaseError("Failed to verify session").WithError(err))

			return
		}

		if !exists {
			logger.Warn("Token has no active session", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Session has expired, please log in again"))

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = WithLogger(ctx, requestScopedLogger)

		requestScopedLogger.Info("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		user, err := m.users.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		if user.Role != models.RoleAdmin {
			LoggerFromContext(r.Context()).Warn("Admin route denied", slog.String("role", string(user.Role)))
			response.Error(w, errors.ForbiddenError("Admin access required"))

			return
		}

		next.ServeHTTP(w, r)
	}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}

// extractToken prefers the Authorization header and falls back to the access token cookie.
func extractToken(r *http.Request) (string, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}

		return "", errors.UnauthorizedError("Authorization header is required")
	}

	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")

	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	if tokenParts[1] == "" {
		return "", errors.UnauthorizedError("Invalid or expired token")
	}

	return tokenParts[1], nil
}
