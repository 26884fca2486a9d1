package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/auth"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	RefreshToken(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	SessionExists(ctx context.Context, claims *models.Claims, token string) (bool, error)
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	carts    repository.CartRepository
	limiter  repository.RateLimitRepository
	tokens   *auth.TokenManager
	mailer   Mailer
	resetTTL time.Duration
	now      func() time.Time
}

func NewAuthService(repos *repository.Repositories, limiter repository.RateLimitRepository, tokens *auth.TokenManager, mailer Mailer, resetTTL time.Duration) AuthService {
	return &authService{
		users:    repos.Users,
		sessions: repos.Sessions,
		carts:    repos.Carts,
		limiter:  limiter,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)
	identifier := strings.TrimSpace(req.Identifier)

	allowed, remaining, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, identifier)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter)).
			WithData(map[string]int{"retry_after": retryAfter})
	}

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user")
	}

	if user.IsDeleted {
		return nil, appErrors.ForbiddenError("This account has been deactivated")
	}

	if !user.IsEmailVerified {
		return nil, appErrors.ForbiddenError("Please verify your email address before logging in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, appErrors.UnauthorizedError("Invalid credentials").
			WithData(&models.LoginResponse{RemainingTries: remaining})
	}

	if err := s.limiter.ResetLoginAttempts(ctx, identifier); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	resp, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if req.CartToken != "" {
		s.claimCart(ctx, user.ID, req.CartToken)
	}

	logger.Info("User logged in", slog.String("userId", user.ID.String()))

	return resp, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
		return appErrors.DatabaseError("Failed to log out").WithError(err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User not found", "Failed to get user")
	}

	user.RefreshToken = ""

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return appErrors.DatabaseError("Failed to log out").WithError(err)
	}

	return nil
}

// RefreshToken rotates the pair: the session behind the old refresh token is replaced.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, appErrors.UnauthorizedError("Invalid refresh token").WithError(err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.UnauthorizedError("Invalid refresh token").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to get user").WithError(err)
	}

	if user.IsDeleted || user.RefreshToken != refreshToken {
		return nil, appErrors.UnauthorizedError("Refresh token has been revoked")
	}

	session, err := s.sessions.GetSessionByRefreshToken(ctx, refreshToken)
	switch {
	case err == nil:
		if err := s.sessions.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.DatabaseError("Failed to rotate session").WithError(err)
		}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, appErrors.DatabaseError("Failed to get session").WithError(err)
	}

	return s.startSession(ctx, user)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User not found", "Failed to get user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return appErrors.UnauthorizedError("Old password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user.Password = string(hashedPassword)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return appErrors.DatabaseError("Failed to change password").WithError(err)
	}

	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return notFoundOr(err, "User not found", "Failed to get user")
	}

	expiry := s.now().Add(s.resetTTL)
	user.ResetPasswordToken = newToken()
	user.ResetPasswordExpiry = &expiry

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return appErrors.DatabaseError("Failed to start password reset").WithError(err)
	}

	email, name, token := user.Email, user.FullName, user.ResetPasswordToken

	sendMailAsync(ctx, s.mailer, "password_reset", func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, email, name, token)
	})

	return nil
}

// ResetPassword also revokes every session so stolen tokens stop working.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	user, err := s.users.GetUserByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.BadRequestError("Invalid or expired reset token").WithError(err)
		}

		return appErrors.DatabaseError("Failed to reset password").WithError(err)
	}

	if user.ResetPasswordExpiry == nil || s.now().After(*user.ResetPasswordExpiry) {
		return appErrors.BadRequestError("Invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpiry = nil
	user.RefreshToken = ""

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return appErrors.DatabaseError("Failed to reset password").WithError(err)
	}

	if err := s.sessions.DeleteUserSessions(ctx, user.ID); err != nil {
		return appErrors.DatabaseError("Failed to revoke sessions").WithError(err)
	}

	return nil
}

func (s *authService) SessionExists(ctx context.Context, claims *models.Claims, token string) (bool, error) {
	return s.sessions.SessionExists(ctx, claims.UserID, claims.Email, token)
}

func (s *authService) startSession(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	session := &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		Email:        user.Email,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, appErrors.DatabaseError("Failed to create session").WithError(err)
	}

	user.RefreshToken = pair.RefreshToken

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to store refresh token").WithError(err)
	}

	return &models.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// claimCart binds an anonymous cart to the user. Failures never block the login.
func (s *authService) claimCart(ctx context.Context, userID uuid.UUID, token string) {
	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.carts.GetCartByToken(ctx, token, false)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Failed to load cart for login", slog.Any("error", err))
		}

		return
	}

	if cart.UserID != nil {
		return
	}

	cart.UserID = &userID

	if err := s.carts.UpdateCart(ctx, cart); err != nil {
		logger.Warn("Failed to claim cart", slog.String("cartId", cart.ID.String()), slog.Any("error", err))
	}
}
