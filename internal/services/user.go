package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const mailTimeout = 10 * time.Second

// Mailer delivers the account emails. Delivery happens off the request path.
type Mailer interface {
	SendVerification(ctx context.Context, to, fullName, token string) error
	SendPasswordReset(ctx context.Context, to, fullName, token string) error
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SeedAdmin(ctx context.Context, cfg config.Admin) error
}

type userService struct {
	repo   repository.UserRepository
	mailer Mailer
}

func NewUserService(repo repository.UserRepository, mailer Mailer) UserService {
	return &userService{repo: repo, mailer: mailer}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.DatabaseError("Failed to check existing user").WithError(err)
	}

	if existingUser != nil {
		return nil, appErrors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:                     uuid.New(),
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:               utils.TitleCase(utils.SanitizeText(req.FullName)),
		ContactNumber:          req.ContactNumber,
		Password:               string(hashedPassword),
		Role:                   models.RoleUser,
		EmailVerificationToken: newToken(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.DuplicateEntryError("User with this email or contact number already exists").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	sendMailAsync(ctx, s.mailer, "verification", func(ctx context.Context) error {
		return s.mailer.SendVerification(ctx, user.Email, user.FullName, user.EmailVerificationToken)
	})

	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.repo.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.BadRequestError("Invalid or expired verification token").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to verify email").WithError(err)
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to verify email").WithError(err)
	}

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user")
	}

	user.FullName = utils.TitleCase(utils.SanitizeText(req.FullName))
	user.ContactNumber = req.ContactNumber

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.DuplicateEntryError("Contact number already in use").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update user").WithError(err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user")
	}

	return user, nil
}

// SeedAdmin creates the configured administrator once; an existing account is left alone.
func (s *userService) SeedAdmin(ctx context.Context, cfg config.Admin) error {
	if cfg.Email == "" {
		return nil
	}

	_, err := s.repo.GetUserByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if cfg.Password == "" {
		return errors.New("admin password is required when an admin email is set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:              uuid.New(),
		Email:           strings.ToLower(cfg.Email),
		FullName:        cfg.FullName,
		ContactNumber:   cfg.ContactNumber,
		Password:        string(hashedPassword),
		Role:            models.RoleAdmin,
		IsEmailVerified: true,
	}

	if err := s.repo.CreateUser(ctx, admin); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return err
	}

	middleware.LoggerFromContext(ctx).Info("Admin account seeded", slog.String("email", admin.Email))

	return nil
}

// sendMailAsync fires send in its own goroutine; failures are only logged.
func sendMailAsync(ctx context.Context, mailer Mailer, kind string, send func(context.Context) error) {
	if mailer == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)
	mailCtx := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(mailCtx, mailTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			logger.Error("Failed to send email", slog.String("kind", kind), slog.Any("error", err))
		}
	}()
}

// newToken returns 32 hex characters.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
