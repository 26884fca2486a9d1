package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)

	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	register(&m.Mock, t)

	return m
}

func (m *SessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) SessionExists(ctx context.Context, userID uuid.UUID, email, token string) (bool, error) {
	args := m.Called(ctx, userID, email, token)

	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, refreshToken)

	return ret[*models.Session](args, 0), args.Error(1)
}

func (m *SessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t testingT) *RateLimitRepository {
	m := &RateLimitRepository{}
	register(&m.Mock, t)

	return m
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, identifier string) (bool, int, int, error) {
	args := m.Called(ctx, identifier)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *RateLimitRepository) ResetLoginAttempts(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}
