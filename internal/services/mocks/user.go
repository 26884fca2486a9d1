package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)

	return m
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	return ret[*models.User](args, 0), args.Error(1)
}

func (m *UserService) SeedAdmin(ctx context.Context, cfg config.Admin) error {
	return m.Called(ctx, cfg).Error(0)
}

type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)

	return m
}

func (m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	return ret[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	args := m.Called(ctx, refreshToken)

	return ret[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *AuthService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *AuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *AuthService) SessionExists(ctx context.Context, claims *models.Claims, token string) (bool, error) {
	args := m.Called(ctx, claims, token)

	return args.Bool(0), args.Error(1)
}

type AddressService struct {
	mock.Mock
}

func NewAddressService(t testingT) *AddressService {
	m := &AddressService{}
	register(&m.Mock, t)

	return m
}

func (m *AddressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error) {
	args := m.Called(ctx, userID, req)

	return ret[*models.Address](args, 0), args.Error(1)
}

func (m *AddressService) UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error) {
	args := m.Called(ctx, userID, req)

	return ret[*models.Address](args, 0), args.Error(1)
}

func (m *AddressService) GetAddress(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, userID)

	return ret[*models.Address](args, 0), args.Error(1)
}
