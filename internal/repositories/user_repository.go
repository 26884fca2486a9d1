package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, full_name, contact_number, password, role, is_deleted, is_email_verified,
	email_verification_token, reset_password_token, reset_password_expiry, refresh_token, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}

	var resetExpiry sql.NullTime

	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.ContactNumber, &user.Password, &user.Role, &user.IsDeleted, &user.IsEmailVerified,
		&user.EmailVerificationToken, &user.ResetPasswordToken, &resetExpiry, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if resetExpiry.Valid {
		user.ResetPasswordExpiry = &resetExpiry.Time
	}

	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, email, full_name, contact_number, password, role, is_email_verified, email_verification_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, user.ID, user.Email, user.FullName, user.ContactNumber, user.Password, user.Role,
		user.IsEmailVerified, user.EmailVerificationToken).Scan(&user.CreatedAt, &user.UpdatedAt)

	return translate(err)
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, `id = $1`, id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `LOWER(email) = LOWER($1)`, email)
}

// GetUserByIdentifier matches either the email address or the contact number.
func (r *userRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return r.getUser(ctx, `(LOWER(email) = LOWER($1) OR contact_number = $1)`, identifier)
}

func (r *userRepository) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.getUser(ctx, `email_verification_token = $1 AND email_verification_token <> ''`, token)
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.getUser(ctx, `reset_password_token = $1 AND reset_password_token <> ''`, token)
}

func (r *userRepository) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user, err := scanUser(conn(ctx, r.DB).QueryRowContext(dbCtx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// UpdateUser writes every mutable column of the account.
func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users SET full_name = $1, contact_number = $2, password = $3, role = $4, is_deleted = $5, is_email_verified = $6,
			email_verification_token = $7, reset_password_token = $8, reset_password_expiry = $9, refresh_token = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, user.FullName, user.ContactNumber, user.Password, user.Role, user.IsDeleted, user.IsEmailVerified,
		user.EmailVerificationToken, user.ResetPasswordToken, user.ResetPasswordExpiry, user.RefreshToken, user.ID).Scan(&user.UpdatedAt)

	return translate(err)
}
