package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	SessionExists(ctx context.Context, userID uuid.UUID, email, token string) (bool, error)
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
}

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO sessions (id, user_id, email, token, refresh_token, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, session.ID, session.UserID, session.Email, session.Token, session.RefreshToken).Scan(&session.CreatedAt)

	return translate(err)
}

// SessionExists reports whether the access token still belongs to a live session.
func (r *sessionRepository) SessionExists(ctx context.Context, userID uuid.UUID, email, token string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM sessions WHERE user_id = $1 AND email = $2 AND token = $3)`

	if err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, userID, email, token).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *sessionRepository) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	session := &models.Session{}

	query := `SELECT id, user_id, email, token, refresh_token, created_at FROM sessions WHERE refresh_token = $1`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, refreshToken).
		Scan(&session.ID, &session.UserID, &session.Email, &session.Token, &session.RefreshToken, &session.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}

	return session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM sessions WHERE id = $1`, id)

	return err
}

func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM sessions WHERE user_id = $1`, userID)

	return err
}
