package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Store persists a new refresh token
func (r *TokenRepository) Store(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Find retrieves a refresh token record by its opaque value
func (r *TokenRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var rt models.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.ID,
		&rt.UserID,
		&rt.Token,
		&rt.ExpiresAt,
		&rt.Revoked,
		&rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &rt, nil
}

// Revoke marks a refresh token as unusable
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser revokes every refresh token belonging to a user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes tokens that are past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
