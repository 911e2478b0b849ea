package postgres

import (
	"context"
	"database/sql"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

type TokenBlacklistRepository struct {
	db *sql.DB
}

func NewTokenBlacklistRepository(db *sql.DB) ports.TokenBlacklistRepository {
	return &TokenBlacklistRepository{db: db}
}

func (r *TokenBlacklistRepository) Save(ctx context.Context, token *domain.BlacklistedToken) error {
	query := `
		INSERT INTO blacklisted_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, token.Token, token.UserID, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
}

func (r *TokenBlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1 AND expires_at > now())`
	var blacklisted bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&blacklisted); err != nil {
		return false, err
	}
	return blacklisted, nil
}
