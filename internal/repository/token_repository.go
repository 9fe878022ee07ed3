package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scireda/backend/internal/model"
)

type TokenRepository interface {
	Create(ctx context.Context, token model.AccessToken) error
	Find(ctx context.Context, id string) (*model.AccessToken, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db dbtx
}

func NewTokenRepository(db dbtx) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token model.AccessToken) error {
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO access_tokens (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		token.ID,
		token.UserID,
		formatTime(token.ExpiresAt),
		formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create access token: %w", err)
	}
	return nil
}

// Find returns nil when the token was never issued or has been revoked.
func (r *tokenRepository) Find(ctx context.Context, id string) (*model.AccessToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, expires_at, created_at FROM access_tokens WHERE id = ?`, id)

	var token model.AccessToken
	var expiresAt, createdAt string
	if err := row.Scan(&token.ID, &token.UserID, &expiresAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find access token: %w", err)
	}
	var err error
	if token.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("parse token expires_at: %w", err)
	}
	if token.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse token created_at: %w", err)
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user tokens: %w", err)
	}
	return res.RowsAffected()
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_tokens WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return res.RowsAffected()
}
