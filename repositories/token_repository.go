package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/khelmitra/scoreboard/models"
)

var ErrTokenNotFound = errors.New("auth token not found")

type TokenRepository interface {
	// GetOrCreate returns the user's existing token key, inserting
	// candidateKey only when the user has none yet. The key is stable across
	// logins.
	GetOrCreate(ctx context.Context, userID int, candidateKey string) (string, error)
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
}

type postgresTokenRepository struct {
	db *sql.DB
}

func NewPostgresTokenRepository(db *sql.DB) TokenRepository {
	return &postgresTokenRepository{db: db}
}

func (r *postgresTokenRepository) GetOrCreate(ctx context.Context, userID int, candidateKey string) (string, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict,
	// so concurrent logins all observe the same key.
	query := `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key`

	var key string
	if err := r.db.QueryRowContext(ctx, query, candidateKey, userID).Scan(&key); err != nil {
		return "", err
	}
	return key, nil
}

func (r *postgresTokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	query := `SELECT key, user_id, created_at FROM auth_tokens WHERE key = $1`

	token := &models.AuthToken{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}
