package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

// PostgresTokenStore implements store.TokenStore using a PostgreSQL table of
// revoked refresh token IDs.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

var _ store.TokenStore = (*PostgresTokenStore)(nil)

// WithTx implements store.TokenStore.WithTx
func (s *PostgresTokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &PostgresTokenStore{
		db:     tx,
		logger: s.logger,
	}
}

// Revoke implements store.TokenStore.Revoke
// ON CONFLICT DO NOTHING makes revocation idempotent: logging out twice with
// the same token is not an error.
func (s *PostgresTokenStore) Revoke(ctx context.Context, jti, userID uuid.UUID, expiresAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, jti, userID, expiresAt, time.Now().UTC())
	if err != nil {
		log.Error("failed to revoke token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	log.Info("refresh token revoked",
		slog.String("jti", jti.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// IsRevoked implements store.TokenStore.IsRevoked
func (s *PostgresTokenStore) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var revoked bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	if err := s.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		log.Error("failed to check token revocation",
			slog.String("error", err.Error()))
		return false, err
	}

	return revoked, nil
}
