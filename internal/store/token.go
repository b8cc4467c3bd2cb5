package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TokenStore tracks revoked refresh tokens by their jti claim. A refresh
// token is revoked on logout and on rotation; rows become irrelevant once the
// token's own expiry passes, so no sweep is required for correctness.
type TokenStore interface {
	// Revoke records the jti as revoked. Revoking an already-revoked jti is
	// a no-op.
	Revoke(ctx context.Context, jti, userID uuid.UUID, expiresAt time.Time) error

	// IsRevoked reports whether the jti has been revoked.
	IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) TokenStore
}
