package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// EmailVerificationStore defines persistence for email verification tokens.
type EmailVerificationStore interface {
	// Create saves a new email verification row.
	Create(ctx context.Context, verification *domain.EmailVerification) error

	// GetUnusedByToken retrieves the verification row for an unused token.
	// Used and unknown tokens both return ErrVerificationNotFound; expiry is
	// the caller's concern.
	GetUnusedByToken(ctx context.Context, token uuid.UUID) (*domain.EmailVerification, error)

	// MarkUsed consumes the verification. Returns ErrVerificationNotFound if
	// the row does not exist or was already consumed, so a token can never be
	// spent twice even under concurrent verification attempts.
	MarkUsed(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) EmailVerificationStore
}

// PhoneVerificationStore defines persistence for OTP codes.
type PhoneVerificationStore interface {
	// Create saves a new phone verification row.
	Create(ctx context.Context, verification *domain.PhoneVerification) error

	// GetLatestUnverified retrieves the most recently created unverified row
	// matching the phone number and code. Returns ErrVerificationNotFound if
	// no row matches; expiry is the caller's concern.
	GetLatestUnverified(ctx context.Context, phoneNumber, code string) (*domain.PhoneVerification, error)

	// MarkVerified consumes the code. Returns ErrVerificationNotFound if the
	// row does not exist or was already consumed.
	MarkVerified(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) PhoneVerificationStore
}
