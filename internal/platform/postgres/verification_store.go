package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

// PostgresEmailVerificationStore implements store.EmailVerificationStore
// using a PostgreSQL database as the storage backend.
type PostgresEmailVerificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmailVerificationStore creates a new PostgreSQL implementation
// of the EmailVerificationStore interface.
func NewPostgresEmailVerificationStore(db store.DBTX, logger *slog.Logger) *PostgresEmailVerificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmailVerificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "email_verification_store")),
	}
}

var _ store.EmailVerificationStore = (*PostgresEmailVerificationStore)(nil)

// WithTx implements store.EmailVerificationStore.WithTx
func (s *PostgresEmailVerificationStore) WithTx(tx *sql.Tx) store.EmailVerificationStore {
	return &PostgresEmailVerificationStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.EmailVerificationStore.Create
func (s *PostgresEmailVerificationStore) Create(ctx context.Context, verification *domain.EmailVerification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO email_verifications (id, user_id, token, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		verification.ID,
		verification.UserID,
		verification.Token,
		verification.IsUsed,
		verification.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create email verification",
			slog.String("error", err.Error()),
			slog.String("user_id", verification.UserID.String()))
		return MapError(err)
	}

	log.Debug("email verification created",
		slog.String("user_id", verification.UserID.String()))
	return nil
}

// GetUnusedByToken implements store.EmailVerificationStore.GetUnusedByToken
func (s *PostgresEmailVerificationStore) GetUnusedByToken(ctx context.Context, token uuid.UUID) (*domain.EmailVerification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, token, is_used, created_at
		FROM email_verifications
		WHERE token = $1 AND NOT is_used
	`

	var v domain.EmailVerification
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&v.ID,
		&v.UserID,
		&v.Token,
		&v.IsUsed,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("email verification token not found or already used")
			return nil, store.ErrVerificationNotFound
		}
		log.Error("failed to get email verification by token",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &v, nil
}

// MarkUsed implements store.EmailVerificationStore.MarkUsed
// The guard on is_used makes consumption single-use even when two requests
// race on the same token.
func (s *PostgresEmailVerificationStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE email_verifications SET is_used = TRUE WHERE id = $1 AND NOT is_used`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to mark email verification used",
			slog.String("error", err.Error()),
			slog.String("verification_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVerificationNotFound); err != nil {
		log.Debug("email verification not found or already used",
			slog.String("verification_id", id.String()))
		return err
	}

	log.Info("email verification consumed", slog.String("verification_id", id.String()))
	return nil
}

// PostgresPhoneVerificationStore implements store.PhoneVerificationStore
// using a PostgreSQL database as the storage backend.
type PostgresPhoneVerificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPhoneVerificationStore creates a new PostgreSQL implementation
// of the PhoneVerificationStore interface.
func NewPostgresPhoneVerificationStore(db store.DBTX, logger *slog.Logger) *PostgresPhoneVerificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPhoneVerificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "phone_verification_store")),
	}
}

var _ store.PhoneVerificationStore = (*PostgresPhoneVerificationStore)(nil)

// WithTx implements store.PhoneVerificationStore.WithTx
func (s *PostgresPhoneVerificationStore) WithTx(tx *sql.Tx) store.PhoneVerificationStore {
	return &PostgresPhoneVerificationStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PhoneVerificationStore.Create
func (s *PostgresPhoneVerificationStore) Create(ctx context.Context, verification *domain.PhoneVerification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := verification.Validate(); err != nil {
		log.Warn("phone verification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", verification.UserID.String()))
		return err
	}

	query := `
		INSERT INTO phone_verifications (id, user_id, phone_number, otp_code, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		verification.ID,
		verification.UserID,
		verification.PhoneNumber,
		verification.OTPCode,
		verification.IsVerified,
		verification.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create phone verification",
			slog.String("error", err.Error()),
			slog.String("user_id", verification.UserID.String()))
		return MapError(err)
	}

	log.Debug("phone verification created",
		slog.String("user_id", verification.UserID.String()))
	return nil
}

// GetLatestUnverified implements store.PhoneVerificationStore.GetLatestUnverified
// Only the most recent matching code counts, so requesting a fresh OTP
// implicitly invalidates older ones that share the same digits.
func (s *PostgresPhoneVerificationStore) GetLatestUnverified(ctx context.Context, phoneNumber, code string) (*domain.PhoneVerification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, phone_number, otp_code, is_verified, created_at
		FROM phone_verifications
		WHERE phone_number = $1 AND otp_code = $2 AND NOT is_verified
		ORDER BY created_at DESC
		LIMIT 1
	`

	var v domain.PhoneVerification
	err := s.db.QueryRowContext(ctx, query, phoneNumber, code).Scan(
		&v.ID,
		&v.UserID,
		&v.PhoneNumber,
		&v.OTPCode,
		&v.IsVerified,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no matching unverified OTP code")
			return nil, store.ErrVerificationNotFound
		}
		log.Error("failed to get phone verification",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &v, nil
}

// MarkVerified implements store.PhoneVerificationStore.MarkVerified
func (s *PostgresPhoneVerificationStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE phone_verifications SET is_verified = TRUE WHERE id = $1 AND NOT is_verified`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to mark phone verification used",
			slog.String("error", err.Error()),
			slog.String("verification_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrVerificationNotFound); err != nil {
		log.Debug("phone verification not found or already used",
			slog.String("verification_id", id.String()))
		return err
	}

	log.Info("phone verification consumed", slog.String("verification_id", id.String()))
	return nil
}
