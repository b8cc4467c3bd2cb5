package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

// userColumns is the canonical column list scanned by scanUser.
const userColumns = `id, email, phone_number, hashed_password, role, is_active, is_staff,
		is_verified, first_name, last_name, address, about_me, profile_picture,
		created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user to the database, mapping unique violations on the login
// identifiers to store.ErrEmailExists / store.ErrPhoneExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		nullString(user.Email),
		nullString(user.PhoneNumber),
		user.HashedPassword,
		user.Role,
		user.IsActive,
		user.IsStaff,
		user.IsVerified,
		nullString(user.FirstName),
		nullString(user.LastName),
		nullString(user.Address),
		nullString(user.AboutMe),
		nullString(user.ProfilePicture),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			constraint := UniqueConstraintName(err)
			log.Warn("duplicate login identifier during user creation",
				slog.String("constraint", constraint),
				slog.String("user_id", user.ID.String()))
			if strings.Contains(constraint, "phone") {
				return fmt.Errorf("%w: %v", store.ErrPhoneExists, err)
			}
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// The lookup is case-insensitive. Returns store.ErrUserNotFound if no user
// has the email.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// GetByPhone implements store.UserStore.GetByPhone
// Returns store.ErrUserNotFound if no user has the phone number.
func (s *PostgresUserStore) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, strings.TrimSpace(phoneNumber)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by phone number")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by phone number",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// Update implements store.UserStore.Update
// Only profile fields are written; login identifiers, role and flags are
// managed through dedicated methods.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, address = $3, about_me = $4,
			profile_picture = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		nullString(user.FirstName),
		nullString(user.LastName),
		nullString(user.Address),
		nullString(user.AboutMe),
		nullString(user.ProfilePicture),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for update", slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user updated successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// UpdatePassword implements store.UserStore.UpdatePassword
func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if hashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `UPDATE users SET hashed_password = $1, updated_at = $2 WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, hashedPassword, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update user password",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user password updated", slog.String("user_id", id.String()))
	return nil
}

// MarkVerified implements store.UserStore.MarkVerified
func (s *PostgresUserStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE users SET is_verified = TRUE, updated_at = $1 WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to mark user verified",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user marked verified", slog.String("user_id", id.String()))
	return nil
}

// Delete implements store.UserStore.Delete
// Dependent rows (bookings, listings, verifications, revoked tokens) are
// removed by ON DELETE CASCADE.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for delete", slog.String("user_id", id.String()))
		return err
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// ListProfessionals implements store.UserStore.ListProfessionals
func (s *PostgresUserStore) ListProfessionals(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role IN ($1, $2) AND is_active
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, domain.RoleTailor, domain.RoleFashionDesigner)
	if err != nil {
		log.Error("failed to query professionals", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return users, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresUserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var email, phone, firstName, lastName, address, aboutMe, picture sql.NullString

	err := row.Scan(
		&user.ID,
		&email,
		&phone,
		&user.HashedPassword,
		&user.Role,
		&user.IsActive,
		&user.IsStaff,
		&user.IsVerified,
		&firstName,
		&lastName,
		&address,
		&aboutMe,
		&picture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Email = email.String
	user.PhoneNumber = phone.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Address = address.String
	user.AboutMe = aboutMe.String
	user.ProfilePicture = picture.String

	return &user, nil
}

// nullString converts an empty string to a SQL NULL so the partial unique
// constraints on login identifiers ignore absent values.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
