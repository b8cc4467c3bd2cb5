package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrEmailExists or ErrPhoneExists when the
	// corresponding identifier is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. The lookup is case-insensitive;
	// callers should pass the identifier as entered.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByPhone retrieves a user by exact phone number match.
	// Returns ErrUserNotFound if the user does not exist.
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)

	// Update modifies an existing user's profile fields (name, address,
	// about_me, profile_picture). Login identifiers and role are immutable
	// through this method. Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// UpdatePassword replaces the user's password hash.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// MarkVerified sets the user's is_verified flag.
	// Returns ErrUserNotFound if the user does not exist.
	MarkVerified(ctx context.Context, id uuid.UUID) error

	// Delete removes a user; owned rows are removed by FK cascade.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListProfessionals returns all active users with a professional role
	// (Tailor, Fashion_Designer).
	ListProfessionals(ctx context.Context) ([]*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
