package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below. Ownership-scoped lookups deliberately return the same
	// error for "does not exist" and "not yours" so that callers cannot
	// probe for the existence of other users' rows.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrVerificationNotFound indicates that no matching verification row
	// exists (unknown token, already-used token, or wrong OTP code).
	ErrVerificationNotFound = fmt.Errorf("%w: verification", ErrNotFound)

	// ErrBookingNotFound indicates that the requested booking does not exist
	// or is not visible to the caller.
	ErrBookingNotFound = fmt.Errorf("%w: booking", ErrNotFound)

	// ErrProductNotFound indicates that the requested product does not exist
	// or is not owned by the caller.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrServiceNotFound indicates that the requested service does not exist
	// or is not owned by the caller.
	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)

	// ErrPostNotFound indicates that the requested style feed post does not
	// exist or is not authored by the caller.
	ErrPostNotFound = fmt.Errorf("%w: style feed post", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPhoneExists indicates that a user with the given phone number
	// already exists.
	ErrPhoneExists = fmt.Errorf("%w: phone number", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
