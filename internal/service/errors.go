// Package service provides application-level services for identity, bookings,
// the marketplace catalog, and verification flows.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with
// errors.Is(); the API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredentials indicates a failed login attempt. It deliberately
	// covers unknown identifiers, wrong passwords, and disabled accounts so
	// responses do not reveal which identifiers are registered or usable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrVerificationExpired indicates the email verification token exists
	// but its validity window has passed.
	ErrVerificationExpired = errors.New("verification token has expired")

	// ErrInvalidOTP indicates the OTP code did not match, was already used,
	// or has expired. Collapsed into one error so responses do not reveal
	// which failure occurred.
	ErrInvalidOTP = errors.New("invalid or expired OTP code")

	// ErrNotProfessional indicates a booking referenced a user whose role
	// cannot receive bookings.
	ErrNotProfessional = errors.New("referenced user is not a tailor or fashion designer")

	// ErrBookingAlreadyDecided indicates the booking was decided before this
	// request's write reached the row.
	ErrBookingAlreadyDecided = errors.New("booking has already been decided")

	// ErrWrongPassword indicates the current password supplied for a password
	// change did not match.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrEmailRequired indicates the operation needs an email address the
	// account does not have.
	ErrEmailRequired = errors.New("account has no email address")
)

// TokenPair is the access/refresh token pair issued on login, OTP
// verification, and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
