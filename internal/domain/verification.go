package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Verification expiry windows.
const (
	// EmailVerificationTTL is how long an email verification token stays valid.
	EmailVerificationTTL = 24 * time.Hour

	// PhoneVerificationTTL is how long an OTP code stays valid.
	PhoneVerificationTTL = 10 * time.Minute
)

// Verification validation errors.
var (
	ErrEmptyVerificationUser = errors.New("verification must reference a user")
	ErrInvalidOTPCode        = errors.New("OTP code must be exactly 6 digits")
	ErrEmptyPhoneNumber      = errors.New("phone number cannot be empty")
)

// EmailVerification binds a single-use token to a user's pending email
// verification. The token is consumable exactly once and expires
// EmailVerificationTTL after creation, checked at read time.
type EmailVerification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     uuid.UUID `json:"token"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEmailVerification creates a verification with a fresh random token for
// the given user.
func NewEmailVerification(userID uuid.UUID) (*EmailVerification, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyVerificationUser
	}
	return &EmailVerification{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     uuid.New(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Expired reports whether the token has passed its validity window at the
// given instant.
func (v *EmailVerification) Expired(now time.Time) bool {
	return now.Sub(v.CreatedAt) > EmailVerificationTTL
}

// PhoneVerification binds a short-lived OTP code to a user's phone number.
// Only the most recent unverified code for a phone number is accepted.
type PhoneVerification struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number"`
	OTPCode     string    `json:"otp_code"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPhoneVerification creates a verification for the given user and phone
// number with a freshly generated 6-digit code.
func NewPhoneVerification(userID uuid.UUID, phoneNumber string) (*PhoneVerification, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyVerificationUser
	}
	if phoneNumber == "" {
		return nil, ErrEmptyPhoneNumber
	}

	code, err := GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	return &PhoneVerification{
		ID:          uuid.New(),
		UserID:      userID,
		PhoneNumber: phoneNumber,
		OTPCode:     code,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Validate checks if the PhoneVerification has valid data.
func (v *PhoneVerification) Validate() error {
	if v.UserID == uuid.Nil {
		return ErrEmptyVerificationUser
	}
	if v.PhoneNumber == "" {
		return ErrEmptyPhoneNumber
	}
	if len(v.OTPCode) != 6 {
		return ErrInvalidOTPCode
	}
	for _, c := range v.OTPCode {
		if c < '0' || c > '9' {
			return ErrInvalidOTPCode
		}
	}
	return nil
}

// Expired reports whether the code has passed its validity window at the
// given instant.
func (v *PhoneVerification) Expired(now time.Time) bool {
	return now.Sub(v.CreatedAt) > PhoneVerificationTTL
}

// GenerateOTPCode produces a 6-digit numeric code using crypto/rand.
// Leading zeros are preserved.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
