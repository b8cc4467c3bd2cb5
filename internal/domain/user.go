package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user is allowed to do on the platform.
type Role string

// Known roles.
const (
	RoleCustomer        Role = "Customer"
	RoleTailor          Role = "Tailor"
	RoleFashionDesigner Role = "Fashion_Designer"
	RoleVendor          Role = "Vendor"
	RoleAdmin           Role = "Admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTailor, RoleFashionDesigner, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Professional reports whether the role can receive and act on bookings
// (Tailor or Fashion_Designer).
func (r Role) Professional() bool {
	return r == RoleTailor || r == RoleFashionDesigner
}

// Common user validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrMissingIdentifier   = errors.New("either email or phone number is required")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Either Email or PhoneNumber must be
// set; both are unique login identifiers. Email is stored lowercased.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	IsStaff        bool      `json:"is_staff"`
	IsVerified     bool      `json:"is_verified"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Address        string    `json:"address,omitempty"`
	AboutMe        string    `json:"about_me,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new active User with the given login identifiers and role.
// It generates a new UUID, normalizes the email, and sets timestamps.
// The caller is responsible for setting HashedPassword before persisting.
// Returns an error if validation fails.
func NewUser(email, phoneNumber string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Email:       NormalizeEmail(email),
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Role:        role,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.validateIdentity(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if err := u.validateIdentity(); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// validateIdentity checks ID, login identifiers, and role. It is split out so
// NewUser can validate before the password has been hashed.
func (u *User) validateIdentity() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" && u.PhoneNumber == "" {
		return ErrMissingIdentifier
	}
	if u.Email != "" && !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// FullName returns the user's display name, falling back to the login
// identifier when no name has been set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.PhoneNumber
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique constraint behave case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks plaintext password length bounds (bcrypt caps input
// at 72 bytes).
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

// validEmailFormat performs basic structural validation of an email address:
// a local part, an @, and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domain := email[atIndex+1:]
	dotIndex := strings.IndexByte(domain, '.')
	return dotIndex > 0 && dotIndex < len(domain)-1
}
