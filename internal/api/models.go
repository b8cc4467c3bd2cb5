package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Either email or phone number must be present; both are accepted.
type RegisterRequest struct {
	Email           string `json:"email"            validate:"required_without=PhoneNumber,omitempty,email"`
	PhoneNumber     string `json:"phone_number"     validate:"required_without=Email,omitempty,min=7,max=20"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role"             validate:"required,oneof=Customer Tailor Fashion_Designer Vendor"`
}

// LoginRequest defines the payload for the user login endpoint. The
// identifier is an email address or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// RefreshTokenRequest defines the payload for the token refresh and logout
// endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RequestOTPRequest defines the payload for requesting a phone OTP code.
type RequestOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
}

// VerifyOTPRequest defines the payload for verifying a phone OTP code.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
	Code        string `json:"code"         validate:"required,len=6,numeric"`
}

// UpdateProfileRequest defines the payload for partial profile updates.
// Absent fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name"      validate:"omitempty,max=100"`
	LastName       *string `json:"last_name"       validate:"omitempty,max=100"`
	Address        *string `json:"address"         validate:"omitempty,max=500"`
	AboutMe        *string `json:"about_me"        validate:"omitempty,max=2000"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,max=500"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password"     validate:"required"`
	NewPassword        string `json:"new_password"         validate:"required,min=8,max=72"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// BookingRequest defines the payload for creating and updating bookings.
// ProfessionalID is ignored on update; both parties are fixed at creation.
type BookingRequest struct {
	ProfessionalID string    `json:"professional_id" validate:"omitempty,uuid"`
	ServiceType    string    `json:"service_type"    validate:"required,max=200"`
	Date           time.Time `json:"date"            validate:"required"`
	Location       string    `json:"location"        validate:"omitempty,max=500"`
	Notes          string    `json:"notes"           validate:"omitempty,max=2000"`
}

// DecideBookingRequest defines the payload for the booking decision endpoint.
type DecideBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// ProductRequest defines the payload for creating and updating products.
type ProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"   validate:"omitempty,max=500"`
}

// ServiceRequest defines the payload for creating and updating service
// offerings.
type ServiceRequest struct {
	Title       string          `json:"title"       validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=2000"`
	Price       decimal.Decimal `json:"price"`
	Available   *bool           `json:"available"`
}

// PostRequest defines the payload for creating and updating style feed posts.
type PostRequest struct {
	ImageURL string `json:"image_url" validate:"required,max=500"`
	Caption  string `json:"caption"   validate:"omitempty,max=2000"`
}

// MessageResponse is a minimal acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// DashboardResponse wraps per-status booking counts for the caller.
type DashboardResponse struct {
	Counts *store.BookingCounts `json:"counts"`
}
