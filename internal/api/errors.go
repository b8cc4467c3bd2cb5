package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/policy"
	"github.com/tailorent/tailorent-api/internal/service"
	"github.com/tailorent/tailorent-api/internal/service/auth"
	"github.com/tailorent/tailorent-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, policy.ErrForbidden),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors, including ownership-scoped misses
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrBookingAlreadyDecided),
		errors.Is(err, domain.ErrBookingAlreadyDecided):
		return http.StatusConflict

	// Expired verification tokens are distinct from unknown ones
	case errors.Is(err, service.ErrVerificationExpired):
		return http.StatusGone

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidBookingStatus),
		errors.Is(err, domain.ErrMissingIdentifier),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPhoneNumber),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyServiceType),
		errors.Is(err, domain.ErrEmptyBookingDate),
		errors.Is(err, domain.ErrSelfBooking),
		errors.Is(err, domain.ErrEmptyListingName),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrEmptyImageURL),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrNotProfessional),
		errors.Is(err, service.ErrEmailRequired):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrWrongPassword):
		return "Current password is incorrect"

	// Authorization errors
	case errors.Is(err, policy.ErrForbidden),
		errors.Is(err, domain.ErrUnauthorized):
		return "You do not have permission to perform this action"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrBookingNotFound):
		return "Booking not found"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrServiceNotFound):
		return "Service not found"

	case errors.Is(err, store.ErrPostNotFound):
		return "Post not found"

	case errors.Is(err, store.ErrVerificationNotFound):
		return "Verification token not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrPhoneExists):
		return "Phone number already exists"

	case errors.Is(err, service.ErrBookingAlreadyDecided),
		errors.Is(err, domain.ErrBookingAlreadyDecided):
		return "Booking has already been decided"

	// Verification errors
	case errors.Is(err, service.ErrVerificationExpired):
		return "Verification token has expired"

	case errors.Is(err, service.ErrInvalidOTP):
		return "Invalid or expired OTP code"

	// Bad request errors
	case errors.Is(err, service.ErrNotProfessional):
		return "Bookings can only reference tailors or fashion designers"

	case errors.Is(err, service.ErrEmailRequired):
		return "Account has no email address"

	case errors.Is(err, domain.ErrInvalidBookingStatus):
		return "Status must be accepted or rejected"

	case errors.Is(err, domain.ErrSelfBooking):
		return "You cannot book yourself"

	case errors.Is(err, domain.ErrEmptyServiceType),
		errors.Is(err, domain.ErrEmptyBookingDate):
		return "Service type and date are required"

	case errors.Is(err, domain.ErrNegativePrice):
		return "Price cannot be negative"

	case errors.Is(err, domain.ErrEmptyListingName),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrEmptyImageURL):
		return "Invalid listing data"

	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be between 8 and 72 characters"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrMissingIdentifier),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPhoneNumber):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message, then writes
// the sanitized response while logging the full error. An empty userMessage
// falls back to the mapped safe message; ValidationErrors get field-level
// detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)

	if userMessage == "" {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			userMessage = fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		} else {
			userMessage = GetSafeErrorMessage(err)
		}
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validator errors and
// returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example input: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "e164":
		return "invalid phone number format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "eqfield":
		return "does not match"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
