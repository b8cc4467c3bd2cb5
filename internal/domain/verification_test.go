package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEmailVerification(t *testing.T) {
	userID := uuid.New()

	verification, err := NewEmailVerification(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verification.Token == uuid.Nil {
		t.Error("Expected non-nil token")
	}

	if verification.IsUsed {
		t.Error("Expected new verification to be unused")
	}

	_, err = NewEmailVerification(uuid.Nil)
	if !errors.Is(err, ErrEmptyVerificationUser) {
		t.Errorf("Expected error %v, got %v", ErrEmptyVerificationUser, err)
	}
}

func TestEmailVerificationExpired(t *testing.T) {
	verification, err := NewEmailVerification(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verification.Expired(verification.CreatedAt.Add(time.Hour)) {
		t.Error("Expected token to be valid within the window")
	}

	if !verification.Expired(verification.CreatedAt.Add(EmailVerificationTTL + time.Second)) {
		t.Error("Expected token to be expired past the window")
	}
}

func TestNewPhoneVerification(t *testing.T) {
	verification, err := NewPhoneVerification(uuid.New(), "+2348012345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(verification.OTPCode) != 6 {
		t.Errorf("Expected 6-digit code, got %q", verification.OTPCode)
	}

	if err := verification.Validate(); err != nil {
		t.Errorf("Expected valid verification, got %v", err)
	}

	_, err = NewPhoneVerification(uuid.New(), "")
	if !errors.Is(err, ErrEmptyPhoneNumber) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPhoneNumber, err)
	}
}

func TestPhoneVerificationExpired(t *testing.T) {
	verification, err := NewPhoneVerification(uuid.New(), "+2348012345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if verification.Expired(verification.CreatedAt.Add(5 * time.Minute)) {
		t.Error("Expected code to be valid within the window")
	}

	if !verification.Expired(verification.CreatedAt.Add(PhoneVerificationTTL + time.Second)) {
		t.Error("Expected code to be expired past the window")
	}
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("Expected 6 digits, got %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("Expected numeric code, got %q", code)
			}
		}
	}
}

func TestPhoneVerificationValidate(t *testing.T) {
	verification := PhoneVerification{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		PhoneNumber: "+2348012345678",
		OTPCode:     "12345a",
	}

	if err := verification.Validate(); !errors.Is(err, ErrInvalidOTPCode) {
		t.Errorf("Expected error %v, got %v", ErrInvalidOTPCode, err)
	}

	verification.OTPCode = "12345"
	if err := verification.Validate(); !errors.Is(err, ErrInvalidOTPCode) {
		t.Errorf("Expected error %v, got %v", ErrInvalidOTPCode, err)
	}
}
