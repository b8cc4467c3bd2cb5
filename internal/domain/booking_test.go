package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBooking(t *testing.T) {
	customerID := uuid.New()
	professionalID := uuid.New()
	date := time.Now().Add(48 * time.Hour)

	booking, err := NewBooking(customerID, professionalID, "aso-ebi fitting", date, "Lagos", "bring fabric")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if booking.Status != BookingStatusPending {
		t.Errorf("Expected pending status, got %s", booking.Status)
	}

	if booking.ID == uuid.Nil {
		t.Error("Expected non-nil booking ID")
	}

	// Missing service type
	_, err = NewBooking(customerID, professionalID, "", date, "", "")
	if !errors.Is(err, ErrEmptyServiceType) {
		t.Errorf("Expected error %v, got %v", ErrEmptyServiceType, err)
	}

	// Zero date
	_, err = NewBooking(customerID, professionalID, "fitting", time.Time{}, "", "")
	if !errors.Is(err, ErrEmptyBookingDate) {
		t.Errorf("Expected error %v, got %v", ErrEmptyBookingDate, err)
	}

	// Customer booking themselves
	_, err = NewBooking(customerID, customerID, "fitting", date, "", "")
	if !errors.Is(err, ErrSelfBooking) {
		t.Errorf("Expected error %v, got %v", ErrSelfBooking, err)
	}
}

func TestBookingDecide(t *testing.T) {
	booking, err := NewBooking(uuid.New(), uuid.New(), "fitting", time.Now().Add(time.Hour), "", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Pending is not a decision target
	if err := booking.Decide(BookingStatusPending); !errors.Is(err, ErrInvalidBookingStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidBookingStatus, err)
	}

	if err := booking.Decide(BookingStatusAccepted); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if booking.Status != BookingStatusAccepted {
		t.Errorf("Expected accepted status, got %s", booking.Status)
	}

	// Decided bookings stay decided
	if err := booking.Decide(BookingStatusRejected); !errors.Is(err, ErrBookingAlreadyDecided) {
		t.Errorf("Expected error %v, got %v", ErrBookingAlreadyDecided, err)
	}

	if booking.Status != BookingStatusAccepted {
		t.Errorf("Expected status to stay accepted, got %s", booking.Status)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if BookingStatusPending.Terminal() {
		t.Error("pending should not be terminal")
	}
	if !BookingStatusAccepted.Terminal() {
		t.Error("accepted should be terminal")
	}
	if !BookingStatusRejected.Terminal() {
		t.Error("rejected should be terminal")
	}
}
