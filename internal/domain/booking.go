package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

// Booking lifecycle: pending is the initial state; accepted and rejected are
// terminal. No transition out of a terminal state is defined.
const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

// Valid reports whether the status is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

// Booking validation errors.
var (
	ErrEmptyBookingCustomer     = errors.New("booking must reference a customer")
	ErrEmptyBookingProfessional = errors.New("booking must reference a professional")
	ErrEmptyServiceType         = errors.New("service type cannot be empty")
	ErrEmptyBookingDate         = errors.New("booking date cannot be empty")
	ErrSelfBooking              = errors.New("customer and professional cannot be the same user")
)

// Booking is a service request from a customer to a professional. Both
// parties are fixed at creation; only the professional may decide the status.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	CustomerID     uuid.UUID     `json:"customer_id"`
	ProfessionalID uuid.UUID     `json:"professional_id"`
	ServiceType    string        `json:"service_type"`
	Date           time.Time     `json:"date"`
	Location       string        `json:"location,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewBooking creates a pending booking from customer to professional.
// Returns an error if validation fails.
func NewBooking(customerID, professionalID uuid.UUID, serviceType string, date time.Time, location, notes string) (*Booking, error) {
	booking := &Booking{
		ID:             uuid.New(),
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		ServiceType:    serviceType,
		Date:           date,
		Location:       location,
		Notes:          notes,
		Status:         BookingStatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return booking, nil
}

// Validate checks if the Booking has valid data.
func (b *Booking) Validate() error {
	if b.CustomerID == uuid.Nil {
		return ErrEmptyBookingCustomer
	}
	if b.ProfessionalID == uuid.Nil {
		return ErrEmptyBookingProfessional
	}
	if b.CustomerID == b.ProfessionalID {
		return ErrSelfBooking
	}
	if b.ServiceType == "" {
		return ErrEmptyServiceType
	}
	if b.Date.IsZero() {
		return ErrEmptyBookingDate
	}
	if !b.Status.Valid() {
		return ErrInvalidBookingStatus
	}
	return nil
}

// Decide transitions the booking from pending to the given terminal status.
// Returns ErrBookingAlreadyDecided if the booking is already in a terminal
// state and ErrInvalidBookingStatus if the target is not accepted/rejected.
func (b *Booking) Decide(status BookingStatus) error {
	if !status.Terminal() {
		return ErrInvalidBookingStatus
	}
	if b.Status.Terminal() {
		return ErrBookingAlreadyDecided
	}
	b.Status = status
	return nil
}
