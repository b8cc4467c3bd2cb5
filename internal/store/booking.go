package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// BookingCounts is the dashboard projection of a user's bookings by status.
// Total is always Pending + Accepted + Rejected.
type BookingCounts struct {
	Total    int `json:"total_bookings"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// BookingStore defines the interface for booking persistence.
type BookingStore interface {
	// Create saves a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking regardless of ownership. Used by services
	// to diagnose why a conditional update matched no rows; never exposed
	// directly through the API.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// GetForCustomer retrieves a booking scoped to its customer. A booking
	// belonging to someone else returns ErrBookingNotFound, identical to a
	// missing row.
	GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*domain.Booking, error)

	// ListByCustomer returns the customer's bookings, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error)

	// ListByProfessional returns the professional's bookings, newest first.
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*domain.Booking, error)

	// UpdateDetails updates service_type, date, location and notes of a
	// pending booking owned by its customer. Returns ErrBookingNotFound when
	// no pending row owned by that customer matches.
	UpdateDetails(ctx context.Context, booking *domain.Booking) error

	// DecideStatus transitions a pending booking to a terminal status in a
	// single conditional update scoped to the referenced professional. The
	// first writer wins; any attempt that matches no row (missing booking,
	// wrong professional, or already-decided booking) returns
	// ErrBookingNotFound for the caller to diagnose via GetByID.
	DecideStatus(ctx context.Context, id, professionalID uuid.UUID, status domain.BookingStatus) error

	// Delete removes a booking owned by the customer.
	// Returns ErrBookingNotFound when no owned row matches.
	Delete(ctx context.Context, id, customerID uuid.UUID) error

	// CountForCustomer computes the customer-side dashboard counts.
	CountForCustomer(ctx context.Context, customerID uuid.UUID) (*BookingCounts, error)

	// CountForProfessional computes the professional-side dashboard counts.
	CountForProfessional(ctx context.Context, professionalID uuid.UUID) (*BookingCounts, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) BookingStore
}
