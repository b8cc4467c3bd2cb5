package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/events"
	"github.com/tailorent/tailorent-api/internal/policy"
	"github.com/tailorent/tailorent-api/internal/store"
	"github.com/tailorent/tailorent-api/internal/task"
)

// BookingInput carries the customer-editable booking fields.
type BookingInput struct {
	ProfessionalID uuid.UUID
	ServiceType    string
	Date           time.Time
	Location       string
	Notes          string
}

// BookingService provides the booking workflow: customers create and manage
// requests, professionals decide them.
type BookingService interface {
	// CreateBooking creates a pending booking from the customer to the
	// referenced professional and notifies the professional.
	CreateBooking(ctx context.Context, customerID uuid.UUID, role domain.Role, input BookingInput) (*domain.Booking, error)

	// ListBookings returns the caller's bookings: the customer side for
	// customers, the professional side for tailors and fashion designers.
	ListBookings(ctx context.Context, userID uuid.UUID, role domain.Role) ([]*domain.Booking, error)

	// GetBooking retrieves one booking visible to the caller. Bookings of
	// other users are indistinguishable from missing ones.
	GetBooking(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error)

	// UpdateBooking edits a pending booking owned by the customer.
	UpdateBooking(ctx context.Context, id, customerID uuid.UUID, input BookingInput) (*domain.Booking, error)

	// DeleteBooking removes a booking owned by the customer.
	DeleteBooking(ctx context.Context, id, customerID uuid.UUID) error

	// DecideBooking transitions a pending booking to accepted or rejected.
	// Only the referenced professional may decide; when two decisions race,
	// the first write wins and the loser gets ErrBookingAlreadyDecided.
	DecideBooking(ctx context.Context, id, professionalID uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error)

	// Dashboard returns booking counts by status for the caller's side.
	Dashboard(ctx context.Context, userID uuid.UUID, role domain.Role) (*store.BookingCounts, error)
}

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	bookingStore store.BookingStore
	userStore    store.UserStore
	emitter      events.EventEmitter
	logger       *slog.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingStore store.BookingStore,
	userStore store.UserStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		bookingStore: bookingStore,
		userStore:    userStore,
		emitter:      emitter,
		logger:       logger.With("component", "booking_service"),
	}
}

var _ BookingService = (*BookingServiceImpl)(nil)

// CreateBooking creates a pending booking and notifies the professional.
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, customerID uuid.UUID, role domain.Role, input BookingInput) (*domain.Booking, error) {
	if err := policy.Check(role, policy.CapabilityBookService); err != nil {
		return nil, err
	}

	professional, err := s.userStore.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrNotProfessional
		}
		s.logger.Error("failed to look up professional", "error", err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if !professional.Role.Professional() {
		s.logger.Debug("booking attempt on non-professional",
			"target_id", professional.ID,
			"target_role", professional.Role)
		return nil, ErrNotProfessional
	}

	booking, err := domain.NewBooking(customerID, input.ProfessionalID, input.ServiceType, input.Date, input.Location, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.bookingStore.Create(ctx, booking); err != nil {
		s.logger.Error("failed to create booking", "error", err)
		return nil, err
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"customer_id", customerID,
		"professional_id", input.ProfessionalID)

	if professional.Email != "" {
		customer, err := s.userStore.GetByID(ctx, customerID)
		customerName := ""
		if err == nil {
			customerName = customer.FullName()
		}
		s.emitNotification(ctx, task.TaskTypeBookingRequestEmail, task.BookingRequestEmailPayload{
			Email:        professional.Email,
			Name:         professional.FullName(),
			CustomerName: customerName,
			ServiceType:  booking.ServiceType,
			Date:         booking.Date,
		})
	}

	return booking, nil
}

// ListBookings returns the caller's side of the booking relation.
func (s *BookingServiceImpl) ListBookings(ctx context.Context, userID uuid.UUID, role domain.Role) ([]*domain.Booking, error) {
	if role.Professional() {
		return s.bookingStore.ListByProfessional(ctx, userID)
	}
	return s.bookingStore.ListByCustomer(ctx, userID)
}

// GetBooking retrieves one booking visible to the caller.
func (s *BookingServiceImpl) GetBooking(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error) {
	if !role.Professional() {
		return s.bookingStore.GetForCustomer(ctx, id, userID)
	}

	booking, err := s.bookingStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.ProfessionalID != userID {
		// Same answer as a missing booking.
		return nil, store.ErrBookingNotFound
	}
	return booking, nil
}

// UpdateBooking edits a pending booking owned by the customer.
func (s *BookingServiceImpl) UpdateBooking(ctx context.Context, id, customerID uuid.UUID, input BookingInput) (*domain.Booking, error) {
	booking, err := s.bookingStore.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrBookingAlreadyDecided
	}

	booking.ServiceType = input.ServiceType
	booking.Date = input.Date
	booking.Location = input.Location
	booking.Notes = input.Notes

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	if err := s.bookingStore.UpdateDetails(ctx, booking); err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			// The row existed at read time, so the miss means the booking
			// was decided between the read and the write.
			return nil, ErrBookingAlreadyDecided
		}
		s.logger.Error("failed to update booking", "error", err, "booking_id", id)
		return nil, err
	}

	s.logger.Info("booking updated", "booking_id", id)
	return booking, nil
}

// DeleteBooking removes a booking owned by the customer.
func (s *BookingServiceImpl) DeleteBooking(ctx context.Context, id, customerID uuid.UUID) error {
	return s.bookingStore.Delete(ctx, id, customerID)
}

// DecideBooking performs the pending-to-terminal transition as a single
// conditional write and diagnoses a miss afterwards: a missing or
// someone-else's booking reads as not found, a decided one as already
// decided.
func (s *BookingServiceImpl) DecideBooking(ctx context.Context, id, professionalID uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error) {
	if err := policy.Check(role, policy.CapabilityDecideBooking); err != nil {
		return nil, err
	}
	if !status.Terminal() {
		return nil, domain.ErrInvalidBookingStatus
	}

	err := s.bookingStore.DecideStatus(ctx, id, professionalID, status)
	if err != nil {
		if !errors.Is(err, store.ErrBookingNotFound) {
			s.logger.Error("failed to decide booking", "error", err, "booking_id", id)
			return nil, err
		}

		booking, getErr := s.bookingStore.GetByID(ctx, id)
		if getErr != nil {
			return nil, store.ErrBookingNotFound
		}
		if booking.ProfessionalID != professionalID {
			return nil, store.ErrBookingNotFound
		}
		return nil, ErrBookingAlreadyDecided
	}

	booking, err := s.bookingStore.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to reload decided booking", "error", err, "booking_id", id)
		return nil, err
	}

	s.logger.Info("booking decided",
		"booking_id", id,
		"status", status,
		"professional_id", professionalID)

	customer, err := s.userStore.GetByID(ctx, booking.CustomerID)
	if err == nil && customer.Email != "" {
		s.emitNotification(ctx, task.TaskTypeBookingDecisionEmail, task.BookingDecisionEmailPayload{
			Email:       customer.Email,
			Name:        customer.FullName(),
			ServiceType: booking.ServiceType,
			Date:        booking.Date,
			Status:      string(status),
		})
	}

	return booking, nil
}

// Dashboard returns booking counts by status for the caller's side.
func (s *BookingServiceImpl) Dashboard(ctx context.Context, userID uuid.UUID, role domain.Role) (*store.BookingCounts, error) {
	if role.Professional() {
		return s.bookingStore.CountForProfessional(ctx, userID)
	}
	return s.bookingStore.CountForCustomer(ctx, userID)
}

func (s *BookingServiceImpl) emitNotification(ctx context.Context, kind string, payload any) {
	event, err := events.NewTaskRequestEvent(kind, payload)
	if err != nil {
		s.logger.Error("failed to create notification event", "error", err, "kind", kind)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit notification event",
			"error", err,
			"kind", kind,
			"event_id", event.ID)
	}
}
