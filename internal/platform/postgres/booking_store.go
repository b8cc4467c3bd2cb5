package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

const bookingColumns = `id, customer_id, professional_id, service_type, date, location, notes,
		status, created_at`

// PostgresBookingStore implements the store.BookingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the
// BookingStore interface.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

var _ store.BookingStore = (*PostgresBookingStore)(nil)

// WithTx implements store.BookingStore.WithTx
func (s *PostgresBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	return &PostgresBookingStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.BookingStore.Create
// Returns store.ErrInvalidEntity when either party's user row is missing
// (foreign key violation).
func (s *PostgresBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during create",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.CustomerID,
		booking.ProfessionalID,
		booking.ServiceType,
		booking.Date,
		nullString(booking.Location),
		nullString(booking.Notes),
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return MapError(err)
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("customer_id", booking.CustomerID.String()),
		slog.String("professional_id", booking.ProfessionalID.String()))
	return nil
}

// GetByID implements store.BookingStore.GetByID
func (s *PostgresBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForCustomer implements store.BookingStore.GetForCustomer
// Someone else's booking and a missing booking are indistinguishable to the
// caller.
func (s *PostgresBookingStore) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND customer_id = $2`
	return s.getOne(ctx, query, id, customerID)
}

func (s *PostgresBookingStore) getOne(ctx context.Context, query string, args ...any) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("booking not found")
			return nil, store.ErrBookingNotFound
		}
		log.Error("failed to get booking", slog.String("error", err.Error()))
		return nil, err
	}

	return booking, nil
}

// ListByCustomer implements store.BookingStore.ListByCustomer
func (s *PostgresBookingStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, customerID)
}

// ListByProfessional implements store.BookingStore.ListByProfessional
func (s *PostgresBookingStore) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE professional_id = $1
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, professionalID)
}

func (s *PostgresBookingStore) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query bookings", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	bookings := []*domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("failed to scan booking row", slog.String("error", err.Error()))
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return bookings, nil
}

// UpdateDetails implements store.BookingStore.UpdateDetails
// The WHERE clause pins ownership and pending status so a decided booking can
// no longer be edited.
func (s *PostgresBookingStore) UpdateDetails(ctx context.Context, booking *domain.Booking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE bookings
		SET service_type = $1, date = $2, location = $3, notes = $4
		WHERE id = $5 AND customer_id = $6 AND status = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		booking.ServiceType,
		booking.Date,
		nullString(booking.Location),
		nullString(booking.Notes),
		booking.ID,
		booking.CustomerID,
		domain.BookingStatusPending,
	)
	if err != nil {
		log.Error("failed to update booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookingNotFound); err != nil {
		log.Debug("no pending booking matched for update",
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	log.Info("booking updated", slog.String("booking_id", booking.ID.String()))
	return nil
}

// DecideStatus implements store.BookingStore.DecideStatus
// The transition is a single conditional update so concurrent decisions race
// on the row: the first writer wins and later ones match zero rows.
func (s *PostgresBookingStore) DecideStatus(ctx context.Context, id, professionalID uuid.UUID, status domain.BookingStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Terminal() {
		return domain.ErrInvalidBookingStatus
	}

	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND professional_id = $3 AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, id, professionalID, domain.BookingStatusPending)
	if err != nil {
		log.Error("failed to decide booking status",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookingNotFound); err != nil {
		log.Debug("no pending booking matched for decision",
			slog.String("booking_id", id.String()),
			slog.String("professional_id", professionalID.String()))
		return err
	}

	log.Info("booking decided",
		slog.String("booking_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.BookingStore.Delete
func (s *PostgresBookingStore) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM bookings WHERE id = $1 AND customer_id = $2`,
		id,
		customerID,
	)
	if err != nil {
		log.Error("failed to delete booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookingNotFound); err != nil {
		log.Debug("booking not found for delete", slog.String("booking_id", id.String()))
		return err
	}

	log.Info("booking deleted", slog.String("booking_id", id.String()))
	return nil
}

// CountForCustomer implements store.BookingStore.CountForCustomer
func (s *PostgresBookingStore) CountForCustomer(ctx context.Context, customerID uuid.UUID) (*store.BookingCounts, error) {
	return s.countByStatus(ctx, "customer_id", customerID)
}

// CountForProfessional implements store.BookingStore.CountForProfessional
func (s *PostgresBookingStore) CountForProfessional(ctx context.Context, professionalID uuid.UUID) (*store.BookingCounts, error) {
	return s.countByStatus(ctx, "professional_id", professionalID)
}

func (s *PostgresBookingStore) countByStatus(ctx context.Context, ownerColumn string, ownerID uuid.UUID) (*store.BookingCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// ownerColumn is one of two compile-time constants, never user input.
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM bookings
		WHERE ` + ownerColumn + ` = $1
	`

	var counts store.BookingCounts
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Accepted,
		&counts.Rejected,
	)
	if err != nil {
		log.Error("failed to count bookings",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	return &counts, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var location, notes sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProfessionalID,
		&booking.ServiceType,
		&booking.Date,
		&location,
		&notes,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Location = location.String
	booking.Notes = notes.String

	return &booking, nil
}
