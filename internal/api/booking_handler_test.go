package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/service"
	"github.com/tailorent/tailorent-api/internal/store"
)

func newTestBooking(t *testing.T, customerID, professionalID uuid.UUID) *domain.Booking {
	t.Helper()
	booking, err := domain.NewBooking(
		customerID, professionalID, "Agbada fitting", time.Now().Add(72*time.Hour).UTC(), "Yaba, Lagos", "")
	require.NoError(t, err)
	return booking
}

func bookingBody(professionalID uuid.UUID) string {
	return fmt.Sprintf(
		`{"professional_id":%q,"service_type":"Agbada fitting","date":"2026-03-14T10:00:00Z","location":"Yaba, Lagos"}`,
		professionalID)
}

func TestCreateBookingHandler(t *testing.T) {
	customerID := uuid.New()
	professionalID := uuid.New()

	t.Run("creates the booking", func(t *testing.T) {
		booking := newTestBooking(t, customerID, professionalID)
		handler := NewBookingHandler(&mockBookingService{
			createBookingFn: func(ctx context.Context, gotCustomer uuid.UUID, role domain.Role, input service.BookingInput) (*domain.Booking, error) {
				assert.Equal(t, customerID, gotCustomer)
				assert.Equal(t, professionalID, input.ProfessionalID)
				return booking, nil
			},
		})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(bookingBody(professionalID)))
		r = authenticated(r, customerID, domain.RoleCustomer)
		w := do(handler.CreateBooking, r)

		assert.Equal(t, http.StatusCreated, w.Code)

		var got domain.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, booking.ID, got.ID)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(bookingBody(professionalID)))
		w := do(handler.CreateBooking, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed professional id", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{})

		body := `{"professional_id":"not-a-uuid","service_type":"Agbada fitting","date":"2026-03-14T10:00:00Z"}`
		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		r = authenticated(r, customerID, domain.RoleCustomer)
		w := do(handler.CreateBooking, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-professional target maps to 400", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{
			createBookingFn: func(ctx context.Context, customerID uuid.UUID, role domain.Role, input service.BookingInput) (*domain.Booking, error) {
				return nil, service.ErrNotProfessional
			},
		})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(bookingBody(professionalID)))
		r = authenticated(r, customerID, domain.RoleCustomer)
		w := do(handler.CreateBooking, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "tailors or fashion designers")
	})
}

func TestGetBookingHandler(t *testing.T) {
	customerID := uuid.New()
	booking := newTestBooking(t, customerID, uuid.New())

	t.Run("returns the booking", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{
			getBookingFn: func(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error) {
				assert.Equal(t, booking.ID, id)
				return booking, nil
			},
		})

		r := httptest.NewRequest(http.MethodGet, "/api/bookings/"+booking.ID.String(), nil)
		r = authenticated(r, customerID, domain.RoleCustomer)
		r = withPathParam(r, "id", booking.ID.String())
		w := do(handler.GetBooking, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing booking maps to 404", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{
			getBookingFn: func(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error) {
				return nil, store.ErrBookingNotFound
			},
		})

		r := httptest.NewRequest(http.MethodGet, "/api/bookings/"+booking.ID.String(), nil)
		r = authenticated(r, customerID, domain.RoleCustomer)
		r = withPathParam(r, "id", booking.ID.String())
		w := do(handler.GetBooking, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Booking not found")
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{})

		r := httptest.NewRequest(http.MethodGet, "/api/bookings/oops", nil)
		r = authenticated(r, customerID, domain.RoleCustomer)
		r = withPathParam(r, "id", "oops")
		w := do(handler.GetBooking, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecideBookingHandler(t *testing.T) {
	professionalID := uuid.New()
	booking := newTestBooking(t, uuid.New(), professionalID)

	t.Run("accepts the booking", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{
			decideBookingFn: func(ctx context.Context, id, gotProfessional uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error) {
				assert.Equal(t, professionalID, gotProfessional)
				assert.Equal(t, domain.BookingStatusAccepted, status)
				decided := *booking
				decided.Status = status
				return &decided, nil
			},
		})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings/"+booking.ID.String()+"/decide",
			strings.NewReader(`{"status":"accepted"}`))
		r = authenticated(r, professionalID, domain.RoleTailor)
		r = withPathParam(r, "id", booking.ID.String())
		w := do(handler.DecideBooking, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.BookingStatusAccepted, got.Status)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings/"+booking.ID.String()+"/decide",
			strings.NewReader(`{"status":"maybe"}`))
		r = authenticated(r, professionalID, domain.RoleTailor)
		r = withPathParam(r, "id", booking.ID.String())
		w := do(handler.DecideBooking, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already decided maps to 409", func(t *testing.T) {
		handler := NewBookingHandler(&mockBookingService{
			decideBookingFn: func(ctx context.Context, id, professionalID uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error) {
				return nil, service.ErrBookingAlreadyDecided
			},
		})

		r := httptest.NewRequest(http.MethodPost, "/api/bookings/"+booking.ID.String()+"/decide",
			strings.NewReader(`{"status":"rejected"}`))
		r = authenticated(r, professionalID, domain.RoleTailor)
		r = withPathParam(r, "id", booking.ID.String())
		w := do(handler.DecideBooking, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already been decided")
	})
}

func TestDeleteBookingHandler(t *testing.T) {
	customerID := uuid.New()
	bookingID := uuid.New()

	handler := NewBookingHandler(&mockBookingService{
		deleteBookingFn: func(ctx context.Context, id, gotCustomer uuid.UUID) error {
			assert.Equal(t, bookingID, id)
			assert.Equal(t, customerID, gotCustomer)
			return nil
		},
	})

	r := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+bookingID.String(), nil)
	r = authenticated(r, customerID, domain.RoleCustomer)
	r = withPathParam(r, "id", bookingID.String())
	w := do(handler.DeleteBooking, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking deleted")
}
