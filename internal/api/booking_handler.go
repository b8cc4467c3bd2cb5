package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/service"
)

// BookingHandler handles booking workflow API requests.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler with the given dependencies.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError("professional_id", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), userID, role, service.BookingInput{
		ProfessionalID: professionalID,
		ServiceType:    req.ServiceType,
		Date:           req.Date,
		Location:       req.Location,
		Notes:          req.Notes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, booking)
}

// ListBookings handles GET /bookings, returning the caller's side of the
// booking relation.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListBookings(r.Context(), userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, bookingID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), bookingID, userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booking)
}

// UpdateBooking handles PUT /bookings/{id}. Only pending bookings owned by
// the caller can be edited.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, _, bookingID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.bookingService.UpdateBooking(r.Context(), bookingID, userID, service.BookingInput{
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /bookings/{id}.
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, _, bookingID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(r.Context(), bookingID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Booking deleted"})
}

// DecideBooking handles POST /bookings/{id}/decide, transitioning a pending
// booking to accepted or rejected.
func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, role, bookingID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req DecideBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.bookingService.DecideBooking(
		r.Context(), bookingID, userID, role, domain.BookingStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booking)
}
