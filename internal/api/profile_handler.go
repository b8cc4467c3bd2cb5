package api

import (
	"net/http"

	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/service"
)

// ProfileHandler handles account profile API requests.
type ProfileHandler struct {
	userService    service.UserService
	bookingService service.BookingService
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	userService service.UserService,
	bookingService service.BookingService,
) *ProfileHandler {
	return &ProfileHandler{
		userService:    userService,
		bookingService: bookingService,
	}
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateProfile handles PATCH /profile. Absent fields are left unchanged.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Address:        req.Address,
		AboutMe:        req.AboutMe,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ChangePassword handles POST /profile/change-password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Password changed"})
}

// DeleteAccount handles DELETE /profile.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Account deleted"})
}

// Dashboard handles GET /profile/dashboard with per-status booking counts for
// the caller's side of the booking relation.
func (h *ProfileHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	counts, err := h.bookingService.Dashboard(r.Context(), userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DashboardResponse{Counts: counts})
}

// ListProfessionals handles GET /professionals. Public.
func (h *ProfileHandler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.userService.ListProfessionals(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, professionals)
}
