package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's UUID from the request
// context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getUserRoleFromContext extracts the authenticated user's role from the
// request context.
func getUserRoleFromContext(r *http.Request) (domain.Role, bool) {
	role, ok := r.Context().Value(shared.UserRoleContextKey).(domain.Role)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}

// requireAuth extracts both the user ID and role from the context, writing a
// 401 response when either is missing.
func requireAuth(w http.ResponseWriter, r *http.Request) (uuid.UUID, domain.Role, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}

	role, ok := getUserRoleFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}

	return userID, role, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireAuthAndPathUUID combines requireAuth with a UUID path parameter
// extraction, writing the error response when either fails.
func requireAuthAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (uuid.UUID, domain.Role, uuid.UUID, bool) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return uuid.Nil, "", uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, "", uuid.Nil, false
	}

	return userID, role, pathID, true
}

// decodeAndValidate decodes the JSON body into v and validates it, writing the
// error response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}

	return true
}
