package api

import (
	"net/http"

	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/service"
)

// AuthHandler handles registration, login, token lifecycle, and verification
// API requests.
type AuthHandler struct {
	userService         service.UserService
	verificationService service.VerificationService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	verificationService service.VerificationService,
) *AuthHandler {
	return &AuthHandler{
		userService:         userService,
		verificationService: verificationService,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.userService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RefreshToken handles POST /auth/refresh. The presented refresh token is
// revoked and a fresh pair is issued.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.userService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		// Reuse of revoked tokens is worth noticing in the logs.
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pair)
}

// Logout handles POST /auth/logout by revoking the presented refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.userService.Logout(r.Context(), req.RefreshToken); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// VerifyEmail handles GET /auth/verify-email/{token}.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token, err := getPathUUID(r, "token")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid verification token")
		return
	}

	if err := h.verificationService.VerifyEmail(r.Context(), token); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Email verified"})
}

// RequestOTP handles POST /auth/request-otp. Unknown phone numbers get a new
// customer account, so this doubles as passwordless signup.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.verificationService.RequestOTP(r.Context(), req.PhoneNumber); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "OTP sent"})
}

// VerifyOTP handles POST /auth/verify-otp. A correct code verifies the phone
// number and logs the user in.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.verificationService.VerifyOTP(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
