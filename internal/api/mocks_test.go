package api

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/service"
	"github.com/tailorent/tailorent-api/internal/store"
)

// mockUserService implements service.UserService with injectable functions.
// Unset functions panic, making unexpected calls visible in tests.
type mockUserService struct {
	registerFn          func(ctx context.Context, input service.RegisterInput) (*domain.User, error)
	loginFn             func(ctx context.Context, identifier, password string) (*domain.User, *service.TokenPair, error)
	refreshTokensFn     func(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	logoutFn            func(ctx context.Context, refreshToken string) error
	getUserFn           func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateProfileFn     func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error)
	changePasswordFn    func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	deleteUserFn        func(ctx context.Context, userID uuid.UUID) error
	listProfessionalsFn func(ctx context.Context) ([]*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	return m.registerFn(ctx, input)
}

func (m *mockUserService) Login(ctx context.Context, identifier, password string) (*domain.User, *service.TokenPair, error) {
	return m.loginFn(ctx, identifier, password)
}

func (m *mockUserService) RefreshTokens(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	return m.refreshTokensFn(ctx, refreshToken)
}

func (m *mockUserService) Logout(ctx context.Context, refreshToken string) error {
	return m.logoutFn(ctx, refreshToken)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return m.changePasswordFn(ctx, userID, currentPassword, newPassword)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteUserFn(ctx, userID)
}

func (m *mockUserService) ListProfessionals(ctx context.Context) ([]*domain.User, error) {
	return m.listProfessionalsFn(ctx)
}

var _ service.UserService = (*mockUserService)(nil)

// mockVerificationService implements service.VerificationService.
type mockVerificationService struct {
	verifyEmailFn func(ctx context.Context, token uuid.UUID) error
	requestOTPFn  func(ctx context.Context, phoneNumber string) error
	verifyOTPFn   func(ctx context.Context, phoneNumber, code string) (*domain.User, *service.TokenPair, error)
}

func (m *mockVerificationService) VerifyEmail(ctx context.Context, token uuid.UUID) error {
	return m.verifyEmailFn(ctx, token)
}

func (m *mockVerificationService) RequestOTP(ctx context.Context, phoneNumber string) error {
	return m.requestOTPFn(ctx, phoneNumber)
}

func (m *mockVerificationService) VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.User, *service.TokenPair, error) {
	return m.verifyOTPFn(ctx, phoneNumber, code)
}

var _ service.VerificationService = (*mockVerificationService)(nil)

// mockBookingService implements service.BookingService.
type mockBookingService struct {
	createBookingFn func(ctx context.Context, customerID uuid.UUID, role domain.Role, input service.BookingInput) (*domain.Booking, error)
	listBookingsFn  func(ctx context.Context, userID uuid.UUID, role domain.Role) ([]*domain.Booking, error)
	getBookingFn    func(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error)
	updateBookingFn func(ctx context.Context, id, customerID uuid.UUID, input service.BookingInput) (*domain.Booking, error)
	deleteBookingFn func(ctx context.Context, id, customerID uuid.UUID) error
	decideBookingFn func(ctx context.Context, id, professionalID uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error)
	dashboardFn     func(ctx context.Context, userID uuid.UUID, role domain.Role) (*store.BookingCounts, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, role domain.Role, input service.BookingInput) (*domain.Booking, error) {
	return m.createBookingFn(ctx, customerID, role, input)
}

func (m *mockBookingService) ListBookings(ctx context.Context, userID uuid.UUID, role domain.Role) ([]*domain.Booking, error) {
	return m.listBookingsFn(ctx, userID, role)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id, userID uuid.UUID, role domain.Role) (*domain.Booking, error) {
	return m.getBookingFn(ctx, id, userID, role)
}

func (m *mockBookingService) UpdateBooking(ctx context.Context, id, customerID uuid.UUID, input service.BookingInput) (*domain.Booking, error) {
	return m.updateBookingFn(ctx, id, customerID, input)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, id, customerID uuid.UUID) error {
	return m.deleteBookingFn(ctx, id, customerID)
}

func (m *mockBookingService) DecideBooking(ctx context.Context, id, professionalID uuid.UUID, role domain.Role, status domain.BookingStatus) (*domain.Booking, error) {
	return m.decideBookingFn(ctx, id, professionalID, role, status)
}

func (m *mockBookingService) Dashboard(ctx context.Context, userID uuid.UUID, role domain.Role) (*store.BookingCounts, error) {
	return m.dashboardFn(ctx, userID, role)
}

var _ service.BookingService = (*mockBookingService)(nil)

// authenticated attaches user identity to the request context the way the
// authentication middleware does.
func authenticated(r *http.Request, userID uuid.UUID, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
	return r.WithContext(ctx)
}

// withPathParam attaches a chi URL parameter to the request.
func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// do runs the handler and returns the recorder.
func do(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}
