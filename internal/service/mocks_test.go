package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/events"
	"github.com/tailorent/tailorent-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// immediateTxRunner runs the function directly; the mock stores ignore the
// nil *sql.Tx their WithTx receives.
type immediateTxRunner struct{}

func (immediateTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// mockUserStore is an in-memory UserStore for service tests.
type mockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	updatePasswordErr error
}

func newMockUserStore(users ...*domain.User) *mockUserStore {
	m := &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if user.Email != "" && existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if user.PhoneNumber != "" && existing.PhoneNumber == user.PhoneNumber {
			return store.ErrPhoneExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.PhoneNumber == phoneNumber {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.HashedPassword = hashedPassword
	return nil
}

func (m *mockUserStore) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.IsVerified = true
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *mockUserStore) ListProfessionals(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.User
	for _, user := range m.users {
		if user.Role.Professional() && user.IsActive {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockTokenStore tracks revoked token IDs in memory.
type mockTokenStore struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]bool
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{revoked: make(map[uuid.UUID]bool)}
}

func (m *mockTokenStore) Revoke(ctx context.Context, jti, userID uuid.UUID, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *mockTokenStore) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

func (m *mockTokenStore) WithTx(tx *sql.Tx) store.TokenStore { return m }

// mockBookingStore is an in-memory BookingStore for service tests.
type mockBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
}

func newMockBookingStore(bookings ...*domain.Booking) *mockBookingStore {
	m := &mockBookingStore{bookings: make(map[uuid.UUID]*domain.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *mockBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if booking, ok := m.bookings[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, store.ErrBookingNotFound
}

func (m *mockBookingStore) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok || booking.CustomerID != customerID {
		return nil, store.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (m *mockBookingStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Booking
	for _, booking := range m.bookings {
		if booking.CustomerID == customerID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockBookingStore) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Booking
	for _, booking := range m.bookings {
		if booking.ProfessionalID == professionalID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockBookingStore) UpdateDetails(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.bookings[booking.ID]
	if !ok || existing.CustomerID != booking.CustomerID || existing.Status != domain.BookingStatusPending {
		return store.ErrBookingNotFound
	}
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *mockBookingStore) DecideStatus(ctx context.Context, id, professionalID uuid.UUID, status domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok || booking.ProfessionalID != professionalID || booking.Status != domain.BookingStatusPending {
		return store.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (m *mockBookingStore) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok || booking.CustomerID != customerID {
		return store.ErrBookingNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingStore) CountForCustomer(ctx context.Context, customerID uuid.UUID) (*store.BookingCounts, error) {
	return m.count(func(b *domain.Booking) bool { return b.CustomerID == customerID })
}

func (m *mockBookingStore) CountForProfessional(ctx context.Context, professionalID uuid.UUID) (*store.BookingCounts, error) {
	return m.count(func(b *domain.Booking) bool { return b.ProfessionalID == professionalID })
}

func (m *mockBookingStore) count(match func(*domain.Booking) bool) (*store.BookingCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := &store.BookingCounts{}
	for _, booking := range m.bookings {
		if !match(booking) {
			continue
		}
		counts.Total++
		switch booking.Status {
		case domain.BookingStatusPending:
			counts.Pending++
		case domain.BookingStatusAccepted:
			counts.Accepted++
		case domain.BookingStatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (m *mockBookingStore) WithTx(tx *sql.Tx) store.BookingStore { return m }

// mockProductStore is an in-memory ProductStore. ListPublic ignores the
// filter; filter semantics live in the SQL and are not exercised here.
type mockProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newMockProductStore(products ...*domain.Product) *mockProductStore {
	m := &mockProductStore{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductStore) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product, ok := m.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, store.ErrProductNotFound
}

func (m *mockProductStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, product := range m.products {
		if product.VendorID == vendorID {
			copied := *product
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockProductStore) ListPublic(ctx context.Context, filter store.ListingFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, product := range m.products {
		copied := *product
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockProductStore) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[product.ID]
	if !ok || existing.VendorID != product.VendorID {
		return store.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductStore) Delete(ctx context.Context, id, vendorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok || product.VendorID != vendorID {
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductStore) WithTx(tx *sql.Tx) store.ProductStore { return m }

// mockServiceStore is an in-memory ServiceStore.
type mockServiceStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]*domain.Service
}

func newMockServiceStore(services ...*domain.Service) *mockServiceStore {
	m := &mockServiceStore{services: make(map[uuid.UUID]*domain.Service)}
	for _, s := range services {
		m.services[s.ID] = s
	}
	return m
}

func (m *mockServiceStore) Create(ctx context.Context, service *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *service
	m.services[service.ID] = &copied
	return nil
}

func (m *mockServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if service, ok := m.services[id]; ok {
		copied := *service
		return &copied, nil
	}
	return nil, store.ErrServiceNotFound
}

func (m *mockServiceStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Service
	for _, service := range m.services {
		if service.ProviderID == providerID {
			copied := *service
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockServiceStore) ListPublic(ctx context.Context, filter store.ListingFilter) ([]*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Service
	for _, service := range m.services {
		if !service.Available {
			continue
		}
		copied := *service
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockServiceStore) Update(ctx context.Context, service *domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.services[service.ID]
	if !ok || existing.ProviderID != service.ProviderID {
		return store.ErrServiceNotFound
	}
	copied := *service
	m.services[service.ID] = &copied
	return nil
}

func (m *mockServiceStore) Delete(ctx context.Context, id, providerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	service, ok := m.services[id]
	if !ok || service.ProviderID != providerID {
		return store.ErrServiceNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *mockServiceStore) WithTx(tx *sql.Tx) store.ServiceStore { return m }

// mockStyleFeedStore is an in-memory StyleFeedStore.
type mockStyleFeedStore struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*domain.StyleFeedPost
}

func newMockStyleFeedStore(posts ...*domain.StyleFeedPost) *mockStyleFeedStore {
	m := &mockStyleFeedStore{posts: make(map[uuid.UUID]*domain.StyleFeedPost)}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockStyleFeedStore) Create(ctx context.Context, post *domain.StyleFeedPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockStyleFeedStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StyleFeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post, ok := m.posts[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, store.ErrPostNotFound
}

func (m *mockStyleFeedStore) List(ctx context.Context, limit, offset int) ([]*domain.StyleFeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.StyleFeedPost
	for _, post := range m.posts {
		copied := *post
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockStyleFeedStore) Update(ctx context.Context, post *domain.StyleFeedPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.posts[post.ID]
	if !ok || existing.UserID != post.UserID {
		return store.ErrPostNotFound
	}
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockStyleFeedStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok || post.UserID != userID {
		return store.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockStyleFeedStore) WithTx(tx *sql.Tx) store.StyleFeedStore { return m }

// mockEmailVerificationStore is an in-memory EmailVerificationStore.
type mockEmailVerificationStore struct {
	mu            sync.Mutex
	verifications map[uuid.UUID]*domain.EmailVerification
}

func newMockEmailVerificationStore(verifications ...*domain.EmailVerification) *mockEmailVerificationStore {
	m := &mockEmailVerificationStore{verifications: make(map[uuid.UUID]*domain.EmailVerification)}
	for _, v := range verifications {
		m.verifications[v.ID] = v
	}
	return m
}

func (m *mockEmailVerificationStore) Create(ctx context.Context, verification *domain.EmailVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *verification
	m.verifications[verification.ID] = &copied
	return nil
}

func (m *mockEmailVerificationStore) GetUnusedByToken(ctx context.Context, token uuid.UUID) (*domain.EmailVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.verifications {
		if v.Token == token && !v.IsUsed {
			copied := *v
			return &copied, nil
		}
	}
	return nil, store.ErrVerificationNotFound
}

func (m *mockEmailVerificationStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.verifications[id]
	if !ok || v.IsUsed {
		return store.ErrVerificationNotFound
	}
	v.IsUsed = true
	return nil
}

func (m *mockEmailVerificationStore) WithTx(tx *sql.Tx) store.EmailVerificationStore { return m }

// mockPhoneVerificationStore is an in-memory PhoneVerificationStore.
type mockPhoneVerificationStore struct {
	mu            sync.Mutex
	verifications map[uuid.UUID]*domain.PhoneVerification
}

func newMockPhoneVerificationStore(verifications ...*domain.PhoneVerification) *mockPhoneVerificationStore {
	m := &mockPhoneVerificationStore{verifications: make(map[uuid.UUID]*domain.PhoneVerification)}
	for _, v := range verifications {
		m.verifications[v.ID] = v
	}
	return m
}

func (m *mockPhoneVerificationStore) Create(ctx context.Context, verification *domain.PhoneVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *verification
	m.verifications[verification.ID] = &copied
	return nil
}

func (m *mockPhoneVerificationStore) GetLatestUnverified(ctx context.Context, phoneNumber, code string) (*domain.PhoneVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.PhoneVerification
	for _, v := range m.verifications {
		if v.PhoneNumber != phoneNumber || v.OTPCode != code || v.IsVerified {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) {
			latest = v
		}
	}
	if latest == nil {
		return nil, store.ErrVerificationNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *mockPhoneVerificationStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.verifications[id]
	if !ok || v.IsVerified {
		return store.ErrVerificationNotFound
	}
	v.IsVerified = true
	return nil
}

func (m *mockPhoneVerificationStore) WithTx(tx *sql.Tx) store.PhoneVerificationStore { return m }

// mockEmitter records emitted events.
type mockEmitter struct {
	mu     sync.Mutex
	events []*events.TaskRequestEvent
}

func (m *mockEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEmitter) emitted() []*events.TaskRequestEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.TaskRequestEvent, len(m.events))
	copy(out, m.events)
	return out
}
