package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/events"
	"github.com/tailorent/tailorent-api/internal/service/auth"
	"github.com/tailorent/tailorent-api/internal/store"
	"github.com/tailorent/tailorent-api/internal/task"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email       string
	PhoneNumber string
	Password    string
	Role        domain.Role
}

// ProfileUpdate carries a partial profile update. Nil fields are unchanged.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Address        *string
	AboutMe        *string
	ProfilePicture *string
}

// UserService provides account and session operations.
type UserService interface {
	// Register creates a new account. When the account has an email address,
	// a verification email and a welcome email are dispatched asynchronously.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login authenticates by email or phone number plus password and issues
	// a token pair. Returns ErrInvalidCredentials for unknown identifiers and
	// wrong passwords alike.
	Login(ctx context.Context, identifier, password string) (*domain.User, *TokenPair, error)

	// RefreshTokens rotates a refresh token: the presented token is revoked
	// and a fresh pair is issued. A revoked or expired token is rejected.
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies a partial profile update and returns the updated
	// user.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// ChangePassword replaces the user's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// ListProfessionals returns all active tailors and fashion designers.
	ListProfessionals(ctx context.Context) ([]*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	emailStore store.EmailVerificationStore
	tokenStore store.TokenStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	emitter    events.EventEmitter
	txRunner   store.TxRunner
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	emailStore store.EmailVerificationStore,
	tokenStore store.TokenStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	emitter events.EventEmitter,
	txRunner store.TxRunner,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:  userStore,
		emailStore: emailStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		emitter:    emitter,
		txRunner:   txRunner,
		logger:     logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new account inside a transaction; the user row and its
// email verification row commit or roll back together.
func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(input.Email, input.PhoneNumber, input.Role)
	if err != nil {
		s.logger.Debug("failed to create user object", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hashed

	var verification *domain.EmailVerification
	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		if user.Email == "" {
			return nil
		}

		verification, err = domain.NewEmailVerification(user.ID)
		if err != nil {
			return err
		}
		return s.emailStore.WithTx(tx).Create(ctx, verification)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) || errors.Is(err, store.ErrPhoneExists) {
			s.logger.Debug("registration with taken identifier", "error", err)
			return nil, err
		}
		s.logger.Error("failed to register user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role)

	if verification != nil {
		s.emitNotification(ctx, task.TaskTypeVerificationEmail, task.VerificationEmailPayload{
			Email: user.Email,
			Name:  user.FullName(),
			Token: verification.Token.String(),
		})
		s.emitNotification(ctx, task.TaskTypeWelcomeEmail, task.WelcomeEmailPayload{
			Email: user.Email,
			Name:  user.FullName(),
		})
	}

	return user, nil
}

// Login authenticates a user by email or phone number.
func (s *UserServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.User, *TokenPair, error) {
	identifier = strings.TrimSpace(identifier)

	var user *domain.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userStore.GetByEmail(ctx, identifier)
	} else {
		user, err = s.userStore.GetByPhone(ctx, identifier)
	}

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a hash comparison so unknown identifiers take as long as
			// wrong passwords.
			auth.DummyCompare(password)
			s.logger.Debug("login attempt for unknown identifier")
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		// Indistinguishable from a wrong password so the response does not
		// reveal that the account exists but is disabled.
		s.logger.Debug("login attempt for inactive account", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// RefreshTokens rotates the refresh token. The presented token's jti is
// revoked before the new pair is issued, so each refresh token works once.
func (s *UserServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		s.logger.Warn("refresh token with unparsable jti", "user_id", claims.UserID)
		return nil, auth.ErrInvalidRefreshToken
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, jti)
	if err != nil {
		s.logger.Error("failed to check token revocation", "error", err)
		return nil, fmt.Errorf("failed to refresh tokens: %w", err)
	}
	if revoked {
		s.logger.Warn("attempted reuse of revoked refresh token", "user_id", claims.UserID)
		return nil, auth.ErrRevokedToken
	}

	if err := s.tokenStore.Revoke(ctx, jti, claims.UserID, claims.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to refresh tokens: %w", err)
	}

	pair, err := s.issueTokens(ctx, claims.UserID, claims.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tokens refreshed", "user_id", claims.UserID)
	return pair, nil
}

// Logout revokes the presented refresh token. The access token simply ages
// out; only refresh tokens are blacklisted.
func (s *UserServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return auth.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.Revoke(ctx, jti, claims.UserID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the update to the user.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.AboutMe != nil {
		user.AboutMe = *update.AboutMe
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.verifier.Compare(user.HashedPassword, currentPassword); err != nil {
		s.logger.Debug("password change with wrong current password", "user_id", userID)
		return ErrWrongPassword
	}

	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", "error", err)
		return fmt.Errorf("failed to change password: %w", err)
	}

	if err := s.userStore.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// DeleteUser removes the account and everything it owns.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		}
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// ListProfessionals returns all active tailors and fashion designers.
func (s *UserServiceImpl) ListProfessionals(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.ListProfessionals(ctx)
}

func (s *UserServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID, role domain.Role) (*TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	refresh, err := s.jwtService.GenerateRefreshToken(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// emitNotification publishes a fire-and-forget notification event. Emission
// failures are logged, never surfaced: the triggering operation has already
// committed.
func (s *UserServiceImpl) emitNotification(ctx context.Context, kind string, payload any) {
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
