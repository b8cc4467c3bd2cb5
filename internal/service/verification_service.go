package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/events"
	"github.com/tailorent/tailorent-api/internal/service/auth"
	"github.com/tailorent/tailorent-api/internal/store"
	"github.com/tailorent/tailorent-api/internal/task"
)

// VerificationService handles email token and phone OTP verification flows.
type VerificationService interface {
	// VerifyEmail consumes a verification token and marks the user verified.
	// Returns store.ErrVerificationNotFound for unknown or already-used
	// tokens and ErrVerificationExpired for tokens past their window.
	VerifyEmail(ctx context.Context, token uuid.UUID) error

	// RequestOTP creates (or finds) the account for the phone number and
	// dispatches a fresh OTP code by SMS. Unknown numbers get a new Customer
	// account, so requesting a code doubles as passwordless signup.
	RequestOTP(ctx context.Context, phoneNumber string) error

	// VerifyOTP checks the most recent unverified code for the phone number.
	// On success the user is marked verified and a token pair is issued.
	// All failure modes collapse into ErrInvalidOTP.
	VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.User, *TokenPair, error)
}

// VerificationServiceImpl implements the VerificationService interface
type VerificationServiceImpl struct {
	userStore  store.UserStore
	emailStore store.EmailVerificationStore
	phoneStore store.PhoneVerificationStore
	jwtService auth.JWTService
	emitter    events.EventEmitter
	txRunner   store.TxRunner
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing expiry windows
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(
	userStore store.UserStore,
	emailStore store.EmailVerificationStore,
	phoneStore store.PhoneVerificationStore,
	jwtService auth.JWTService,
	emitter events.EventEmitter,
	txRunner store.TxRunner,
	logger *slog.Logger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		userStore:  userStore,
		emailStore: emailStore,
		phoneStore: phoneStore,
		jwtService: jwtService,
		emitter:    emitter,
		txRunner:   txRunner,
		logger:     logger.With("component", "verification_service"),
		timeFunc:   time.Now,
	}
}

var _ VerificationService = (*VerificationServiceImpl)(nil)

// VerifyEmail consumes the token and marks the user verified in one
// transaction. The conditional MarkUsed keeps the token single-use even when
// two requests race on it.
func (s *VerificationServiceImpl) VerifyEmail(ctx context.Context, token uuid.UUID) error {
	verification, err := s.emailStore.GetUnusedByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrVerificationNotFound) {
			s.logger.Debug("email verification with unknown or used token")
			return err
		}
		s.logger.Error("failed to look up email verification", "error", err)
		return fmt.Errorf("failed to verify email: %w", err)
	}

	if verification.Expired(s.timeFunc().UTC()) {
		s.logger.Debug("email verification with expired token",
			"user_id", verification.UserID)
		return ErrVerificationExpired
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.emailStore.WithTx(tx).MarkUsed(ctx, verification.ID); err != nil {
			return err
		}
		return s.userStore.WithTx(tx).MarkVerified(ctx, verification.UserID)
	})
	if err != nil {
		if errors.Is(err, store.ErrVerificationNotFound) {
			// Lost the race to another request consuming the same token.
			return err
		}
		s.logger.Error("failed to consume email verification", "error", err)
		return fmt.Errorf("failed to verify email: %w", err)
	}

	s.logger.Info("email verified", "user_id", verification.UserID)
	return nil
}

// RequestOTP finds or creates the account for the phone number, then creates
// and dispatches a fresh code. The code row and (for new numbers) the user
// row commit together.
func (s *VerificationServiceImpl) RequestOTP(ctx context.Context, phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return domain.ErrEmptyPhoneNumber
	}

	var verification *domain.PhoneVerification
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)

		user, err := txUsers.GetByPhone(ctx, phoneNumber)
		if errors.Is(err, store.ErrUserNotFound) {
			user, err = domain.NewUser("", phoneNumber, domain.RoleCustomer)
			if err != nil {
				return err
			}
			// Passwordless account: a placeholder hash that never matches a
			// login attempt. The user can set a real password later.
			user.HashedPassword = "!"
			if createErr := txUsers.Create(ctx, user); createErr != nil {
				return createErr
			}
			s.logger.Info("created account for new phone number", "user_id", user.ID)
		} else if err != nil {
			return err
		}

		verification, err = domain.NewPhoneVerification(user.ID, phoneNumber)
		if err != nil {
			return err
		}
		return s.phoneStore.WithTx(tx).Create(ctx, verification)
	})
	if err != nil {
		s.logger.Error("failed to create OTP", "error", err)
		return fmt.Errorf("failed to request OTP: %w", err)
	}

	s.emitNotification(ctx, task.TaskTypeOTPSMS, task.OTPSMSPayload{
		PhoneNumber: phoneNumber,
		Code:        verification.OTPCode,
	})

	s.logger.Info("OTP requested", "user_id", verification.UserID)
	return nil
}

// VerifyOTP checks the most recent unverified code. Expired, consumed, and
// mismatched codes all return ErrInvalidOTP.
func (s *VerificationServiceImpl) VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.User, *TokenPair, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)

	verification, err := s.phoneStore.GetLatestUnverified(ctx, phoneNumber, code)
	if err != nil {
		if errors.Is(err, store.ErrVerificationNotFound) {
			s.logger.Debug("OTP verification with no matching code")
			return nil, nil, ErrInvalidOTP
		}
		s.logger.Error("failed to look up OTP", "error", err)
		return nil, nil, fmt.Errorf("failed to verify OTP: %w", err)
	}

	if verification.Expired(s.timeFunc().UTC()) {
		s.logger.Debug("OTP verification with expired code", "user_id", verification.UserID)
		return nil, nil, ErrInvalidOTP
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.phoneStore.WithTx(tx).MarkVerified(ctx, verification.ID); err != nil {
			return err
		}
		return s.userStore.WithTx(tx).MarkVerified(ctx, verification.UserID)
	})
	if err != nil {
		if errors.Is(err, store.ErrVerificationNotFound) {
			return nil, nil, ErrInvalidOTP
		}
		s.logger.Error("failed to consume OTP", "error", err)
		return nil, nil, fmt.Errorf("failed to verify OTP: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, verification.UserID)
	if err != nil {
		s.logger.Error("failed to load user after OTP verification", "error", err)
		return nil, nil, fmt.Errorf("failed to verify OTP: %w", err)
	}

	access, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	refresh, err := s.jwtService.GenerateRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("phone verified", "user_id", user.ID)
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *VerificationServiceImpl) emitNotification(ctx context.Context, kind string, payload any) {
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
