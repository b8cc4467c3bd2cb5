package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tailorent/tailorent-api/internal/config"
	"github.com/tailorent/tailorent-api/internal/events"
	"github.com/tailorent/tailorent-api/internal/platform/mail"
	"github.com/tailorent/tailorent-api/internal/platform/postgres"
	"github.com/tailorent/tailorent-api/internal/platform/sms"
	"github.com/tailorent/tailorent-api/internal/service"
	"github.com/tailorent/tailorent-api/internal/service/auth"
	"github.com/tailorent/tailorent-api/internal/store"
	"github.com/tailorent/tailorent-api/internal/task"
)

// application holds all shared application dependencies so construction and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	emailVerStore  store.EmailVerificationStore
	phoneVerStore  store.PhoneVerificationStore
	tokenStore     store.TokenStore
	bookingStore   store.BookingStore
	productStore   store.ProductStore
	serviceStore   store.ServiceStore
	styleFeedStore store.StyleFeedStore
	taskStore      task.TaskStore

	// Services
	jwtService          auth.JWTService
	userService         service.UserService
	verificationService service.VerificationService
	bookingService      service.BookingService
	catalogService      service.CatalogService

	// Event system and background work
	eventEmitter events.EventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication wires every dependency and starts the background task
// runner. The runner starts last so recovered tasks can already be rebuilt by
// the notification factory.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.emailVerStore = postgres.NewPostgresEmailVerificationStore(db, logger)
	app.phoneVerStore = postgres.NewPostgresPhoneVerificationStore(db, logger)
	app.tokenStore = postgres.NewPostgresTokenStore(db, logger)
	app.bookingStore = postgres.NewPostgresBookingStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)
	app.serviceStore = postgres.NewPostgresServiceStore(db, logger)
	app.styleFeedStore = postgres.NewPostgresStyleFeedStore(db, logger)

	// Outbound delivery
	mailer := mail.NewSender(cfg.Mail, logger)
	texter := sms.NewSender(cfg.SMS, logger)

	// Notification tasks: the factory rebuilds tasks recovered from the
	// database, the runner executes them.
	notificationFactory := task.NewNotificationTaskFactory(mailer, texter, cfg.Server.BaseURL, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, notificationFactory)

	runnerConfig := task.DefaultTaskRunnerConfig()
	if cfg.Task.WorkerCount > 0 {
		runnerConfig.WorkerCount = cfg.Task.WorkerCount
	}
	if cfg.Task.QueueSize > 0 {
		runnerConfig.QueueSize = cfg.Task.QueueSize
	}
	if cfg.Task.StuckTaskAgeMinutes > 0 {
		runnerConfig.StuckTaskAge = time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute
	}
	app.taskRunner = task.NewTaskRunner(app.taskStore, runnerConfig, logger)

	// Event system
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewNotificationEventHandler(notificationFactory, app.taskRunner, logger))
	app.eventEmitter = emitter

	// Services
	txRunner := store.NewTxRunner(db)
	app.userService = service.NewUserService(
		app.userStore,
		app.emailVerStore,
		app.tokenStore,
		app.jwtService,
		hasher,
		verifier,
		app.eventEmitter,
		txRunner,
		logger,
	)
	app.verificationService = service.NewVerificationService(
		app.userStore,
		app.emailVerStore,
		app.phoneVerStore,
		app.jwtService,
		app.eventEmitter,
		txRunner,
		logger,
	)
	app.bookingService = service.NewBookingService(
		app.bookingStore,
		app.userStore,
		app.eventEmitter,
		logger,
	)
	app.catalogService = service.NewCatalogService(
		app.productStore,
		app.serviceStore,
		app.styleFeedStore,
		logger,
	)

	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
