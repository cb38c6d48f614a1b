package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cihanisildar/dailingo-api/internal/config"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
	"github.com/cihanisildar/dailingo-api/internal/platform/postgres"
	"github.com/cihanisildar/dailingo-api/internal/service"
	"github.com/cihanisildar/dailingo-api/internal/service/auth"
	"github.com/cihanisildar/dailingo-api/internal/service/review"
	"github.com/cihanisildar/dailingo-api/internal/service/schedule"
	"github.com/cihanisildar/dailingo-api/internal/service/streak"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	cardStore     store.CardStore
	logStore      store.ReviewLogStore
	scheduleStore store.ScheduleStore
	streakStore   store.StreakStore

	// Services
	jwtService      auth.JWTService
	passwordHasher  auth.PasswordManager
	srsService      srs.Service
	cardService     service.CardService
	reviewService   review.Service
	streakService   streak.Service
	scheduleService schedule.Service
}

// newApplication builds the dependency graph from the outside in: stores
// over the shared *sql.DB, then services over the stores.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
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
		"access_token_ttl_minutes", cfg.Auth.AccessTokenTTLMinutes)

	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.logStore = postgres.NewPostgresReviewLogStore(db, logger)
	app.scheduleStore = postgres.NewPostgresScheduleStore(db, logger)
	app.streakStore = postgres.NewPostgresStreakStore(db, logger)

	app.srsService = srs.NewService()

	app.cardService = service.NewCardService(app.cardStore, logger)
	app.streakService = streak.NewService(db, app.streakStore, app.srsService, logger)
	app.reviewService = review.NewService(
		db,
		app.cardStore,
		app.logStore,
		app.scheduleStore,
		app.streakService,
		app.srsService,
		logger,
	)
	app.scheduleService = schedule.NewService(app.scheduleStore, logger)

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

// accessTokenTTL derives the access token lifetime from configuration.
func (app *application) accessTokenTTL() time.Duration {
	return time.Duration(app.config.Auth.AccessTokenTTLMinutes) * time.Minute
}
