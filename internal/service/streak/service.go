// Package streak exposes the user streak state: reading it and recording
// qualifying activity. Recording is idempotent within a calendar day, so
// callers may safely retry.
package streak

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// Service provides streak operations.
type Service interface {
	// Get retrieves the user's streak state. Users with no recorded activity
	// get an empty streak rather than a not-found error.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// Record folds one qualifying activity at the given time into the user's
	// streak, applying the calendar-day rules of the scheduling core. The
	// update runs in its own transaction with a row lock on the streak
	// record.
	Record(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Streak, error)

	// RecordInTx is Record for callers that already hold an open transaction,
	// such as the review service folding streak activity atomically with a
	// card update. The streak row is locked within the caller's transaction.
	RecordInTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, now time.Time) (*domain.Streak, error)
}

// Verify interface compliance at compile time
var _ Service = (*streakServiceImpl)(nil)

type streakServiceImpl struct {
	db          *sql.DB
	streakStore store.StreakStore
	scheduler   srs.Service
	logger      *slog.Logger
}

// NewService creates a new streak Service implementation.
func NewService(
	db *sql.DB,
	streakStore store.StreakStore,
	scheduler srs.Service,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if streakStore == nil {
		panic("streakStore cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &streakServiceImpl{
		db:          db,
		streakStore: streakStore,
		scheduler:   scheduler,
		logger:      logger.With(slog.String("component", "streak_service")),
	}
}

// Get implements Service.Get.
func (s *streakServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	streak, err := s.streakStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrStreakNotFound) {
			return domain.NewStreak(userID)
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	return streak, nil
}

// Record implements Service.Record.
func (s *streakServiceImpl) Record(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Streak
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		streak, err := s.RecordInTx(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		updated = streak
		return nil
	})
	if err != nil {
		log.Error("failed to record streak activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("streak activity recorded",
		slog.String("user_id", userID.String()),
		slog.Int("current_streak", updated.CurrentStreak),
		slog.Int("longest_streak", updated.LongestStreak))

	return updated, nil
}

// RecordInTx implements Service.RecordInTx.
func (s *streakServiceImpl) RecordInTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	now time.Time,
) (*domain.Streak, error) {
	streakStore := s.streakStore.WithTx(tx)

	streak, err := streakStore.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	newStreak, err := s.scheduler.RecordActivity(streak, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record streak activity: %w", err)
	}

	if err := streakStore.Update(ctx, newStreak); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	return newStreak, nil
}
