// Package schedule manages per-user interval tables with get-or-create
// semantics: every user has exactly one table, materialized with the
// default intervals on first access.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// ErrInvalidIntervals indicates a submitted interval table is empty or
// contains non-positive day-counts.
var ErrInvalidIntervals = errors.New("invalid interval table")

// Service provides interval table operations.
type Service interface {
	// GetOrCreate retrieves the user's interval table, creating it with
	// domain.DefaultIntervals on first access.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.ReviewSchedule, error)

	// Update replaces the user's interval table. Returns ErrInvalidIntervals
	// if the new table is empty or contains non-positive values. Cards whose
	// review step falls outside a shrunken table are clamped to the last
	// interval by the scheduling core on their next review.
	Update(ctx context.Context, userID uuid.UUID, intervals []int) (*domain.ReviewSchedule, error)
}

// Verify interface compliance at compile time
var _ Service = (*scheduleServiceImpl)(nil)

type scheduleServiceImpl struct {
	scheduleStore store.ScheduleStore
	logger        *slog.Logger
}

// NewService creates a new schedule Service implementation.
func NewService(scheduleStore store.ScheduleStore, logger *slog.Logger) Service {
	if scheduleStore == nil {
		panic("scheduleStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &scheduleServiceImpl{
		scheduleStore: scheduleStore,
		logger:        logger.With(slog.String("component", "schedule_service")),
	}
}

// GetOrCreate implements Service.GetOrCreate.
func (s *scheduleServiceImpl) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ReviewSchedule, error) {
	schedule, err := s.scheduleStore.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create interval table: %w", err)
	}
	return schedule, nil
}

// Update implements Service.Update.
func (s *scheduleServiceImpl) Update(
	ctx context.Context,
	userID uuid.UUID,
	intervals []int,
) (*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	schedule, err := s.scheduleStore.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interval table: %w", err)
	}

	if err := schedule.Replace(intervals); err != nil {
		log.Warn("rejected invalid interval table",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntervals, err)
	}

	if err := s.scheduleStore.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update interval table: %w", err)
	}

	log.Info("interval table updated",
		slog.String("user_id", userID.String()),
		slog.Any("intervals", schedule.Intervals))

	return schedule, nil
}
