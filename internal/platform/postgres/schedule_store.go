package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// PostgresScheduleStore implements the store.ScheduleStore interface
// using a PostgreSQL database as the storage backend.
// The interval table is stored as a JSONB array of day-counts.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of the ScheduleStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

// GetOrCreate implements store.ScheduleStore.GetOrCreate
// It retrieves the user's review schedule, creating it with the default
// interval table on first access. The insert uses ON CONFLICT DO NOTHING so
// concurrent first accesses converge on a single row.
func (s *PostgresScheduleStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	schedule, err := s.get(ctx, userID)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, store.ErrScheduleNotFound) {
		return nil, err
	}

	created, err := domain.NewReviewSchedule(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	intervals, err := json.Marshal(created.Intervals)
	if err != nil {
		return nil, fmt.Errorf("failed to encode intervals: %w", err)
	}

	query := `
		INSERT INTO review_schedules (user_id, intervals, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, created.UserID, intervals, created.CreatedAt, created.UpdatedAt); err != nil {
		log.Error("failed to create review schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Info("review schedule created with defaults",
		slog.String("user_id", userID.String()))

	// Re-read so a concurrent creation still yields the stored row.
	return s.get(ctx, userID)
}

// Update implements store.ScheduleStore.Update
// It replaces the user's interval table.
// Returns store.ErrScheduleNotFound if no schedule exists for the user.
func (s *PostgresScheduleStore) Update(ctx context.Context, schedule *domain.ReviewSchedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", schedule.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	intervals, err := json.Marshal(schedule.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	query := `
		UPDATE review_schedules
		SET intervals = $2, updated_at = $3
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(ctx, query, schedule.UserID, intervals, schedule.UpdatedAt)
	if err != nil {
		log.Error("failed to update review schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", schedule.UserID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrScheduleNotFound)
}

// WithTx implements store.ScheduleStore.WithTx
// It returns a new ScheduleStore instance that uses the provided transaction.
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresScheduleStore) get(ctx context.Context, userID uuid.UUID) (*domain.ReviewSchedule, error) {
	query := `
		SELECT user_id, intervals, created_at, updated_at
		FROM review_schedules
		WHERE user_id = $1
	`

	var (
		schedule domain.ReviewSchedule
		raw      []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&schedule.UserID,
		&raw,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrScheduleNotFound
		}
		return nil, MapError(err)
	}

	if err := json.Unmarshal(raw, &schedule.Intervals); err != nil {
		return nil, fmt.Errorf("failed to decode intervals: %w", err)
	}

	return &schedule, nil
}
