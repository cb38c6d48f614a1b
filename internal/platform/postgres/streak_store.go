package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// PostgresStreakStore implements the store.StreakStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStreakStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStreakStore creates a new PostgreSQL implementation of the StreakStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStreakStore(db store.DBTX, logger *slog.Logger) *PostgresStreakStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStreakStore{
		db:     db,
		logger: logger.With(slog.String("component", "streak_store")),
	}
}

// Ensure PostgresStreakStore implements store.StreakStore interface
var _ store.StreakStore = (*PostgresStreakStore)(nil)

// Get implements store.StreakStore.Get
// It retrieves the user's streak state.
// Returns store.ErrStreakNotFound if no activity has ever been recorded.
func (s *PostgresStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	query := `
		SELECT user_id, current_streak, longest_streak, last_review_date, updated_at
		FROM streaks
		WHERE user_id = $1
	`
	return s.scanOne(ctx, query, userID)
}

// GetForUpdate implements store.StreakStore.GetForUpdate
// It retrieves the user's streak with a row-level lock, creating an empty
// record first if none exists. Must run inside a transaction.
func (s *PostgresStreakStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	empty, err := domain.NewStreak(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	insert := `
		INSERT INTO streaks (user_id, current_streak, longest_streak, last_review_date, updated_at)
		VALUES ($1, 0, 0, NULL, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, insert, empty.UserID, empty.UpdatedAt); err != nil {
		log.Error("failed to seed streak record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	query := `
		SELECT user_id, current_streak, longest_streak, last_review_date, updated_at
		FROM streaks
		WHERE user_id = $1
		FOR UPDATE
	`
	return s.scanOne(ctx, query, userID)
}

// Update implements store.StreakStore.Update
// It persists new streak state for the user.
// Returns store.ErrStreakNotFound if the record does not exist.
func (s *PostgresStreakStore) Update(ctx context.Context, streak *domain.Streak) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := streak.Validate(); err != nil {
		log.Warn("streak validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE streaks
		SET current_streak = $2, longest_streak = $3, last_review_date = $4, updated_at = $5
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		nullableTime(streak.LastReviewDate),
		streak.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update streak",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrStreakNotFound)
}

// WithTx implements store.StreakStore.WithTx
// It returns a new StreakStore instance that uses the provided transaction.
func (s *PostgresStreakStore) WithTx(tx *sql.Tx) store.StreakStore {
	return &PostgresStreakStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresStreakStore) scanOne(
	ctx context.Context,
	query string,
	userID uuid.UUID,
) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		streak         domain.Streak
		lastReviewDate sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&lastReviewDate,
		&streak.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("streak not found", slog.String("user_id", userID.String()))
			return nil, store.ErrStreakNotFound
		}
		log.Error("failed to get streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if lastReviewDate.Valid {
		t := lastReviewDate.Time
		streak.LastReviewDate = &t
	}

	return &streak, nil
}
