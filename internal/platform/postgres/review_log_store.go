package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the ReviewLogStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create
// It appends a new review log entry.
func (s *PostgresReviewLogStore) Create(ctx context.Context, entry *domain.ReviewLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("review log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_logs (id, card_id, is_success, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, entry.ID, entry.CardID, entry.IsSuccess, entry.CreatedAt)
	if err != nil {
		log.Error("failed to create review log entry",
			slog.String("error", err.Error()),
			slog.String("card_id", entry.CardID.String()))
		return MapError(err)
	}

	return nil
}

// ListByCard implements store.ReviewLogStore.ListByCard
// It retrieves all log entries for a card, newest first.
func (s *PostgresReviewLogStore) ListByCard(
	ctx context.Context,
	cardID uuid.UUID,
) ([]*domain.ReviewLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, is_success, created_at
		FROM review_logs
		WHERE card_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		log.Error("failed to list review log entries",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.ReviewLog
	for rows.Next() {
		var entry domain.ReviewLog
		if err := rows.Scan(&entry.ID, &entry.CardID, &entry.IsSuccess, &entry.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// DeleteForCardInWindow implements store.ReviewLogStore.DeleteForCardInWindow
// It removes the entries for one card created within [from, to). Used by
// reactivation to purge same-day attempts; deleting zero rows is not an error.
func (s *PostgresReviewLogStore) DeleteForCardInWindow(
	ctx context.Context,
	cardID uuid.UUID,
	from, to time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM review_logs
		WHERE card_id = $1 AND created_at >= $2 AND created_at < $3
	`
	result, err := s.db.ExecContext(ctx, query, cardID, from, to)
	if err != nil {
		log.Error("failed to delete review log entries",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return MapError(err)
	}

	if deleted, err := result.RowsAffected(); err == nil && deleted > 0 {
		log.Debug("purged review log entries",
			slog.String("card_id", cardID.String()),
			slog.Int64("deleted", deleted))
	}

	return nil
}

// WithTx implements store.ReviewLogStore.WithTx
// It returns a new ReviewLogStore instance that uses the provided transaction.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}
