package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// cardColumns is the column list shared by every card select.
const cardColumns = `id, user_id, word_list_id, word, meaning, review_step, review_status,
	last_reviewed, next_review, success_count, failure_count, view_count, created_at, updated_at`

// Create implements store.CardStore.Create
// It saves a new card to the database, handling domain validation.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		nullableUUID(card.WordListID),
		card.Word,
		card.Meaning,
		card.ReviewStep,
		card.ReviewStatus,
		nullableTime(card.LastReviewed),
		card.NextReview,
		card.SuccessCount,
		card.FailureCount,
		card.ViewCount,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("user_id", card.UserID.String()))
		return MapError(err)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()),
		slog.String("word", card.Word))
	return nil
}

// GetByID implements store.CardStore.GetByID
// It retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForUpdate implements store.CardStore.GetForUpdate
// It retrieves a card with a row-level lock; must run inside a transaction.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresCardStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.CardStore.Update
// It modifies an existing card's scheduling state and counters.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET word_list_id = $2,
			word = $3,
			meaning = $4,
			review_step = $5,
			review_status = $6,
			last_reviewed = $7,
			next_review = $8,
			success_count = $9,
			failure_count = $10,
			view_count = $11,
			updated_at = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		nullableUUID(card.WordListID),
		card.Word,
		card.Meaning,
		card.ReviewStep,
		card.ReviewStatus,
		nullableTime(card.LastReviewed),
		card.NextReview,
		card.SuccessCount,
		card.FailureCount,
		card.ViewCount,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
// It removes a card from the store by its ID. Review log entries are removed
// by the ON DELETE CASCADE constraint on review_logs.card_id.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Info("card deleted successfully", slog.String("card_id", id.String()))
	return nil
}

// ListDueByUser implements store.CardStore.ListDueByUser
// It retrieves all of a user's cards due at or before the cutoff, ordered by
// next review time so the most overdue cards come first.
func (s *PostgresCardStore) ListDueByUser(
	ctx context.Context,
	userID uuid.UUID,
	cutoff time.Time,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1 AND next_review <= $2
		ORDER BY next_review ASC, created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, cutoff)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// WithTx implements store.CardStore.WithTx
// It returns a new CardStore instance that uses the provided transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCard.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard reads one card row into a domain.Card, converting the nullable
// columns back to pointers.
func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card         domain.Card
		wordListID   uuid.NullUUID
		lastReviewed sql.NullTime
		status       string
	)

	err := row.Scan(
		&card.ID,
		&card.UserID,
		&wordListID,
		&card.Word,
		&card.Meaning,
		&card.ReviewStep,
		&status,
		&lastReviewed,
		&card.NextReview,
		&card.SuccessCount,
		&card.FailureCount,
		&card.ViewCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.ReviewStatus = domain.ReviewStatus(status)
	if wordListID.Valid {
		id := wordListID.UUID
		card.WordListID = &id
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		card.LastReviewed = &t
	}

	return &card, nil
}

// nullableUUID converts an optional UUID into its database representation.
func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// nullableTime converts an optional timestamp into its database representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
