package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// ReviewLogStore defines the interface for review log persistence.
// Log entries are append-only; the only deletion path is the same-day purge
// performed during card reactivation.
type ReviewLogStore interface {
	// Create appends a new review log entry.
	// Returns ErrInvalidEntity wrapping the validation error if the entry is invalid.
	Create(ctx context.Context, entry *domain.ReviewLog) error

	// ListByCard retrieves all log entries for a card, newest first.
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewLog, error)

	// DeleteForCardInWindow removes the entries for one card created within
	// [from, to). Used by reactivation to purge same-day attempts so the card
	// can be re-reviewed without inflating its statistics. Deleting zero rows
	// is not an error.
	DeleteForCardInWindow(ctx context.Context, cardID uuid.UUID, from, to time.Time) error

	// WithTx returns a new ReviewLogStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
