package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity wrapping the validation error if the card data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	// NOTE: This method does NOT provide any row locking, so it should not be used
	// when you plan to update the row and need concurrency protection.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate retrieves a card with a row-level lock using SELECT FOR UPDATE.
	// This must be used within a transaction when the caller intends to update the
	// card and needs protection from concurrent review submissions for the same card.
	// Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update modifies an existing card's scheduling state and counters.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its ID.
	// Associated review log entries are removed by the database's
	// ON DELETE CASCADE constraint.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDueByUser retrieves all of a user's cards whose next review falls at
	// or before the cutoff, ordered by next review time. Used by the upcoming
	// review aggregation.
	ListDueByUser(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) CardStore
}
