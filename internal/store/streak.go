package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// StreakStore defines the interface for streak state persistence.
type StreakStore interface {
	// Get retrieves the user's streak state.
	// Returns ErrStreakNotFound if no activity has ever been recorded.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// GetForUpdate retrieves the user's streak with a row-level lock using
	// SELECT FOR UPDATE, creating an empty record first if none exists.
	// This must be used within a transaction when recording activity so
	// concurrent submissions for the same user cannot lose updates.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// Update persists new streak state for the user.
	// Returns ErrStreakNotFound if the record does not exist.
	Update(ctx context.Context, streak *domain.Streak) error

	// WithTx returns a new StreakStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StreakStore
}
