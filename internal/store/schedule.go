package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// ScheduleStore defines the interface for interval table persistence.
// Each user owns exactly one review schedule with upsert semantics: the
// table is created with the default intervals on first access.
type ScheduleStore interface {
	// GetOrCreate retrieves the user's review schedule, creating it with
	// domain.DefaultIntervals if none exists yet.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.ReviewSchedule, error)

	// Update replaces the user's interval table.
	// Returns ErrScheduleNotFound if no schedule exists for the user.
	// Returns ErrInvalidEntity wrapping the validation error if the table is
	// empty or contains non-positive values.
	Update(ctx context.Context, schedule *domain.ReviewSchedule) error

	// WithTx returns a new ScheduleStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ScheduleStore
}
