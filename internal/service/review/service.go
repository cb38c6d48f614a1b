// Package review implements the transactional review service: submitting
// outcomes, recording test results, reactivating cards, and building the
// upcoming-review view. It is the only writer of card scheduling state.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
)

// Service provides the review operations of the application.
type Service interface {
	// SubmitOutcome processes a success/failure outcome for one card and
	// updates its review schedule.
	//
	// Within a single transaction it:
	//  1. Loads the card with a row lock and verifies the caller owns it
	//  2. Fetches (or creates) the caller's interval table
	//  3. Applies the scheduling algorithm to compute the new card state
	//  4. Persists the card and appends the review log entry
	//  5. Folds the activity into the caller's streak
	//
	// Returns ErrCardNotFound if the card does not exist and ErrCardNotOwned
	// if it belongs to another user.
	SubmitOutcome(ctx context.Context, userID, cardID uuid.UUID, isSuccess bool) (*domain.Card, error)

	// RecordTestResult processes a test answer for one card. Unlike
	// SubmitOutcome it only updates the counters and appends a log entry;
	// the review step and next review date are untouched. Test activity
	// still counts toward the caller's streak.
	RecordTestResult(ctx context.Context, userID, cardID uuid.UUID, isSuccess bool) (*domain.Card, error)

	// Reactivate is the explicit "add to review" override: the card returns
	// to step 0 with status ACTIVE and becomes due from the start of today,
	// and any log entries the card accumulated today are purged so the fresh
	// same-day review does not double-count. Runs in a single transaction.
	Reactivate(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// GetUpcoming returns the caller's cards due within the window, grouped
	// by word list with per-group reviewed/not-reviewed counts. A zero
	// window means "due now". Read-only.
	GetUpcoming(ctx context.Context, userID uuid.UUID, window time.Duration) ([]*srs.UpcomingGroup, error)

	// ListHistory returns the card's review log entries, newest first.
	// Same ownership contract as SubmitOutcome. Read-only.
	ListHistory(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.ReviewLog, error)
}

// Common error types for the review service
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidIntervals indicates the caller's interval table is unusable.
	ErrInvalidIntervals = errors.New("invalid interval table")
)

// ServiceError wraps errors from the review service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_outcome", "reactivate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError creates a ServiceError for the given operation.
func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
