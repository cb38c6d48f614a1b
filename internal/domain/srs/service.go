package srs

import (
	"errors"
	"time"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// Common errors
var (
	ErrNilCard            = errors.New("card cannot be nil")
	ErrNilStreak          = errors.New("streak cannot be nil")
	ErrEmptyIntervals     = errors.New("interval table cannot be empty")
	ErrNonPositiveInterval = errors.New("interval table values must be positive")
)

// Service defines the interface for the spaced-repetition scheduling core.
// All methods are pure with respect to their inputs: they return new values
// and never touch persistent state.
type Service interface {
	// ApplyOutcome computes the card's post-review state and the review log
	// entry for a single success/failure outcome against the given interval
	// table.
	ApplyOutcome(
		card *domain.Card,
		intervals []int,
		isSuccess bool,
		now time.Time,
	) (*domain.Card, *domain.ReviewLog, error)

	// Reactivate resets a card to step 0 and status ACTIVE so it is due
	// again from the start of the current day. This is the explicit
	// "add to review" override, not part of the normal state machine.
	Reactivate(card *domain.Card, now time.Time) (*domain.Card, error)

	// RecordActivity folds one qualifying review/test activity into the
	// user's streak state.
	RecordActivity(streak *domain.Streak, now time.Time) (*domain.Streak, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewService creates the standard scheduling core implementation.
func NewService() Service {
	return &defaultService{}
}

// ApplyOutcome implements the Service interface for outcome processing.
func (s *defaultService) ApplyOutcome(
	card *domain.Card,
	intervals []int,
	isSuccess bool,
	now time.Time,
) (*domain.Card, *domain.ReviewLog, error) {
	if card == nil {
		return nil, nil, ErrNilCard
	}

	if err := validateIntervals(intervals); err != nil {
		return nil, nil, err
	}

	newCard, entry := applyOutcome(card, intervals, isSuccess, now)
	return newCard, entry, nil
}

// Reactivate implements the Service interface for the explicit reset path.
func (s *defaultService) Reactivate(card *domain.Card, now time.Time) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	return reactivate(card, now), nil
}

// RecordActivity implements the Service interface for streak tracking.
func (s *defaultService) RecordActivity(
	streak *domain.Streak,
	now time.Time,
) (*domain.Streak, error) {
	if streak == nil {
		return nil, ErrNilStreak
	}

	return recordActivity(streak, now), nil
}

// validateIntervals rejects interval tables that cannot schedule a review:
// empty tables and tables containing zero or negative day-counts.
func validateIntervals(intervals []int) error {
	if len(intervals) == 0 {
		return ErrEmptyIntervals
	}

	for _, days := range intervals {
		if days <= 0 {
			return ErrNonPositiveInterval
		}
	}

	return nil
}
