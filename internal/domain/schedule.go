package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewSchedule-specific validation errors
var (
	// ErrScheduleUserIDEmpty is returned when a schedule's user ID is empty or nil.
	ErrScheduleUserIDEmpty = errors.New("review schedule user ID cannot be empty")

	// ErrScheduleEmpty is returned when a schedule's interval table has no entries.
	ErrScheduleEmpty = errors.New("review schedule must contain at least one interval")

	// ErrScheduleNonPositive is returned when an interval is zero or negative.
	ErrScheduleNonPositive = errors.New("review schedule intervals must be positive")
)

// DefaultIntervals is the canonical interval table assigned to a user on
// first access, in days. The final interval marks the step at which a
// successful review completes the card.
var DefaultIntervals = []int{1, 7, 30, 365}

// ReviewSchedule is a user's interval table: an ordered sequence of
// day-counts defining the spaced-repetition gaps. Each user owns exactly
// one table, created with DefaultIntervals on first access.
type ReviewSchedule struct {
	UserID    uuid.UUID `json:"user_id"`
	Intervals []int     `json:"intervals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewSchedule creates a schedule for the given user with the
// canonical default interval table.
func NewReviewSchedule(userID uuid.UUID) (*ReviewSchedule, error) {
	now := time.Now().UTC()
	schedule := &ReviewSchedule{
		UserID:    userID,
		Intervals: append([]int(nil), DefaultIntervals...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks if the ReviewSchedule has valid data.
// Returns an error if the interval table is empty or contains
// non-positive values.
func (s *ReviewSchedule) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrScheduleUserIDEmpty
	}

	if len(s.Intervals) == 0 {
		return ErrScheduleEmpty
	}

	for _, days := range s.Intervals {
		if days <= 0 {
			return ErrScheduleNonPositive
		}
	}

	return nil
}

// Replace swaps the interval table for a new one and bumps the updated
// timestamp. The original table is restored if the new one is invalid.
func (s *ReviewSchedule) Replace(intervals []int) error {
	original := s.Intervals
	s.Intervals = append([]int(nil), intervals...)

	if err := s.Validate(); err != nil {
		s.Intervals = original
		return err
	}

	s.UpdatedAt = time.Now().UTC()
	return nil
}
