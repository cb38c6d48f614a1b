package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Streak-specific validation errors
var (
	// ErrStreakUserIDEmpty is returned when a streak's user ID is empty or nil.
	ErrStreakUserIDEmpty = errors.New("streak user ID cannot be empty")

	// ErrStreakNegative is returned when a streak counter is negative.
	ErrStreakNegative = errors.New("streak counters cannot be negative")

	// ErrStreakInconsistent is returned when the current streak exceeds the longest.
	ErrStreakInconsistent = errors.New("current streak cannot exceed longest streak")
)

// Streak tracks a user's run of consecutive calendar days with at least one
// qualifying review or test activity. LastReviewDate is nil until the first
// qualifying activity is recorded.
type Streak struct {
	UserID         uuid.UUID  `json:"user_id"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewStreak creates an empty streak record for the given user.
func NewStreak(userID uuid.UUID) (*Streak, error) {
	streak := &Streak{
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}

	if err := streak.Validate(); err != nil {
		return nil, err
	}

	return streak, nil
}

// Validate checks if the Streak has valid data.
func (s *Streak) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrStreakUserIDEmpty
	}

	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return ErrStreakNegative
	}

	if s.CurrentStreak > s.LongestStreak {
		return ErrStreakInconsistent
	}

	return nil
}
