package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewLog-specific validation errors
var (
	// ErrReviewLogIDEmpty is returned when a review log ID is empty or nil.
	ErrReviewLogIDEmpty = errors.New("review log ID cannot be empty")

	// ErrReviewLogCardIDEmpty is returned when a review log's card ID is empty or nil.
	ErrReviewLogCardIDEmpty = errors.New("review log card ID cannot be empty")
)

// ReviewLog is an immutable record of a single scored interaction with a
// card. Entries are append-only and owned by the card; the only deletion
// path is the same-day purge performed when a card is explicitly
// reactivated.
type ReviewLog struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	IsSuccess bool      `json:"is_success"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewLog creates a new ReviewLog entry for the given card.
// Returns an error if validation fails.
func NewReviewLog(cardID uuid.UUID, isSuccess bool, createdAt time.Time) (*ReviewLog, error) {
	entry := &ReviewLog{
		ID:        uuid.New(),
		CardID:    cardID,
		IsSuccess: isSuccess,
		CreatedAt: createdAt,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the ReviewLog has valid data.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrReviewLogIDEmpty
	}

	if l.CardID == uuid.Nil {
		return ErrReviewLogCardIDEmpty
	}

	return nil
}
