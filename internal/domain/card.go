package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents the lifecycle state of a card's review schedule.
type ReviewStatus string

// Possible review status values
const (
	ReviewStatusActive    ReviewStatus = "ACTIVE"
	ReviewStatusCompleted ReviewStatus = "COMPLETED"
	ReviewStatusPaused    ReviewStatus = "PAUSED"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardStepNegative is returned when a card's review step is negative.
	ErrCardStepNegative = errors.New("card review step cannot be negative")

	// ErrCardInvalidStatus is returned when a card carries an unknown review status.
	ErrCardInvalidStatus = errors.New("invalid card review status")

	// ErrCardNegativeCounter is returned when any of a card's counters is negative.
	ErrCardNegativeCounter = errors.New("card counters cannot be negative")
)

// Card represents a single vocabulary item owned by a user, together with
// the scheduling state driven by the spaced-repetition core.
//
// ReviewStep is a zero-based index into the owner's interval table. A step
// that is out of range for the current table (possible after the user shrinks
// their table) is clamped to the last interval by the scheduling core rather
// than treated as an error.
type Card struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	WordListID   *uuid.UUID   `json:"word_list_id,omitempty"`
	Word         string       `json:"word"`
	Meaning      string       `json:"meaning"`
	ReviewStep   int          `json:"review_step"`
	ReviewStatus ReviewStatus `json:"review_status"`
	LastReviewed *time.Time   `json:"last_reviewed,omitempty"`
	NextReview   time.Time    `json:"next_review"`
	SuccessCount int          `json:"success_count"`
	FailureCount int          `json:"failure_count"`
	ViewCount    int          `json:"view_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewCard creates a new Card for the given user with the given word and meaning.
// The card starts at review step 0 with status ACTIVE and is immediately due.
// Returns an error if validation fails.
func NewCard(userID uuid.UUID, wordListID *uuid.UUID, word, meaning string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		UserID:       userID,
		WordListID:   wordListID,
		Word:         word,
		Meaning:      meaning,
		ReviewStep:   0,
		ReviewStatus: ReviewStatusActive,
		NextReview:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.Word == "" {
		return ErrCardWordEmpty
	}

	if c.ReviewStep < 0 {
		return ErrCardStepNegative
	}

	switch c.ReviewStatus {
	case ReviewStatusActive, ReviewStatusCompleted, ReviewStatusPaused:
	default:
		return ErrCardInvalidStatus
	}

	if c.SuccessCount < 0 || c.FailureCount < 0 || c.ViewCount < 0 {
		return ErrCardNegativeCounter
	}

	return nil
}

// IsDue reports whether the card is due for review at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}
