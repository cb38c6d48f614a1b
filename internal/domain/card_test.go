package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid card starts at step zero and is immediately due", func(t *testing.T) {
		t.Parallel()

		card, err := NewCard(userID, nil, "petrichor", "the smell of rain on dry earth")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, userID, card.UserID)
		assert.Equal(t, 0, card.ReviewStep)
		assert.Equal(t, ReviewStatusActive, card.ReviewStatus)
		assert.Nil(t, card.LastReviewed)
		assert.True(t, card.IsDue(time.Now().UTC()))
		assert.Zero(t, card.SuccessCount)
		assert.Zero(t, card.FailureCount)
		assert.Zero(t, card.ViewCount)
	})

	t.Run("word list membership is optional", func(t *testing.T) {
		t.Parallel()

		listID := uuid.New()
		card, err := NewCard(userID, &listID, "saudade", "a deep longing for something absent")

		require.NoError(t, err)
		require.NotNil(t, card.WordListID)
		assert.Equal(t, listID, *card.WordListID)
	})

	t.Run("empty word is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewCard(userID, nil, "", "meaning")
		assert.ErrorIs(t, err, ErrCardWordEmpty)
	})

	t.Run("nil user is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewCard(uuid.Nil, nil, "word", "meaning")
		assert.ErrorIs(t, err, ErrCardUserIDEmpty)
	})
}

func TestCardValidate(t *testing.T) {
	t.Parallel()

	validCard := func(t *testing.T) *Card {
		t.Helper()
		card, err := NewCard(uuid.New(), nil, "word", "meaning")
		require.NoError(t, err)
		return card
	}

	testCases := []struct {
		name    string
		mutate  func(*Card)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Card) {}, wantErr: nil},
		{name: "nil ID", mutate: func(c *Card) { c.ID = uuid.Nil }, wantErr: ErrCardIDEmpty},
		{name: "nil user ID", mutate: func(c *Card) { c.UserID = uuid.Nil }, wantErr: ErrCardUserIDEmpty},
		{name: "empty word", mutate: func(c *Card) { c.Word = "" }, wantErr: ErrCardWordEmpty},
		{name: "negative step", mutate: func(c *Card) { c.ReviewStep = -1 }, wantErr: ErrCardStepNegative},
		{
			name:    "unknown status",
			mutate:  func(c *Card) { c.ReviewStatus = "ARCHIVED" },
			wantErr: ErrCardInvalidStatus,
		},
		{
			name:    "negative counter",
			mutate:  func(c *Card) { c.ViewCount = -1 },
			wantErr: ErrCardNegativeCounter,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card := validCard(t)
			tc.mutate(card)

			err := card.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCardIsDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	card, err := NewCard(uuid.New(), nil, "word", "meaning")
	require.NoError(t, err)

	card.NextReview = now
	assert.True(t, card.IsDue(now), "due exactly at next review")

	card.NextReview = now.Add(-time.Minute)
	assert.True(t, card.IsDue(now), "overdue")

	card.NextReview = now.Add(time.Minute)
	assert.False(t, card.IsDue(now), "not yet due")
}
