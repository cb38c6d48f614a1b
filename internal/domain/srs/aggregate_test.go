package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

func upcomingCard(t *testing.T, listID *uuid.UUID, nextReview time.Time, lastReviewed *time.Time) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(uuid.New(), listID, "sonder", "the realization that passersby have lives as vivid as your own")
	require.NoError(t, err)
	card.NextReview = nextReview
	card.LastReviewed = lastReviewed
	return card
}

func TestGroupUpcoming(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, 7)

	listA := uuid.New()
	listB := uuid.New()

	t.Run("filters cards beyond the cutoff", func(t *testing.T) {
		t.Parallel()

		cards := []*domain.Card{
			upcomingCard(t, &listA, now, nil),
			upcomingCard(t, &listA, cutoff.AddDate(0, 0, 1), nil),
		}

		groups := GroupUpcoming(cards, now, cutoff)

		require.Len(t, groups, 1)
		assert.Equal(t, 1, groups[0].Total)
	})

	t.Run("card due exactly at cutoff is included", func(t *testing.T) {
		t.Parallel()

		cards := []*domain.Card{upcomingCard(t, nil, cutoff, nil)}

		groups := GroupUpcoming(cards, now, cutoff)

		require.Len(t, groups, 1)
		assert.Equal(t, 1, groups[0].Total)
	})

	t.Run("groups by word list with ungrouped bucket", func(t *testing.T) {
		t.Parallel()

		cards := []*domain.Card{
			upcomingCard(t, &listA, now, nil),
			upcomingCard(t, nil, now, nil),
			upcomingCard(t, &listB, now, nil),
			upcomingCard(t, &listA, now, nil),
		}

		groups := GroupUpcoming(cards, now, cutoff)

		require.Len(t, groups, 3)
		// Insertion order of first appearance.
		assert.Equal(t, listA.String(), groups[0].Key)
		assert.Equal(t, UngroupedKey, groups[1].Key)
		assert.Equal(t, listB.String(), groups[2].Key)

		assert.Equal(t, 2, groups[0].Total)
		assert.Equal(t, 1, groups[1].Total)
		assert.Equal(t, 1, groups[2].Total)
	})

	t.Run("reviewed counts use the calendar day of now", func(t *testing.T) {
		t.Parallel()

		today := now.Add(-3 * time.Hour)
		yesterday := now.AddDate(0, 0, -1)

		cards := []*domain.Card{
			upcomingCard(t, &listA, now, &today),
			upcomingCard(t, &listA, now, &yesterday),
			upcomingCard(t, &listA, now, nil),
		}

		groups := GroupUpcoming(cards, now, cutoff)

		require.Len(t, groups, 1)
		assert.Equal(t, 3, groups[0].Total)
		assert.Equal(t, 1, groups[0].Reviewed)
		assert.Equal(t, 2, groups[0].NotReviewed)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, GroupUpcoming(nil, now, cutoff))
	})

	t.Run("idempotent over the same input", func(t *testing.T) {
		t.Parallel()

		cards := []*domain.Card{
			upcomingCard(t, &listA, now, nil),
			upcomingCard(t, nil, now, nil),
		}

		first := GroupUpcoming(cards, now, cutoff)
		second := GroupUpcoming(cards, now, cutoff)

		assert.Equal(t, first, second)
	})
}
