package srs

import (
	"time"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// UngroupedKey is the group key used for cards that do not belong to a word
// list.
const UngroupedKey = "ungrouped"

// UpcomingGroup holds the cards of one word list (or the ungrouped bucket)
// that fall inside a review window, with per-group counts.
type UpcomingGroup struct {
	Key         string         `json:"key"`
	Total       int            `json:"total"`
	Reviewed    int            `json:"reviewed"`
	NotReviewed int            `json:"not_reviewed"`
	Cards       []*domain.Card `json:"cards"`
}

// GroupUpcoming groups cards whose next review falls at or before cutoff by
// their word list. Cards without a list land in the UngroupedKey bucket.
//
// A card counts as reviewed when its last review falls on the calendar day
// containing now; NotReviewed is always Total - Reviewed. Groups appear in
// the order their first card is seen in the input, not sorted.
//
// The function is read-only: the input cards are never mutated, and calling
// it twice over the same input yields an identical grouping.
func GroupUpcoming(cards []*domain.Card, now, cutoff time.Time) []*UpcomingGroup {
	groups := make(map[string]*UpcomingGroup)
	var order []string

	for _, card := range cards {
		if card.NextReview.After(cutoff) {
			continue
		}

		key := UngroupedKey
		if card.WordListID != nil {
			key = card.WordListID.String()
		}

		group, ok := groups[key]
		if !ok {
			group = &UpcomingGroup{Key: key}
			groups[key] = group
			order = append(order, key)
		}

		group.Total++
		if card.LastReviewed != nil && sameCalendarDay(*card.LastReviewed, now) {
			group.Reviewed++
		}
		group.NotReviewed = group.Total - group.Reviewed
		group.Cards = append(group.Cards, card)
	}

	result := make([]*UpcomingGroup, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}

	return result
}
