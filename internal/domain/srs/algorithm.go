package srs

import (
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// clampStep bounds a card's review step to the current interval table.
//
// A step can fall out of range when a user shrinks their custom interval
// table after cards have already progressed past the new length. Rather than
// treating that as corrupt state, the step is reinterpreted as "use the last
// interval", which keeps the card at the end of its schedule.
func clampStep(step, tableLen int) int {
	if step < 0 {
		return 0
	}
	if step >= tableLen {
		return tableLen - 1
	}
	return step
}

// nextStep computes the review step after an outcome.
//
// A success below the final index advances the step by one. A failure, or a
// success already at the final index, leaves the step unchanged: failures
// never reset progress.
func nextStep(step, tableLen int, isSuccess bool) int {
	current := clampStep(step, tableLen)
	if isSuccess && current < tableLen-1 {
		return current + 1
	}
	return current
}

// applyOutcome computes a card's new scheduling state and the review log
// entry for a single scored outcome.
//
// The function follows the immutable update pattern: the input card is never
// modified, and a new card value is returned alongside the log entry.
//
// Behavior:
//   - The step advances only on success below the final index (see nextStep).
//   - The next review is scheduled intervals[newStep] days after now, so it
//     is always strictly in the future given positive intervals.
//   - ViewCount always increments; SuccessCount or FailureCount increments
//     according to the outcome. Counters never decrease.
//   - A success at the final index marks the card COMPLETED; otherwise the
//     status is unchanged. Outcomes submitted for COMPLETED cards are
//     processed identically, so re-reviewing a finished card only refreshes
//     its statistics; only explicit reactivation restarts its schedule.
//
// The caller is responsible for ensuring intervals is non-empty with
// positive values; the Service wrapper validates this.
func applyOutcome(
	card *domain.Card,
	intervals []int,
	isSuccess bool,
	now time.Time,
) (*domain.Card, *domain.ReviewLog) {
	newCard := *card

	newIndex := nextStep(card.ReviewStep, len(intervals), isSuccess)
	newCard.ReviewStep = newIndex

	reviewed := now
	newCard.LastReviewed = &reviewed
	newCard.NextReview = now.AddDate(0, 0, intervals[newIndex])

	newCard.ViewCount++
	if isSuccess {
		newCard.SuccessCount++
	} else {
		newCard.FailureCount++
	}

	if isSuccess && newIndex == len(intervals)-1 {
		newCard.ReviewStatus = domain.ReviewStatusCompleted
	}

	newCard.UpdatedAt = now

	entry := &domain.ReviewLog{
		ID:        uuid.New(),
		CardID:    card.ID,
		IsSuccess: isSuccess,
		CreatedAt: now,
	}

	return &newCard, entry
}

// reactivate resets a card to the start of its schedule so it becomes
// immediately eligible for a fresh review.
//
// The step returns to 0, the status to ACTIVE, the last-reviewed timestamp is
// cleared, and the next review is set to the start of the current day. The
// accumulated counters are retained; only the schedule position resets.
//
// The companion same-day review log purge is a persistence concern handled
// by the review service, not here.
func reactivate(card *domain.Card, now time.Time) *domain.Card {
	newCard := *card
	newCard.ReviewStep = 0
	newCard.ReviewStatus = domain.ReviewStatusActive
	newCard.LastReviewed = nil
	newCard.NextReview = StartOfDay(now)
	newCard.UpdatedAt = now
	return &newCard
}

// StartOfDay truncates a timestamp to midnight UTC of its calendar day.
// All calendar-day arithmetic in the scheduling core (reactivation windows,
// streak gaps, reviewed-today counts) uses UTC days.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameCalendarDay reports whether two timestamps fall on the same UTC
// calendar day.
func sameCalendarDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
