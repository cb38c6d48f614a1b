package srs

import (
	"time"

	"github.com/cihanisildar/dailingo-api/internal/domain"
)

// recordActivity folds one qualifying activity into a streak, returning a
// new streak value.
//
// The decision is based purely on the calendar-day distance between the last
// recorded activity and now:
//   - no prior activity, or a gap of more than one day: the run restarts at 1
//   - a gap of exactly one day: the run extends by 1
//   - same day: the run is unchanged, so repeated activity within a day
//     never inflates the streak
//
// LongestStreak is the running maximum of CurrentStreak, which preserves the
// invariant CurrentStreak <= LongestStreak.
func recordActivity(streak *domain.Streak, now time.Time) *domain.Streak {
	newStreak := *streak

	switch {
	case streak.LastReviewDate == nil:
		newStreak.CurrentStreak = 1
	default:
		switch gap := calendarDayDistance(*streak.LastReviewDate, now); {
		case gap == 0:
			// Same day: leave the run as-is.
		case gap == 1:
			newStreak.CurrentStreak++
		default:
			newStreak.CurrentStreak = 1
		}
	}

	if newStreak.CurrentStreak > newStreak.LongestStreak {
		newStreak.LongestStreak = newStreak.CurrentStreak
	}

	recorded := now
	newStreak.LastReviewDate = &recorded
	newStreak.UpdatedAt = now

	return &newStreak
}

// calendarDayDistance returns the number of whole calendar days between two
// timestamps, ignoring time-of-day. The result is non-negative when to is on
// or after from.
func calendarDayDistance(from, to time.Time) int {
	return int(StartOfDay(to).Sub(StartOfDay(from)) / (24 * time.Hour))
}
