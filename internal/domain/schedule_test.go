package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewSchedule(t *testing.T) {
	t.Parallel()

	t.Run("starts with the default interval table", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		schedule, err := NewReviewSchedule(userID)

		require.NoError(t, err)
		assert.Equal(t, userID, schedule.UserID)
		assert.Equal(t, []int{1, 7, 30, 365}, schedule.Intervals)
	})

	t.Run("owns a copy of the default table", func(t *testing.T) {
		t.Parallel()

		schedule, err := NewReviewSchedule(uuid.New())
		require.NoError(t, err)

		schedule.Intervals[0] = 99
		assert.Equal(t, 1, DefaultIntervals[0])
	})

	t.Run("rejects nil user", func(t *testing.T) {
		t.Parallel()

		_, err := NewReviewSchedule(uuid.Nil)
		assert.ErrorIs(t, err, ErrScheduleUserIDEmpty)
	})
}

func TestReviewScheduleValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		intervals []int
		wantErr   error
	}{
		{name: "default table", intervals: DefaultIntervals, wantErr: nil},
		{name: "custom table", intervals: []int{2, 4, 8}, wantErr: nil},
		{name: "single interval", intervals: []int{1}, wantErr: nil},
		{name: "empty", intervals: []int{}, wantErr: ErrScheduleEmpty},
		{name: "nil", intervals: nil, wantErr: ErrScheduleEmpty},
		{name: "zero interval", intervals: []int{1, 0, 7}, wantErr: ErrScheduleNonPositive},
		{name: "negative interval", intervals: []int{-3}, wantErr: ErrScheduleNonPositive},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			schedule := &ReviewSchedule{UserID: uuid.New(), Intervals: tc.intervals}

			err := schedule.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestReviewScheduleReplace(t *testing.T) {
	t.Parallel()

	t.Run("replaces with a valid table", func(t *testing.T) {
		t.Parallel()

		schedule, err := NewReviewSchedule(uuid.New())
		require.NoError(t, err)
		before := schedule.UpdatedAt

		err = schedule.Replace([]int{2, 5, 13})

		require.NoError(t, err)
		assert.Equal(t, []int{2, 5, 13}, schedule.Intervals)
		assert.True(t, schedule.UpdatedAt.After(before) || schedule.UpdatedAt.Equal(before))
	})

	t.Run("restores the original table on invalid input", func(t *testing.T) {
		t.Parallel()

		schedule, err := NewReviewSchedule(uuid.New())
		require.NoError(t, err)

		err = schedule.Replace([]int{1, -7})

		assert.ErrorIs(t, err, ErrScheduleNonPositive)
		assert.Equal(t, DefaultIntervals, schedule.Intervals)
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		t.Parallel()

		schedule, err := NewReviewSchedule(uuid.New())
		require.NoError(t, err)

		intervals := []int{3, 6}
		require.NoError(t, schedule.Replace(intervals))

		intervals[0] = 42
		assert.Equal(t, []int{3, 6}, schedule.Intervals)
	})
}
