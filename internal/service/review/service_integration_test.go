//go:build integration

package review_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
	"github.com/cihanisildar/dailingo-api/internal/platform/postgres"
	"github.com/cihanisildar/dailingo-api/internal/service/review"
	"github.com/cihanisildar/dailingo-api/internal/service/streak"
	"github.com/cihanisildar/dailingo-api/internal/testdb"
)

// integrationEnv bundles a review service wired to real PostgreSQL stores
// with direct store access for seeding and verification.
type integrationEnv struct {
	db      *sql.DB
	user    *domain.User
	reviews review.Service
	streaks streak.Service
	cards   *postgres.PostgresCardStore
	logs    *postgres.PostgresReviewLogStore
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()

	if testdb.ShouldSkipDatabaseTest() {
		t.Skip("set DATABASE_URL to run database integration tests")
	}

	db := testdb.Connect(t)
	user := testdb.CreateUser(t, db)

	cardStore := postgres.NewPostgresCardStore(db, nil)
	logStore := postgres.NewPostgresReviewLogStore(db, nil)
	scheduleStore := postgres.NewPostgresScheduleStore(db, nil)
	streakStore := postgres.NewPostgresStreakStore(db, nil)

	scheduler := srs.NewService()
	streakService := streak.NewService(db, streakStore, scheduler, nil)
	reviewService := review.NewService(
		db, cardStore, logStore, scheduleStore, streakService, scheduler, nil)

	return &integrationEnv{
		db:      db,
		user:    user,
		reviews: reviewService,
		streaks: streakService,
		cards:   cardStore,
		logs:    logStore,
	}
}

func (e *integrationEnv) createCard(t *testing.T) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(e.user.ID, nil, "ephemeral", "lasting a very short time")
	require.NoError(t, err)
	require.NoError(t, e.cards.Create(context.Background(), card))
	return card
}

func (e *integrationEnv) insertLog(t *testing.T, cardID uuid.UUID, createdAt time.Time) *domain.ReviewLog {
	t.Helper()
	entry, err := domain.NewReviewLog(cardID, true, createdAt)
	require.NoError(t, err)
	require.NoError(t, e.logs.Create(context.Background(), entry))
	return entry
}

func TestSubmitOutcomeIntegration(t *testing.T) {
	ctx := context.Background()

	t.Run("success advances the step and appends a log entry", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		updated, err := env.reviews.SubmitOutcome(ctx, env.user.ID, card.ID, true)
		require.NoError(t, err)

		// Step 0 success moves to step 1 of the default [1, 7, 30, 365] table.
		assert.Equal(t, 1, updated.ReviewStep)
		assert.Equal(t, domain.ReviewStatusActive, updated.ReviewStatus)
		assert.Equal(t, 1, updated.SuccessCount)
		assert.Equal(t, 1, updated.ViewCount)
		require.NotNil(t, updated.LastReviewed)
		assert.WithinDuration(t,
			time.Now().UTC().AddDate(0, 0, 7), updated.NextReview, time.Minute)

		stored, err := env.cards.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ReviewStep)

		entries, err := env.logs.ListByCard(ctx, card.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsSuccess)

		streakState, err := env.streaks.Get(ctx, env.user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, streakState.CurrentStreak)
	})

	t.Run("failure keeps the step", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		updated, err := env.reviews.SubmitOutcome(ctx, env.user.ID, card.ID, true)
		require.NoError(t, err)
		require.Equal(t, 1, updated.ReviewStep)

		updated, err = env.reviews.SubmitOutcome(ctx, env.user.ID, card.ID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ReviewStep)
		assert.Equal(t, 1, updated.FailureCount)
		assert.Equal(t, domain.ReviewStatusActive, updated.ReviewStatus)
	})

	t.Run("success at the final step completes the card", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		var updated *domain.Card
		var err error
		for i := 0; i < len(domain.DefaultIntervals)-1; i++ {
			updated, err = env.reviews.SubmitOutcome(ctx, env.user.ID, card.ID, true)
			require.NoError(t, err)
		}

		assert.Equal(t, len(domain.DefaultIntervals)-1, updated.ReviewStep)
		assert.Equal(t, domain.ReviewStatusCompleted, updated.ReviewStatus)
	})

	t.Run("another user's card is rejected", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		other := testdb.CreateUser(t, env.db)
		_, err := env.reviews.SubmitOutcome(ctx, other.ID, card.ID, true)
		assert.ErrorIs(t, err, review.ErrCardNotOwned)
	})
}

func TestRecordTestResultIntegration(t *testing.T) {
	ctx := context.Background()

	env := newIntegrationEnv(t)
	card := env.createCard(t)

	updated, err := env.reviews.RecordTestResult(ctx, env.user.ID, card.ID, true)
	require.NoError(t, err)

	// Test mode moves counters and logs but never the schedule.
	assert.Equal(t, card.ReviewStep, updated.ReviewStep)
	assert.True(t, card.NextReview.Equal(updated.NextReview))
	assert.Equal(t, 1, updated.SuccessCount)
	assert.Equal(t, 1, updated.ViewCount)

	entries, err := env.logs.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	streakState, err := env.streaks.Get(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streakState.CurrentStreak)
}

func TestReactivateIntegration(t *testing.T) {
	ctx := context.Background()

	t.Run("resets the schedule position", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		_, err := env.reviews.SubmitOutcome(ctx, env.user.ID, card.ID, true)
		require.NoError(t, err)

		updated, err := env.reviews.Reactivate(ctx, env.user.ID, card.ID)
		require.NoError(t, err)

		assert.Equal(t, 0, updated.ReviewStep)
		assert.Equal(t, domain.ReviewStatusActive, updated.ReviewStatus)
		assert.Nil(t, updated.LastReviewed)
		assert.True(t, updated.NextReview.Equal(srs.StartOfDay(time.Now().UTC())))
		// Counters survive reactivation.
		assert.Equal(t, 1, updated.SuccessCount)
	})

	t.Run("purges only the current day's log entries", func(t *testing.T) {
		env := newIntegrationEnv(t)
		card := env.createCard(t)

		today := srs.StartOfDay(time.Now().UTC())
		env.insertLog(t, card.ID, today.Add(time.Hour))
		yesterday := env.insertLog(t, card.ID, today.Add(-time.Hour))

		_, err := env.reviews.Reactivate(ctx, env.user.ID, card.ID)
		require.NoError(t, err)

		entries, err := env.logs.ListByCard(ctx, card.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, yesterday.ID, entries[0].ID)
	})
}

func TestRecordStreakIntegration(t *testing.T) {
	ctx := context.Background()

	env := newIntegrationEnv(t)
	now := time.Now().UTC()

	first, err := env.streaks.Record(ctx, env.user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CurrentStreak)
	assert.Equal(t, 1, first.LongestStreak)

	// Recording again on the same day is idempotent.
	second, err := env.streaks.Record(ctx, env.user.ID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, second.CurrentStreak)
}
