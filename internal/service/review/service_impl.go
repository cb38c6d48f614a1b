package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/service"
	"github.com/cihanisildar/dailingo-api/internal/service/streak"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the Service interface.
type reviewServiceImpl struct {
	db            *sql.DB
	cardStore     store.CardStore
	logStore      store.ReviewLogStore
	scheduleStore store.ScheduleStore
	streaks       streak.Service
	scheduler     srs.Service
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(
	db *sql.DB,
	cardStore store.CardStore,
	logStore store.ReviewLogStore,
	scheduleStore store.ScheduleStore,
	streakService streak.Service,
	scheduler srs.Service,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if logStore == nil {
		panic("logStore cannot be nil")
	}
	if scheduleStore == nil {
		panic("scheduleStore cannot be nil")
	}
	if streakService == nil {
		panic("streakService cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:            db,
		cardStore:     cardStore,
		logStore:      logStore,
		scheduleStore: scheduleStore,
		streaks:       streakService,
		scheduler:     scheduler,
		timeFunc:      func() time.Time { return time.Now().UTC() },
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// SubmitOutcome implements Service.SubmitOutcome.
func (s *reviewServiceImpl) SubmitOutcome(
	ctx context.Context,
	userID, cardID uuid.UUID,
	isSuccess bool,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	log.Debug("processing review outcome",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("is_success", isSuccess))

	var updatedCard *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.lockOwnedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		schedule, err := s.scheduleStore.WithTx(tx).GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load interval table: %w", err)
		}

		newCard, entry, err := s.scheduler.ApplyOutcome(card, schedule.Intervals, isSuccess, now)
		if err != nil {
			if errors.Is(err, srs.ErrEmptyIntervals) || errors.Is(err, srs.ErrNonPositiveInterval) {
				return fmt.Errorf("%w: %v", ErrInvalidIntervals, err)
			}
			return fmt.Errorf("failed to apply outcome: %w", err)
		}

		if err := s.cardStore.WithTx(tx).Update(ctx, newCard); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		if err := s.logStore.WithTx(tx).Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		if _, err := s.streaks.RecordInTx(ctx, tx, userID, now); err != nil {
			return err
		}

		updatedCard = newCard
		return nil
	})
	if err != nil {
		return nil, s.mapError(log, "submit_outcome", userID, cardID, err)
	}

	log.Debug("successfully processed review outcome",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("is_success", isSuccess),
		slog.Int("review_step", updatedCard.ReviewStep),
		slog.String("review_status", string(updatedCard.ReviewStatus)),
		slog.Time("next_review", updatedCard.NextReview))

	return updatedCard, nil
}

// RecordTestResult implements Service.RecordTestResult.
func (s *reviewServiceImpl) RecordTestResult(
	ctx context.Context,
	userID, cardID uuid.UUID,
	isSuccess bool,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	var updatedCard *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.lockOwnedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		// Counters only: the review step and schedule are untouched by tests.
		newCard := *card
		newCard.ViewCount++
		if isSuccess {
			newCard.SuccessCount++
		} else {
			newCard.FailureCount++
		}
		newCard.UpdatedAt = now

		if err := s.cardStore.WithTx(tx).Update(ctx, &newCard); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		entry, err := domain.NewReviewLog(cardID, isSuccess, now)
		if err != nil {
			return fmt.Errorf("failed to build review log entry: %w", err)
		}
		if err := s.logStore.WithTx(tx).Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		if _, err := s.streaks.RecordInTx(ctx, tx, userID, now); err != nil {
			return err
		}

		updatedCard = &newCard
		return nil
	})
	if err != nil {
		return nil, s.mapError(log, "record_test_result", userID, cardID, err)
	}

	return updatedCard, nil
}

// Reactivate implements Service.Reactivate.
func (s *reviewServiceImpl) Reactivate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	var updatedCard *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.lockOwnedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		newCard, err := s.scheduler.Reactivate(card, now)
		if err != nil {
			return fmt.Errorf("failed to reactivate card: %w", err)
		}

		if err := s.cardStore.WithTx(tx).Update(ctx, newCard); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		// Purge today's log entries so the card is eligible for a fresh
		// same-day review without inflating its statistics.
		from := srs.StartOfDay(now)
		to := from.AddDate(0, 0, 1)
		if err := s.logStore.WithTx(tx).DeleteForCardInWindow(ctx, cardID, from, to); err != nil {
			return fmt.Errorf("failed to purge same-day review logs: %w", err)
		}

		updatedCard = newCard
		return nil
	})
	if err != nil {
		return nil, s.mapError(log, "reactivate", userID, cardID, err)
	}

	log.Info("card reactivated",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))

	return updatedCard, nil
}

// GetUpcoming implements Service.GetUpcoming.
func (s *reviewServiceImpl) GetUpcoming(
	ctx context.Context,
	userID uuid.UUID,
	window time.Duration,
) ([]*srs.UpcomingGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	cutoff := now
	if window > 0 {
		cutoff = now.Add(window)
	}

	cards, err := s.cardStore.ListDueByUser(ctx, userID, cutoff)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("get_upcoming", "failed to list due cards", err)
	}

	return srs.GroupUpcoming(cards, now, cutoff), nil
}

// ListHistory implements Service.ListHistory.
func (s *reviewServiceImpl) ListHistory(
	ctx context.Context,
	userID, cardID uuid.UUID,
) ([]*domain.ReviewLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, newServiceError("list_history", "failed to get card", err)
	}

	if err := service.RequireOwner(card.UserID, userID); err != nil {
		return nil, ErrCardNotOwned
	}

	entries, err := s.logStore.ListByCard(ctx, cardID)
	if err != nil {
		log.Error("failed to list review log entries",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, newServiceError("list_history", "failed to list review log entries", err)
	}

	if entries == nil {
		entries = []*domain.ReviewLog{}
	}
	return entries, nil
}

// lockOwnedCard loads a card with a row lock inside the transaction and
// verifies the caller owns it.
func (s *reviewServiceImpl) lockOwnedCard(
	ctx context.Context,
	tx *sql.Tx,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, err := s.cardStore.WithTx(tx).GetForUpdate(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if err := service.RequireOwner(card.UserID, userID); err != nil {
		return nil, ErrCardNotOwned
	}

	return card, nil
}

// mapError passes known sentinel errors through untouched and wraps
// everything else in a ServiceError for the given operation.
func (s *reviewServiceImpl) mapError(
	log *slog.Logger,
	operation string,
	userID, cardID uuid.UUID,
	err error,
) error {
	if errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrCardNotOwned) ||
		errors.Is(err, ErrInvalidIntervals) {
		return err
	}

	log.Error("review operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))

	return newServiceError(operation, "transaction failed", err)
}
