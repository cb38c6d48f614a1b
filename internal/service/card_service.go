package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// Common card service errors
var (
	// ErrCardNotFound indicates that the card does not exist or is not
	// visible to the caller.
	ErrCardNotFound = errors.New("card not found")
)

// CardService provides the plain card operations: creation, retrieval, and
// deletion. Scheduling mutations live in the review service.
type CardService interface {
	// CreateCard creates a new card for the user, due immediately at step 0.
	CreateCard(ctx context.Context, userID uuid.UUID, wordListID *uuid.UUID, word, meaning string) (*domain.Card, error)

	// GetCard retrieves one of the caller's cards.
	// Returns ErrCardNotFound if the card does not exist and ErrNotOwned if
	// it belongs to another user.
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// DeleteCard removes one of the caller's cards along with its review
	// logs (via cascade). Same error contract as GetCard.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ CardService = (*cardServiceImpl)(nil)

type cardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService implementation.
func NewCardService(cardStore store.CardStore, logger *slog.Logger) CardService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_service")),
	}
}

// CreateCard implements CardService.CreateCard.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	wordListID *uuid.UUID,
	word, meaning string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(userID, wordListID, word, meaning)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return card, nil
}

// GetCard implements CardService.GetCard.
func (s *cardServiceImpl) GetCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if err := RequireOwner(card.UserID, userID); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Ownership first so deletion of another user's card reports not-owned
	// rather than succeeding or leaking existence.
	if _, err := s.GetCard(ctx, userID, cardID); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return ErrCardNotFound
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return err
	}

	return nil
}
