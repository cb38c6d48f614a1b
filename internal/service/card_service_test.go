package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/store"
)

// fakeCardStore is a hand-rolled CardStore for unit tests.
type fakeCardStore struct {
	cards     map[uuid.UUID]*domain.Card
	createErr error
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (f *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeCardStore) Update(ctx context.Context, card *domain.Card) error {
	if _, ok := f.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeCardStore) ListDueByUser(
	ctx context.Context,
	userID uuid.UUID,
	cutoff time.Time,
) ([]*domain.Card, error) {
	var due []*domain.Card
	for _, card := range f.cards {
		if card.UserID == userID && !card.NextReview.After(cutoff) {
			due = append(due, card)
		}
	}
	return due, nil
}

func (f *fakeCardStore) WithTx(tx *sql.Tx) store.CardStore { return f }

func TestCardServiceCreateCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates a due card at step zero", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		svc := NewCardService(cardStore, nil)

		card, err := svc.CreateCard(context.Background(), userID, nil, "ubiquitous", "present everywhere")

		require.NoError(t, err)
		assert.Equal(t, 0, card.ReviewStep)
		assert.Equal(t, domain.ReviewStatusActive, card.ReviewStatus)
		assert.Contains(t, cardStore.cards, card.ID)
	})

	t.Run("invalid card data maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()

		svc := NewCardService(newFakeCardStore(), nil)

		_, err := svc.CreateCard(context.Background(), userID, nil, "", "meaning")

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestCardServiceGetCard(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	seed := func(t *testing.T) (*fakeCardStore, *domain.Card) {
		t.Helper()
		cardStore := newFakeCardStore()
		card, err := domain.NewCard(owner, nil, "word", "meaning")
		require.NoError(t, err)
		require.NoError(t, cardStore.Create(context.Background(), card))
		return cardStore, card
	}

	t.Run("owner can read the card", func(t *testing.T) {
		t.Parallel()

		cardStore, card := seed(t)
		svc := NewCardService(cardStore, nil)

		got, err := svc.GetCard(context.Background(), owner, card.ID)

		require.NoError(t, err)
		assert.Equal(t, card.ID, got.ID)
	})

	t.Run("another user's card is not owned", func(t *testing.T) {
		t.Parallel()

		cardStore, card := seed(t)
		svc := NewCardService(cardStore, nil)

		_, err := svc.GetCard(context.Background(), stranger, card.ID)

		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing card is not found", func(t *testing.T) {
		t.Parallel()

		cardStore, _ := seed(t)
		svc := NewCardService(cardStore, nil)

		_, err := svc.GetCard(context.Background(), owner, uuid.New())

		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestCardServiceDeleteCard(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		card, err := domain.NewCard(owner, nil, "word", "meaning")
		require.NoError(t, err)
		require.NoError(t, cardStore.Create(context.Background(), card))

		svc := NewCardService(cardStore, nil)

		require.NoError(t, svc.DeleteCard(context.Background(), owner, card.ID))
		assert.NotContains(t, cardStore.cards, card.ID)
	})

	t.Run("stranger cannot delete and the card survives", func(t *testing.T) {
		t.Parallel()

		cardStore := newFakeCardStore()
		card, err := domain.NewCard(owner, nil, "word", "meaning")
		require.NoError(t, err)
		require.NoError(t, cardStore.Create(context.Background(), card))

		svc := NewCardService(cardStore, nil)

		err = svc.DeleteCard(context.Background(), stranger, card.ID)

		assert.ErrorIs(t, err, ErrNotOwned)
		assert.Contains(t, cardStore.cards, card.ID)
	})
}
