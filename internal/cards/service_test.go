package cards

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

type memoryCardRepo struct {
	cards map[string]*Card
}

func newMemoryCardRepo() *memoryCardRepo {
	return &memoryCardRepo{cards: make(map[string]*Card)}
}

func (r *memoryCardRepo) CreateCard(ctx context.Context, c *Card) error {
	if _, ok := r.cards[c.CardNumber]; ok {
		return shared.ErrDuplicate
	}
	c.CreatedAt = time.Now().UTC()
	stored := *c
	r.cards[c.CardNumber] = &stored
	return nil
}

func (r *memoryCardRepo) ListCards(ctx context.Context) ([]Card, error) {
	var out []Card
	for _, c := range r.cards {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryCardRepo) FindByNumber(ctx context.Context, cardNumber string) (*Card, error) {
	c, ok := r.cards[cardNumber]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func TestCreateCardDefaultsAndValidation(t *testing.T) {
	svc := NewService(newMemoryCardRepo(), nil)
	ctx := context.Background()

	card, err := svc.Create(ctx, CreateInput{CardNumber: "1234", HolderName: "Ada"})
	require.NoError(t, err)
	require.True(t, card.Balance.IsZero())

	_, err = svc.Create(ctx, CreateInput{CardNumber: "1234", HolderName: "Ada"})
	require.ErrorIs(t, err, shared.ErrDuplicate)

	_, err = svc.Create(ctx, CreateInput{
		CardNumber:     "5678",
		HolderName:     "Grace",
		InitialBalance: decimal.NewFromInt(-5),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestFindByNumberMissing(t *testing.T) {
	svc := NewService(newMemoryCardRepo(), nil)

	_, err := svc.FindByNumber(context.Background(), "0000")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListServesSnapshotFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute, nil)

	repo := newMemoryCardRepo()
	svc := NewService(repo, cache)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{CardNumber: "1234", HolderName: "Ada", InitialBalance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the service is invisible until the snapshot expires.
	repo.cards["9999"] = &Card{CardNumber: "9999", HolderName: "Ghost"}
	second, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)

	cache.Invalidate(ctx)
	third, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, third, 2)
}

func TestCreateInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute, nil)

	svc := NewService(newMemoryCardRepo(), cache)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{CardNumber: "1234", HolderName: "Ada"})
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = svc.Create(ctx, CreateInput{CardNumber: "5678", HolderName: "Grace"})
	require.NoError(t, err)

	listed, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}
