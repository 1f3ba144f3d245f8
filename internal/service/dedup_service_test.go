package service

import (
	"context"
	"errors"
	"testing"
	"time"

	redisStore "payment-journey-tracker/internal/adapter/storage/redis"
	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupDedup(t *testing.T) (*mocks.MockEventRepository, *dedupService) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := redisStore.NewDedupStore(client, time.Hour)

	ctrl := gomock.NewController(t)
	eventRepo := mocks.NewMockEventRepository(ctrl)

	svc := NewDedupService(store, eventRepo, zerolog.Nop()).(*dedupService)
	return eventRepo, svc
}

func TestDedupService_FirstArrival(t *testing.T) {
	eventRepo, svc := setupDedup(t)
	ctx := context.Background()

	eventRepo.EXPECT().GetByEventID(ctx, "evt-1").Return(nil, nil)

	dup, count, err := svc.IsDuplicate(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 0, count)
}

func TestDedupService_RepeatArrivalsCountUp(t *testing.T) {
	eventRepo, svc := setupDedup(t)
	ctx := context.Background()

	// Only the first sighting consults the durable store.
	eventRepo.EXPECT().GetByEventID(ctx, "evt-2").Return(nil, nil)

	dup, count, err := svc.IsDuplicate(ctx, "evt-2")
	require.NoError(t, err)
	require.False(t, dup)
	require.Equal(t, 0, count)

	dup, count, err = svc.IsDuplicate(ctx, "evt-2")
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 1, count)

	dup, count, err = svc.IsDuplicate(ctx, "evt-2")
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 2, count)
}

func TestDedupService_DurableFallbackAfterCacheLoss(t *testing.T) {
	eventRepo, svc := setupDedup(t)
	ctx := context.Background()

	// Fast tier is empty (fresh miniredis) but the event exists durably with
	// one prior duplicate: this arrival is duplicate number two.
	eventRepo.EXPECT().GetByEventID(ctx, "evt-3").Return(&domain.WebhookEvent{
		EventID:        "evt-3",
		DuplicateCount: 1,
	}, nil)

	dup, count, err := svc.IsDuplicate(ctx, "evt-3")
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 2, count)

	// The fast tier was reseeded: the next arrival counts without touching
	// the durable store again.
	dup, count, err = svc.IsDuplicate(ctx, "evt-3")
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 3, count)
}

func TestDedupService_DurableLookupError(t *testing.T) {
	eventRepo, svc := setupDedup(t)
	ctx := context.Background()

	eventRepo.EXPECT().GetByEventID(ctx, "evt-4").Return(nil, errors.New("db down"))

	_, _, err := svc.IsDuplicate(ctx, "evt-4")
	assert.Error(t, err)

	// The failed check rolled its increment back, so the retry is a first
	// arrival again rather than a false duplicate.
	eventRepo.EXPECT().GetByEventID(ctx, "evt-4").Return(nil, nil)

	dup, count, err := svc.IsDuplicate(ctx, "evt-4")
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 0, count)
}

func TestDedupService_ForgetMakesNextArrivalFirst(t *testing.T) {
	eventRepo, svc := setupDedup(t)
	ctx := context.Background()

	eventRepo.EXPECT().GetByEventID(ctx, "evt-5").Return(nil, nil)

	dup, _, err := svc.IsDuplicate(ctx, "evt-5")
	require.NoError(t, err)
	require.False(t, dup)

	// The arrival was never persisted; discard its dedup state.
	require.NoError(t, svc.Forget(ctx, "evt-5"))

	eventRepo.EXPECT().GetByEventID(ctx, "evt-5").Return(nil, nil)

	dup, count, err := svc.IsDuplicate(ctx, "evt-5")
	require.NoError(t, err)
	assert.False(t, dup, "forgotten event counts as new")
	assert.Equal(t, 0, count)
}
