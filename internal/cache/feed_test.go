package cache

import (
	"context"
	"testing"
	"time"

	"chatroom/internal/ranking"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	prev := GetClient()
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(prev)
		_ = rdb.Close()
	})
	return mr
}

func TestFeedKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "feed:3:hot:day", FeedKey(3, ranking.ModeHot, ranking.WindowDay))
	assert.Equal(t, "feed:10:top:all", FeedKey(10, ranking.ModeTop, ranking.WindowAll))
}

func TestFeedRoundTrip(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	_, ok := GetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay)
	assert.False(t, ok)

	SetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay, []uint{5, 1, 9}, time.Minute)

	ids, ok := GetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay)
	require.True(t, ok)
	assert.Equal(t, []uint{5, 1, 9}, ids)

	// Entries expire on their own.
	mr.FastForward(2 * time.Minute)
	_, ok = GetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay)
	assert.False(t, ok)
}

func TestGetFeed_CorruptEntryIsAMiss(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(FeedKey(3, ranking.ModeHot, ranking.WindowDay), "not json"))

	_, ok := GetFeed(context.Background(), 3, ranking.ModeHot, ranking.WindowDay)
	assert.False(t, ok)
}

func TestInvalidateChannel(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	SetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay, []uint{1}, time.Minute)
	SetFeed(ctx, 3, ranking.ModeTop, ranking.WindowWeek, []uint{2}, time.Minute)
	SetFeed(ctx, 4, ranking.ModeHot, ranking.WindowDay, []uint{3}, time.Minute)

	InvalidateChannel(ctx, 3)

	_, ok := GetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay)
	assert.False(t, ok)
	_, ok = GetFeed(ctx, 3, ranking.ModeTop, ranking.WindowWeek)
	assert.False(t, ok)
	_, ok = GetFeed(ctx, 4, ranking.ModeHot, ranking.WindowDay)
	assert.True(t, ok, "other channels keep their cached feeds")
}

func TestFeedIsBestEffortWithoutRedis(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	ctx := context.Background()
	SetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay, []uint{1}, time.Minute)
	_, ok := GetFeed(ctx, 3, ranking.ModeHot, ranking.WindowDay)
	assert.False(t, ok)
	InvalidateChannel(ctx, 3)
}
