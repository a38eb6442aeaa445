package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatroom/internal/observability"
	"chatroom/internal/ranking"
)

const feedKeyPrefix = "feed:%d:%s:%s"

// FeedTTL is the default lifetime of a cached ranked feed.
const FeedTTL = time.Minute

// FeedKey builds the cache key for a channel's ranked feed.
func FeedKey(channelID uint, mode ranking.Mode, window ranking.Window) string {
	return fmt.Sprintf(feedKeyPrefix, channelID, mode, window)
}

// GetFeed returns the cached ordered post ids for the key, if present.
func GetFeed(ctx context.Context, channelID uint, mode ranking.Mode, window ranking.Window) ([]uint, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, FeedKey(channelID, mode, window)).Bytes()
	if err != nil {
		observability.FeedCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		observability.FeedCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.FeedCacheLookups.WithLabelValues("hit").Inc()
	return ids, true
}

// SetFeed stores the ordered post ids for the key.
func SetFeed(ctx context.Context, channelID uint, mode ranking.Mode, window ranking.Window, ids []uint, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if ttl <= 0 {
		ttl = FeedTTL
	}
	client.Set(ctx, FeedKey(channelID, mode, window), raw, ttl)
}

// InvalidateChannel drops every cached feed for the channel, for example
// after a vote refresh changes its ranking inputs.
func InvalidateChannel(ctx context.Context, channelID uint) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("feed:%d:*", channelID)
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
