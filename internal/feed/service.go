package feed

import (
	"context"
	"time"

	"chatroom/internal/cache"
	"chatroom/internal/models"
	"chatroom/internal/repository"
)

const channelPageSize = 200

// Service produces ranked channel feeds, consulting the Redis cache before
// re-sorting. The cache stores ordered post ids per (channel, mode, window);
// post bodies are always re-read so vote counts stay fresh.
type Service struct {
	posts    repository.PostRepository
	orch     *Orchestrator
	cacheTTL time.Duration
}

// NewService creates a feed Service.
func NewService(posts repository.PostRepository, orch *Orchestrator, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = cache.FeedTTL
	}
	return &Service{posts: posts, orch: orch, cacheTTL: cacheTTL}
}

// Orchestrator exposes the underlying mode/window selection.
func (s *Service) Orchestrator() *Orchestrator {
	return s.orch
}

// ChannelFeed returns the channel's posts ordered by the current selection.
func (s *Service) ChannelFeed(ctx context.Context, channelID uint) ([]models.Post, error) {
	if ids, ok := cache.GetFeed(ctx, channelID, s.orch.Mode(), s.orch.Window()); ok {
		posts, err := s.posts.ListByIDs(ctx, ids)
		if err == nil && len(posts) == len(ids) {
			return posts, nil
		}
		// Stale or partial cache entry: fall through to a full re-sort.
	}

	posts, err := s.posts.ListByChannel(ctx, channelID, channelPageSize, 0)
	if err != nil {
		return nil, err
	}
	ordered := s.orch.Sort(posts)

	ids := make([]uint, len(ordered))
	for i, p := range ordered {
		ids[i] = p.ID
	}
	cache.SetFeed(ctx, channelID, s.orch.Mode(), s.orch.Window(), ids, s.cacheTTL)
	return ordered, nil
}

// RefreshVotes applies a vote-subsystem update to a post and invalidates the
// channel's cached feeds, which depend on the counts.
func (s *Service) RefreshVotes(ctx context.Context, postID uint, counts models.VoteCounts) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.posts.UpdateVoteCounts(ctx, postID, counts); err != nil {
		return err
	}
	cache.InvalidateChannel(ctx, post.ChannelID)
	return nil
}
