package repository

import (
	"context"
	"errors"

	"chatroom/internal/models"
	"chatroom/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines interface for post operations
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByChannel(ctx context.Context, channelID uint, limit, offset int) ([]models.Post, error)
	// ListByIDs returns the posts for ids, preserving the order of ids.
	// Missing posts are skipped.
	ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	UpdateVoteCounts(ctx context.Context, id uint, counts models.VoteCounts) error
}

type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, metrics: observability.NewDatabaseMetrics()}
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer r.metrics.TrackQuery("get", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, models.NewTransportError("get post", err)
	}
	return &post, nil
}

func (r *postRepository) ListByChannel(ctx context.Context, channelID uint, limit, offset int) ([]models.Post, error) {
	defer r.metrics.TrackQuery("list", "posts")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("channel_id = ?", channelID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewTransportError("list posts", err)
	}
	return posts, nil
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	defer r.metrics.TrackQuery("list_by_ids", "posts")()

	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewTransportError("list posts by ids", err)
	}

	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	out := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *postRepository) UpdateVoteCounts(ctx context.Context, id uint, counts models.VoteCounts) error {
	defer r.metrics.TrackQuery("update_votes", "posts")()

	counts = counts.Clamped()
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"upvote_count":   counts.Upvotes,
			"downvote_count": counts.Downvotes,
		})
	if res.Error != nil {
		return models.NewTransportError("update post votes", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}
