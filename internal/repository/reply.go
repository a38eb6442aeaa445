// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"chatroom/internal/models"
	"chatroom/internal/observability"

	"gorm.io/gorm"
)

// ReplyRepository is the persistence collaborator for a post's replies. Every
// transport failure is wrapped as a models.CodeTransport error; unknown ids
// surface as models.CodeNotFound.
type ReplyRepository interface {
	// FetchReplies returns all live replies for the post. With threaded set,
	// the result is ordered depth-first by thread hierarchy; otherwise by
	// creation time.
	FetchReplies(ctx context.Context, postID uint, threaded bool) ([]*models.Reply, error)
	CreateReply(ctx context.Context, postID uint, userID uint, content string, parentID *uint) (*models.Reply, error)
	UpdateReply(ctx context.Context, id uint, content string) (*models.Reply, error)
	DeleteReply(ctx context.Context, id uint) error
	SearchReplies(ctx context.Context, postID uint, term string, limit int) ([]*models.Reply, error)
	RecentReplies(ctx context.Context, limit int) ([]*models.Reply, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	BulkDeleteReplies(ctx context.Context, ids []uint) (int64, error)
}

type replyRepository struct {
	db       *gorm.DB
	maxDepth int
	metrics  *observability.DatabaseMetrics
}

// NewReplyRepository creates a new ReplyRepository. maxDepth bounds the depth
// assigned to newly created replies.
func NewReplyRepository(db *gorm.DB, maxDepth int) ReplyRepository {
	return &replyRepository{
		db:       db,
		maxDepth: maxDepth,
		metrics:  observability.NewDatabaseMetrics(),
	}
}

func (r *replyRepository) FetchReplies(ctx context.Context, postID uint, threaded bool) ([]*models.Reply, error) {
	defer r.metrics.TrackQuery("fetch", "replies")()

	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&replies).Error
	if err != nil {
		return nil, models.NewTransportError("fetch replies", err)
	}
	if threaded {
		return threadOrder(replies), nil
	}
	return replies, nil
}

// threadOrder arranges replies depth-first: each root followed by its
// descendants, siblings in creation order. Replies whose parent is missing
// (for example beneath a hard-deleted ancestor) are treated as roots so they
// are never silently dropped.
func threadOrder(replies []*models.Reply) []*models.Reply {
	known := make(map[uint]bool, len(replies))
	for _, reply := range replies {
		known[reply.ID] = true
	}

	children := make(map[uint][]*models.Reply)
	var roots []*models.Reply
	for _, reply := range replies {
		if reply.ParentID == nil || !known[*reply.ParentID] {
			roots = append(roots, reply)
			continue
		}
		children[*reply.ParentID] = append(children[*reply.ParentID], reply)
	}

	out := make([]*models.Reply, 0, len(replies))
	var walk func(nodes []*models.Reply)
	walk = func(nodes []*models.Reply) {
		for _, node := range nodes {
			out = append(out, node)
			walk(children[node.ID])
		}
	}
	walk(roots)
	return out
}

func (r *replyRepository) CreateReply(ctx context.Context, postID uint, userID uint, content string, parentID *uint) (*models.Reply, error) {
	defer r.metrics.TrackQuery("create", "replies")()

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", postID)
		}
		return nil, models.NewTransportError("create reply", err)
	}

	depth := 0
	if parentID != nil {
		var parent models.Reply
		err := r.db.WithContext(ctx).
			Where("id = ? AND post_id = ?", *parentID, postID).
			First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewParentNotFoundError(*parentID)
			}
			return nil, models.NewTransportError("create reply", err)
		}
		if !parent.CanReplyTo(r.maxDepth) {
			return nil, models.NewDepthExceededError(*parentID)
		}
		depth = parent.Depth + 1
	}

	reply := &models.Reply{
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
		Depth:    depth,
	}
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return nil, models.NewTransportError("create reply", err)
	}
	return reply, nil
}

func (r *replyRepository) UpdateReply(ctx context.Context, id uint, content string) (*models.Reply, error) {
	defer r.metrics.TrackQuery("update", "replies")()

	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("reply", id)
		}
		return nil, models.NewTransportError("update reply", err)
	}

	reply.Content = content
	reply.Edited = true
	if err := r.db.WithContext(ctx).Save(&reply).Error; err != nil {
		return nil, models.NewTransportError("update reply", err)
	}
	return &reply, nil
}

func (r *replyRepository) DeleteReply(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete", "replies")()

	res := r.db.WithContext(ctx).Delete(&models.Reply{}, id)
	if res.Error != nil {
		return models.NewTransportError("delete reply", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("reply", id)
	}
	return nil
}

func (r *replyRepository) SearchReplies(ctx context.Context, postID uint, term string, limit int) ([]*models.Reply, error) {
	defer r.metrics.TrackQuery("search", "replies")()

	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND content LIKE ?", postID, "%"+strings.TrimSpace(term)+"%").
		Order("created_at asc").
		Limit(limit).
		Find(&replies).Error
	if err != nil {
		return nil, models.NewTransportError("search replies", err)
	}
	return replies, nil
}

func (r *replyRepository) RecentReplies(ctx context.Context, limit int) ([]*models.Reply, error) {
	defer r.metrics.TrackQuery("recent", "replies")()

	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&replies).Error
	if err != nil {
		return nil, models.NewTransportError("recent replies", err)
	}
	return replies, nil
}

func (r *replyRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	defer r.metrics.TrackQuery("count", "replies")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewTransportError("count replies", err)
	}
	return count, nil
}

func (r *replyRepository) BulkDeleteReplies(ctx context.Context, ids []uint) (int64, error) {
	defer r.metrics.TrackQuery("bulk_delete", "replies")()

	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Reply{}, ids)
	if res.Error != nil {
		return 0, models.NewTransportError("bulk delete replies", res.Error)
	}
	return res.RowsAffected, nil
}
