// Package thread manages the reply tree of a single post: a flat id-indexed
// collection plus derived parent/children, expansion, and visibility state.
//
// A Store is owned by whatever is currently displaying one post's thread.
// It is not a process-wide singleton and is not safe for concurrent use; all
// mutations happen on one logical thread of control, and every public
// operation leaves the store in a fully consistent state before returning.
package thread

import (
	"context"
	"strings"
	"time"

	"chatroom/internal/models"
	"chatroom/internal/observability"
	"chatroom/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultMaxDepth is the deepest nesting level replies may reach.
	DefaultMaxDepth = 10
	// DefaultPerformanceThreshold is the reply count at which performance
	// mode auto-enables.
	DefaultPerformanceThreshold = 100
	// DefaultChildCap bounds materialized children per expanded node under
	// performance mode.
	DefaultChildCap = 50

	maxContentLen = 10000
)

// ChildOrder selects how direct children are ordered.
type ChildOrder string

const (
	// OrderCreated orders children by creation time, oldest first.
	OrderCreated ChildOrder = "created_at"
	// OrderScore orders children by net votes, highest first.
	OrderScore ChildOrder = "score"
)

// Config carries the tunable limits of a Store.
type Config struct {
	MaxDepth             int
	PerformanceThreshold int
	ChildCap             int
	ChildOrder           ChildOrder
}

// DefaultConfig returns the stock limits.
func DefaultConfig() Config {
	return Config{
		MaxDepth:             DefaultMaxDepth,
		PerformanceThreshold: DefaultPerformanceThreshold,
		ChildCap:             DefaultChildCap,
		ChildOrder:           OrderCreated,
	}
}

// Store holds the reply state for one post.
type Store struct {
	repo repository.ReplyRepository
	log  *observability.StoreLogger

	postID   uint
	replies  map[uint]*models.Reply
	children map[uint][]uint // parent id -> child ids, creation order
	roots    []uint
	expanded map[uint]struct{}

	visible []uint
	hidden  map[uint]int // per-node children hidden by the performance cap

	maxDepth   int
	childOrder ChildOrder

	perfThreshold int
	childCap      int
	perfMode      bool
	perfAuto      bool

	lastErr error
}

// NewStore creates an empty Store backed by repo. Zero or negative limits in
// cfg fall back to the defaults.
func NewStore(repo repository.ReplyRepository, cfg Config) *Store {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.PerformanceThreshold <= 0 {
		cfg.PerformanceThreshold = DefaultPerformanceThreshold
	}
	if cfg.ChildCap <= 0 {
		cfg.ChildCap = DefaultChildCap
	}
	if cfg.ChildOrder != OrderScore {
		cfg.ChildOrder = OrderCreated
	}
	return &Store{
		repo:          repo,
		log:           observability.NewStoreLogger(),
		replies:       make(map[uint]*models.Reply),
		children:      make(map[uint][]uint),
		expanded:      make(map[uint]struct{}),
		hidden:        make(map[uint]int),
		maxDepth:      cfg.MaxDepth,
		childOrder:    cfg.ChildOrder,
		perfThreshold: cfg.PerformanceThreshold,
		childCap:      cfg.ChildCap,
		perfAuto:      true,
	}
}

// PostID returns the post whose thread the store currently holds.
func (s *Store) PostID() uint {
	return s.postID
}

// Count returns the number of replies currently loaded, tombstones included.
func (s *Store) Count() int {
	return len(s.replies)
}

// Err returns the store-level error left by the last failed remote
// operation. It is cleared by the next successful one. The store never
// retries on its own; callers decide whether to.
func (s *Store) Err() error {
	return s.lastErr
}

// Load replaces the entire reply collection with the given post's thread and
// resets expansion state. On failure the previous state is kept.
func (s *Store) Load(ctx context.Context, postID uint, threaded bool) error {
	ctx, span := observability.StartSpan(ctx, "thread.Load",
		attribute.Int64("post_id", int64(postID)))
	defer span.End()

	replies, err := s.repo.FetchReplies(ctx, postID, threaded)
	observability.RecordStoreOp("load", err)
	s.log.LogOp(ctx, "load", postID, err, map[string]interface{}{"threaded": threaded})
	if err != nil {
		s.lastErr = err
		return err
	}

	s.lastErr = nil
	s.postID = postID
	s.replies = make(map[uint]*models.Reply, len(replies))
	s.children = make(map[uint][]uint)
	s.roots = s.roots[:0]
	s.expanded = make(map[uint]struct{})

	for _, reply := range replies {
		s.replies[reply.ID] = reply
	}
	for _, reply := range replies {
		s.index(reply)
	}
	s.refreshPerformanceMode()
	s.recomputeVisible()
	return nil
}

// index attaches a reply to the children index. A reply whose parent is not
// loaded is treated as a root so it is never silently dropped.
func (s *Store) index(reply *models.Reply) {
	if reply.ParentID != nil {
		if _, ok := s.replies[*reply.ParentID]; ok {
			s.children[*reply.ParentID] = append(s.children[*reply.ParentID], reply.ID)
			return
		}
	}
	s.roots = append(s.roots, reply.ID)
}

// Create validates locally, persists the reply remotely, and applies the
// confirmed result. No placeholder is inserted while the call is in flight,
// and a failed call mutates nothing.
func (s *Store) Create(ctx context.Context, userID uint, content string, parentID *uint) (*models.Reply, error) {
	ctx, span := observability.StartSpan(ctx, "thread.Create",
		attribute.Int64("post_id", int64(s.postID)))
	defer span.End()

	content, err := validateContent(content)
	if err == nil && parentID != nil {
		parent, ok := s.replies[*parentID]
		switch {
		case !ok, parent.Tombstoned():
			err = models.NewParentNotFoundError(*parentID)
		case !parent.CanReplyTo(s.maxDepth):
			err = models.NewDepthExceededError(*parentID)
		}
	}
	if err != nil {
		observability.RecordStoreOp("create", err)
		s.log.LogOp(ctx, "create", s.postID, err, nil)
		return nil, err
	}

	reply, err := s.repo.CreateReply(ctx, s.postID, userID, content, parentID)
	observability.RecordStoreOp("create", err)
	s.log.LogOp(ctx, "create", s.postID, err, nil)
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.lastErr = nil

	// The store may have been reloaded for another post while the call was
	// in flight; a confirmation for a different post is stale.
	if reply.PostID != s.postID {
		return reply, nil
	}
	if parentID != nil {
		if parent, ok := s.replies[*parentID]; ok {
			reply.Depth = parent.Depth + 1
		}
	}
	s.replies[reply.ID] = reply
	s.index(reply)
	s.refreshPerformanceMode()
	s.recomputeVisible()
	return reply, nil
}

// Update edits a reply's content. The edited flag and updated_at follow the
// confirmed remote result; an unknown id fails before any remote call.
func (s *Store) Update(ctx context.Context, id uint, content string) (*models.Reply, error) {
	ctx, span := observability.StartSpan(ctx, "thread.Update",
		attribute.Int64("reply_id", int64(id)))
	defer span.End()

	var err error
	if _, ok := s.replies[id]; !ok {
		err = models.NewNotFoundError("reply", id)
	} else {
		content, err = validateContent(content)
	}
	if err != nil {
		observability.RecordStoreOp("update", err)
		s.log.LogOp(ctx, "update", s.postID, err, map[string]interface{}{"reply_id": id})
		return nil, err
	}

	updated, err := s.repo.UpdateReply(ctx, id, content)
	observability.RecordStoreOp("update", err)
	s.log.LogOp(ctx, "update", s.postID, err, map[string]interface{}{"reply_id": id})
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.lastErr = nil

	// Check existence before applying: the reply may have been removed by a
	// reload while the call was in flight.
	if reply, ok := s.replies[id]; ok {
		reply.Content = updated.Content
		reply.Edited = true
		reply.UpdatedAt = updated.UpdatedAt
		updated = reply
	}
	s.recomputeVisible()
	return updated, nil
}

// Delete tombstones a reply: the remote row is soft-deleted, the local node
// keeps its place in the tree with its content replaced by a deletion
// marker. Replies nested beneath it are untouched.
func (s *Store) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.StartSpan(ctx, "thread.Delete",
		attribute.Int64("reply_id", int64(id)))
	defer span.End()

	if _, ok := s.replies[id]; !ok {
		err := models.NewNotFoundError("reply", id)
		observability.RecordStoreOp("delete", err)
		s.log.LogOp(ctx, "delete", s.postID, err, map[string]interface{}{"reply_id": id})
		return err
	}

	err := s.repo.DeleteReply(ctx, id)
	observability.RecordStoreOp("delete", err)
	s.log.LogOp(ctx, "delete", s.postID, err, map[string]interface{}{"reply_id": id})
	if err != nil {
		s.lastErr = err
		return err
	}
	s.lastErr = nil

	if reply, ok := s.replies[id]; ok {
		reply.Content = models.DeletedReplyContent
		reply.DeletedAt.Time = time.Now()
		reply.DeletedAt.Valid = true
	}
	s.recomputeVisible()
	return nil
}

// ApplyVoteCounts refreshes a reply's vote tallies from the vote subsystem.
// A refresh for a reply no longer present is dropped.
func (s *Store) ApplyVoteCounts(id uint, counts models.VoteCounts) {
	reply, ok := s.replies[id]
	if !ok {
		return
	}
	counts = counts.Clamped()
	reply.UpvoteCount = counts.Upvotes
	reply.DownvoteCount = counts.Downvotes
	s.recomputeVisible()
}

// Reply returns the reply with the given id, if loaded.
func (s *Store) Reply(id uint) (*models.Reply, bool) {
	reply, ok := s.replies[id]
	return reply, ok
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("reply content cannot be empty")
	}
	if len(content) > maxContentLen {
		return "", models.NewValidationError("reply content cannot exceed 10000 characters")
	}
	return content, nil
}
