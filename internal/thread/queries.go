package thread

import (
	"context"

	"chatroom/internal/models"
	"chatroom/internal/observability"
)

// AncestorsOf returns the chain of replies above id, nearest parent first.
func (s *Store) AncestorsOf(id uint) []*models.Reply {
	var out []*models.Reply
	reply, ok := s.replies[id]
	if !ok {
		return out
	}
	for reply.ParentID != nil {
		parent, ok := s.replies[*reply.ParentID]
		if !ok {
			break
		}
		out = append(out, parent)
		reply = parent
	}
	return out
}

// DescendantsOf returns every reply beneath id, depth-first in child order.
func (s *Store) DescendantsOf(id uint) []*models.Reply {
	var out []*models.Reply
	var walk func(ids []uint)
	walk = func(ids []uint) {
		for _, child := range ids {
			if reply, ok := s.replies[child]; ok {
				out = append(out, reply)
			}
			walk(s.orderedIDs(s.children[child]))
		}
	}
	walk(s.orderedIDs(s.children[id]))
	return out
}

// SiblingsOf returns the replies sharing id's parent, id itself excluded.
func (s *Store) SiblingsOf(id uint) []*models.Reply {
	reply, ok := s.replies[id]
	if !ok {
		return nil
	}
	pool := s.roots
	if reply.ParentID != nil {
		pool = s.children[*reply.ParentID]
	}
	out := make([]*models.Reply, 0, len(pool))
	for _, sibling := range s.orderedIDs(pool) {
		if sibling == id {
			continue
		}
		if r, ok := s.replies[sibling]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ThreadRootOf returns the top-level reply of the thread containing id.
func (s *Store) ThreadRootOf(id uint) (*models.Reply, bool) {
	reply, ok := s.replies[id]
	if !ok {
		return nil, false
	}
	for reply.ParentID != nil {
		parent, ok := s.replies[*reply.ParentID]
		if !ok {
			break
		}
		reply = parent
	}
	return reply, true
}

// Search finds replies on the loaded post whose content contains term. The
// lookup goes through the persistence collaborator, so tombstoned replies
// never match.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]*models.Reply, error) {
	ctx, span := observability.StartSpan(ctx, "thread.Search")
	defer span.End()

	replies, err := s.repo.SearchReplies(ctx, s.postID, term, limit)
	observability.RecordStoreOp("search", err)
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.lastErr = nil
	return replies, nil
}
