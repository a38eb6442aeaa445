package thread

import (
	"sort"

	"chatroom/internal/models"
	"chatroom/internal/observability"
)

// IsExpanded reports whether the reply's children are currently shown.
func (s *Store) IsExpanded(id uint) bool {
	_, ok := s.expanded[id]
	return ok
}

// Expand marks a reply as expanded. Expanding a node does not resurrect the
// expansion state of its descendants; each needs its own Expand call.
func (s *Store) Expand(id uint) {
	if _, ok := s.replies[id]; !ok {
		return
	}
	s.expanded[id] = struct{}{}
	s.recomputeVisible()
}

// Collapse removes the reply and every one of its descendants from the
// expansion set, so a later Expand on it shows only its direct children.
func (s *Store) Collapse(id uint) {
	delete(s.expanded, id)
	s.walkSubtree(id, func(descendant uint) {
		delete(s.expanded, descendant)
	})
	s.recomputeVisible()
}

// ToggleExpansion flips a reply's expansion state.
func (s *Store) ToggleExpansion(id uint) {
	if s.IsExpanded(id) {
		s.Collapse(id)
		return
	}
	s.Expand(id)
}

// ExpandAll expands every reply that has children and sits above the maximum
// depth.
func (s *Store) ExpandAll() {
	for id, kids := range s.children {
		reply, ok := s.replies[id]
		if !ok || len(kids) == 0 {
			continue
		}
		if reply.Depth < s.maxDepth {
			s.expanded[id] = struct{}{}
		}
	}
	s.recomputeVisible()
}

// CollapseAll empties the expansion set entirely.
func (s *Store) CollapseAll() {
	s.expanded = make(map[uint]struct{})
	s.recomputeVisible()
}

// Roots returns the top-level replies in the configured child order.
func (s *Store) Roots() []*models.Reply {
	return s.resolve(s.orderedIDs(s.roots))
}

// ChildrenOf returns the direct children of a reply in the configured child
// order (creation time ascending by default).
func (s *Store) ChildrenOf(id uint) []*models.Reply {
	return s.resolve(s.orderedIDs(s.children[id]))
}

// VisibleSet returns the ids of replies that should currently be rendered:
// every ancestor expanded, depth within the limit, performance cap applied.
// Roots are always visible. The slice is a copy in render (depth-first)
// order.
func (s *Store) VisibleSet() []uint {
	out := make([]uint, len(s.visible))
	copy(out, s.visible)
	return out
}

// HiddenCount returns how many of a reply's children the performance cap hid
// in the last visible-set computation.
func (s *Store) HiddenCount(id uint) int {
	return s.hidden[id]
}

// PerformanceMode reports whether the child cap is currently in effect.
func (s *Store) PerformanceMode() bool {
	return s.perfMode
}

// SetPerformanceMode forces performance mode on or off, disabling the
// automatic threshold, and recomputes the visible set.
func (s *Store) SetPerformanceMode(enabled bool) {
	s.perfAuto = false
	s.perfMode = enabled
	s.recomputeVisible()
}

// SetMaxThreadDepth reconfigures the depth limit and recomputes the visible
// set.
func (s *Store) SetMaxThreadDepth(depth int) {
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	s.maxDepth = depth
	s.recomputeVisible()
}

// MaxThreadDepth returns the configured depth limit.
func (s *Store) MaxThreadDepth() int {
	return s.maxDepth
}

// refreshPerformanceMode applies the automatic threshold unless the caller
// forced a mode explicitly.
func (s *Store) refreshPerformanceMode() {
	if s.perfAuto {
		s.perfMode = len(s.replies) > s.perfThreshold
	}
}

// recomputeVisible rebuilds the visible set by walking from the roots. It
// descends only into expanded nodes, so its cost scales with the number of
// visible replies rather than the thread size.
func (s *Store) recomputeVisible() {
	defer observability.TrackRecompute()()

	s.visible = s.visible[:0]
	s.hidden = make(map[uint]int)

	var walk func(ids []uint)
	walk = func(ids []uint) {
		for _, id := range ids {
			reply, ok := s.replies[id]
			if !ok {
				continue
			}
			s.visible = append(s.visible, id)
			if !s.IsExpanded(id) || reply.Depth >= s.maxDepth {
				continue
			}
			kids := s.orderedIDs(s.children[id])
			if s.perfMode && len(kids) > s.childCap {
				s.hidden[id] = len(kids) - s.childCap
				kids = kids[:s.childCap]
			}
			walk(kids)
		}
	}
	walk(s.orderedIDs(s.roots))
}

// orderedIDs returns a copy of ids in the configured child order.
func (s *Store) orderedIDs(ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	if s.childOrder == OrderScore {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := s.replies[out[i]], s.replies[out[j]]
			if a == nil || b == nil {
				return a != nil
			}
			return a.NetVotes() > b.NetVotes()
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := s.replies[out[i]], s.replies[out[j]]
		if a == nil || b == nil {
			return a != nil
		}
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

func (s *Store) resolve(ids []uint) []*models.Reply {
	out := make([]*models.Reply, 0, len(ids))
	for _, id := range ids {
		if reply, ok := s.replies[id]; ok {
			out = append(out, reply)
		}
	}
	return out
}

// walkSubtree visits every descendant id of root, depth-first.
func (s *Store) walkSubtree(root uint, visit func(id uint)) {
	for _, child := range s.children[root] {
		visit(child)
		s.walkSubtree(child, visit)
	}
}
