package ranking

import (
	"sort"
	"time"

	"chatroom/internal/models"
)

// Mode selects how a post collection is ordered.
type Mode string

const (
	ModeNew Mode = "new"
	ModeHot Mode = "hot"
	ModeTop Mode = "top"
)

// Window restricts "top" ranking to posts created within a fixed span.
type Window string

const (
	WindowHour  Window = "hour"
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

// windowSpans are the fixed thresholds per window. A month is 30 days, a
// year 365, matching the client contract rather than the calendar.
var windowSpans = map[Window]time.Duration{
	WindowHour:  time.Hour,
	WindowDay:   24 * time.Hour,
	WindowWeek:  7 * 24 * time.Hour,
	WindowMonth: 30 * 24 * time.Hour,
	WindowYear:  365 * 24 * time.Hour,
}

// Valid reports whether m is a recognized sort mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeNew, ModeHot, ModeTop:
		return true
	}
	return false
}

// Valid reports whether w is a recognized time window.
func (w Window) Valid() bool {
	if w == WindowAll {
		return true
	}
	_, ok := windowSpans[w]
	return ok
}

// FilterByTimeWindow retains posts no older than the window span. "all" and
// unrecognized windows are the identity. The returned slice is always fresh;
// the input is never mutated.
func FilterByTimeWindow(posts []models.Post, window Window) []models.Post {
	span, ok := windowSpans[window]
	if !ok {
		out := make([]models.Post, len(posts))
		copy(out, posts)
		return out
	}

	cutoff := time.Now().Add(-span)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// SortPosts returns a newly ordered copy of posts for the given mode. The
// input slice and its elements are never mutated. An unrecognized mode
// returns the input unchanged.
func SortPosts(posts []models.Post, mode Mode, window Window) []models.Post {
	switch mode {
	case ModeNew:
		out := make([]models.Post, len(posts))
		copy(out, posts)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return out

	case ModeHot:
		now := time.Now()
		out := make([]models.Post, len(posts))
		copy(out, posts)
		sort.SliceStable(out, func(i, j int) bool {
			return HotScore(out[i].NetVotes(), out[i].CreatedAt, now) >
				HotScore(out[j].NetVotes(), out[j].CreatedAt, now)
		})
		return out

	case ModeTop:
		out := FilterByTimeWindow(posts, window)
		sort.SliceStable(out, func(i, j int) bool {
			a, b := &out[i], &out[j]
			if a.NetVotes() != b.NetVotes() {
				return a.NetVotes() > b.NetVotes()
			}
			wa := WilsonScore(a.UpvoteCount, a.TotalVotes())
			wb := WilsonScore(b.UpvoteCount, b.TotalVotes())
			if wa != wb {
				return wa > wb
			}
			return a.TotalVotes() > b.TotalVotes()
		})
		return out

	default:
		return posts
	}
}

// TrendingPosts orders a copy of posts by the trending composite, highest
// first. Used for the auxiliary trending view.
func TrendingPosts(posts []models.Post) []models.Post {
	now := time.Now()
	out := make([]models.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return TrendingScore(out[i].UpvoteCount, out[i].DownvoteCount, out[i].CreatedAt, now) >
			TrendingScore(out[j].UpvoteCount, out[j].DownvoteCount, out[j].CreatedAt, now)
	})
	return out
}

// RisingPosts orders posts created within the last day by vote velocity,
// highest first. Older posts are dropped from the result.
func RisingPosts(posts []models.Post) []models.Post {
	now := time.Now()
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if RisingScore(p.UpvoteCount, p.DownvoteCount, p.CreatedAt, now) > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return RisingScore(out[i].UpvoteCount, out[i].DownvoteCount, out[i].CreatedAt, now) >
			RisingScore(out[j].UpvoteCount, out[j].DownvoteCount, out[j].CreatedAt, now)
	})
	return out
}
