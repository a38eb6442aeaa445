package ranking

import (
	"testing"
	"time"

	"chatroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(id uint, up, down int, age time.Duration) models.Post {
	return models.Post{
		ID:            id,
		UpvoteCount:   up,
		DownvoteCount: down,
		CreatedAt:     time.Now().Add(-age),
	}
}

func ids(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSortPosts_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []models.Post{
		post(1, 5, 0, time.Hour),
		post(2, 100, 0, 48*time.Hour),
		post(3, 1, 0, time.Minute),
	}
	snapshot := make([]models.Post, len(input))
	copy(snapshot, input)

	for _, mode := range []Mode{ModeNew, ModeHot, ModeTop, Mode("bogus")} {
		SortPosts(input, mode, WindowAll)
		assert.Equal(t, snapshot, input, "mode %q mutated its input", mode)
	}
}

func TestSortPosts_New(t *testing.T) {
	t.Parallel()

	input := []models.Post{
		post(1, 0, 0, 3*time.Hour),
		post(2, 0, 0, time.Minute),
		post(3, 0, 0, 24*time.Hour),
	}
	out := SortPosts(input, ModeNew, WindowAll)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedAt.After(out[i-1].CreatedAt), "created_at must be non-increasing")
	}
	assert.Equal(t, []uint{2, 1, 3}, ids(out))
}

func TestSortPosts_Hot(t *testing.T) {
	t.Parallel()

	// A fresh middling post should outrank an old high-vote one.
	input := []models.Post{
		post(1, 500, 0, 10*24*time.Hour),
		post(2, 20, 0, time.Hour),
	}
	out := SortPosts(input, ModeHot, WindowAll)
	assert.Equal(t, []uint{2, 1}, ids(out))
}

func TestSortPosts_Top(t *testing.T) {
	t.Parallel()

	input := []models.Post{
		post(1, 9, 1, time.Hour),    // net 8
		post(2, 900, 100, time.Hour), // net 800
		post(3, 12, 4, time.Hour),   // net 8, wilson-tied loser vs 4
		post(4, 108, 100, time.Hour), // net 8, highest total but worst ratio
	}
	out := SortPosts(input, ModeTop, WindowAll)
	require.Equal(t, uint(2), out[0].ID, "net votes dominate")

	// All of 1, 3, 4 are net 8; wilson breaks the tie.
	w1 := WilsonScore(9, 10)
	w3 := WilsonScore(12, 16)
	w4 := WilsonScore(108, 208)
	require.Greater(t, w1, w3)
	require.Greater(t, w3, w4)
	assert.Equal(t, []uint{2, 1, 3, 4}, ids(out))
}

func TestSortPosts_UnknownModeIsIdentity(t *testing.T) {
	t.Parallel()

	input := []models.Post{post(1, 0, 0, time.Hour), post(2, 0, 0, time.Minute)}
	out := SortPosts(input, Mode("weird"), WindowAll)
	assert.Equal(t, ids(input), ids(out))
}

func TestFilterByTimeWindow(t *testing.T) {
	t.Parallel()

	input := []models.Post{
		post(1, 0, 0, 30*time.Minute),
		post(2, 0, 0, 4*time.Hour),
		post(3, 0, 0, 24*time.Hour+time.Minute),
		post(4, 0, 0, 7*24*time.Hour+time.Minute),
		post(5, 0, 0, 30*24*time.Hour+time.Minute),
	}

	assert.Equal(t, []uint{1}, ids(FilterByTimeWindow(input, WindowHour)))
	assert.Equal(t, []uint{1, 2}, ids(FilterByTimeWindow(input, WindowDay)))
	assert.Equal(t, []uint{1, 2, 3}, ids(FilterByTimeWindow(input, WindowWeek)))
	assert.Equal(t, []uint{1, 2, 3, 4}, ids(FilterByTimeWindow(input, WindowMonth)))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(FilterByTimeWindow(input, WindowYear)))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(FilterByTimeWindow(input, WindowAll)))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(FilterByTimeWindow(input, Window("bogus"))), "unknown windows are identity")
}

func TestTrendingPosts(t *testing.T) {
	t.Parallel()

	// Equal net votes and age, so the hot component ties; the contested
	// post must rank first on its controversy bonus.
	contested := post(1, 75, 25, time.Hour)
	oneSided := post(2, 50, 0, time.Hour)
	out := TrendingPosts([]models.Post{oneSided, contested})
	assert.Equal(t, []uint{1, 2}, ids(out))
}

func TestRisingPosts_DropsOldItems(t *testing.T) {
	t.Parallel()

	input := []models.Post{
		post(1, 100, 0, 2*time.Hour),
		post(2, 1000, 0, 48*time.Hour),
		post(3, 10, 0, 10*time.Hour),
	}
	out := RisingPosts(input)
	assert.Equal(t, []uint{1, 3}, ids(out))
}
