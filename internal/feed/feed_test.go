package feed

import (
	"testing"
	"time"

	"chatroom/internal/models"
	"chatroom/internal/ranking"

	"github.com/stretchr/testify/assert"
)

func TestNewOrchestrator_Fallbacks(t *testing.T) {
	t.Parallel()

	orch := NewOrchestrator("bogus", "fortnight")
	assert.Equal(t, ranking.ModeHot, orch.Mode())
	assert.Equal(t, ranking.WindowDay, orch.Window())
}

func TestOrchestrator_Selection(t *testing.T) {
	t.Parallel()

	orch := NewOrchestrator(ranking.ModeNew, ranking.WindowWeek)
	assert.Equal(t, ranking.ModeNew, orch.Mode())
	assert.Equal(t, ranking.WindowWeek, orch.Window())

	orch.SetMode("nope")
	assert.Equal(t, ranking.ModeNew, orch.Mode(), "invalid modes are ignored")

	orch.SetWindow(ranking.WindowAll)
	assert.Equal(t, ranking.WindowAll, orch.Window())
}

func TestOrchestrator_SortDoesNotMutate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []models.Post{
		{ID: 1, UpvoteCount: 1, CreatedAt: now.Add(-time.Hour)},
		{ID: 2, UpvoteCount: 500, CreatedAt: now.Add(-2 * time.Hour)},
	}

	orch := NewOrchestrator(ranking.ModeHot, ranking.WindowAll)
	out := orch.Sort(posts)

	assert.Equal(t, uint(2), out[0].ID)
	assert.Equal(t, uint(1), posts[0].ID, "the input slice keeps its order")
}
