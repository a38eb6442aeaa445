package seed

import (
	"testing"

	"chatroom/internal/database"
	"chatroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactory_CreateReplyTree(t *testing.T) {
	t.Parallel()

	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)
	channel, err := factory.CreateChannel()
	require.NoError(t, err)
	post, err := factory.CreatePost(channel, user)
	require.NoError(t, err)

	replies, err := factory.CreateReplyTree(post, []*models.User{user}, 3, 2)
	require.NoError(t, err)
	// 2 roots, each with 2 children, each with 2 grandchildren.
	assert.Len(t, replies, 14)

	byDepth := make(map[int]int)
	for _, r := range replies {
		byDepth[r.Depth]++
		if r.Depth > 0 {
			require.NotNil(t, r.ParentID)
		}
	}
	assert.Equal(t, map[int]int{0: 2, 1: 4, 2: 8}, byDepth)
}

func TestRun(t *testing.T) {
	t.Parallel()

	db := setupSeedDB(t)
	opts := Options{
		NumUsers:       3,
		NumChannels:    2,
		PostsPerChan:   2,
		ReplyTreeDepth: 2,
		ReplyBreadth:   2,
	}
	require.NoError(t, Run(db, opts))

	var users, channels, posts, replies int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Channel{}).Count(&channels).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Reply{}).Count(&replies).Error)

	assert.EqualValues(t, 3, users)
	assert.EqualValues(t, 2, channels)
	assert.EqualValues(t, 4, posts)
	// Each post carries 2 roots with 2 children each.
	assert.EqualValues(t, 4*6, replies)
}

func TestRun_CleanStartsOver(t *testing.T) {
	t.Parallel()

	db := setupSeedDB(t)
	opts := Options{NumUsers: 2, NumChannels: 1, PostsPerChan: 1, ReplyTreeDepth: 1, ReplyBreadth: 1}
	require.NoError(t, Run(db, opts))
	opts.ShouldClean = true
	require.NoError(t, Run(db, opts))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 2, users, "clean removes the previous data set first")
}
