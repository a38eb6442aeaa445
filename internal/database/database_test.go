package database

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chatroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "channels", "posts", "replies"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %q", table)
	}

	// Round-trip one row through each core table.
	user := &models.User{Username: "u", Email: "u@e.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	channel := &models.Channel{Name: "general"}
	require.NoError(t, db.Create(channel).Error)
	post := &models.Post{ChannelID: channel.ID, UserID: user.ID, Title: "t", Content: "c"}
	require.NoError(t, db.Create(post).Error)
	reply := &models.Reply{PostID: post.ID, UserID: user.ID, Content: "r"}
	require.NoError(t, db.Create(reply).Error)
	assert.NotZero(t, reply.ID)
}

func TestCustomGormLogger_LogMode(t *testing.T) {
	base := &CustomGormLogger{
		logger: slog.Default(),
		Config: logger.Config{LogLevel: logger.Warn},
	}

	raised := base.LogMode(logger.Info)
	assert.Equal(t, logger.Warn, base.Config.LogLevel, "LogMode returns a copy")

	// The raised logger must not panic on any path.
	ctx := context.Background()
	raised.Info(ctx, "info %d", 1)
	raised.Warn(ctx, "warn %d", 2)
	raised.Error(ctx, "error %d", 3)
	raised.Trace(ctx, time.Now().Add(-time.Millisecond), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
}
