package seed

import (
	"fmt"
	"log"

	"chatroom/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumChannels    int
	PostsPerChan   int
	ReplyTreeDepth int
	ReplyBreadth   int
	ShouldClean    bool
}

// DefaultOptions returns a small but thread-heavy data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:       25,
		NumChannels:    4,
		PostsPerChan:   15,
		ReplyTreeDepth: 4,
		ReplyBreadth:   3,
	}
}

// Run seeds the database with users, channels, posts, and reply trees.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.NumChannels; i++ {
		channel, err := factory.CreateChannel()
		if err != nil {
			return fmt.Errorf("seed channel: %w", err)
		}
		for j := 0; j < opts.PostsPerChan; j++ {
			post, err := factory.CreatePost(channel, users[j%len(users)])
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			if _, err := factory.CreateReplyTree(post, users, opts.ReplyTreeDepth, opts.ReplyBreadth); err != nil {
				return fmt.Errorf("seed replies: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d channels, %d posts per channel", opts.NumUsers, opts.NumChannels, opts.PostsPerChan)
	return nil
}

func clean(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Reply{}, &models.Post{}, &models.Channel{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}
	return nil
}
