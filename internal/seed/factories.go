// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chatroom/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser persists a user with a fake identity and a bcrypt-hashed
// throwaway password.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), f.rand.Intn(100000)),
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateChannel persists a channel with a fake topic.
func (f *Factory) CreateChannel() (*models.Channel, error) {
	channel := &models.Channel{
		Name:        fmt.Sprintf("%s-%d", gofakeit.BuzzWord(), f.rand.Intn(100000)),
		Description: gofakeit.Sentence(8),
	}
	if err := f.db.Create(channel).Error; err != nil {
		return nil, err
	}
	return channel, nil
}

// CreatePost persists a post by user in channel with a random vote spread
// and an age of up to ten days, so ranked feeds have something to order.
func (f *Factory) CreatePost(channel *models.Channel, user *models.User) (*models.Post, error) {
	post := &models.Post{
		ChannelID:     channel.ID,
		UserID:        user.ID,
		Title:         gofakeit.Sentence(5),
		Content:       gofakeit.Paragraph(1, 3, 12, " "),
		UpvoteCount:   f.rand.Intn(500),
		DownvoteCount: f.rand.Intn(120),
		CreatedAt:     time.Now().Add(-time.Duration(f.rand.Intn(240)) * time.Hour),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateReplyTree persists a reply tree under post: breadth direct children
// per node, nested depth levels deep, authors drawn from users.
func (f *Factory) CreateReplyTree(post *models.Post, users []*models.User, depth, breadth int) ([]*models.Reply, error) {
	var all []*models.Reply
	var build func(parent *models.Reply, level int) error
	build = func(parent *models.Reply, level int) error {
		if level >= depth {
			return nil
		}
		for i := 0; i < breadth; i++ {
			reply := &models.Reply{
				PostID:        post.ID,
				UserID:        users[f.rand.Intn(len(users))].ID,
				Content:       gofakeit.Sentence(10),
				UpvoteCount:   f.rand.Intn(80),
				DownvoteCount: f.rand.Intn(30),
			}
			if parent != nil {
				reply.ParentID = &parent.ID
				reply.Depth = parent.Depth + 1
			}
			if err := f.db.Create(reply).Error; err != nil {
				return err
			}
			all = append(all, reply)
			if err := build(reply, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := build(nil, 0); err != nil {
		return nil, err
	}
	return all, nil
}
