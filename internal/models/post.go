package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in a channel.
//
// UpvoteCount and DownvoteCount are materialized by the vote subsystem; the
// derived values are computed on demand so they cannot drift from the stored
// counts. Scoring still clamps negative counts rather than trusting the
// fields blindly.
type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ChannelID     uint           `gorm:"not null;index" json:"channel_id"`
	Channel       Channel        `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	UpvoteCount   int            `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount int            `gorm:"not null;default:0" json:"downvote_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// NetVotes returns upvotes minus downvotes.
func (p *Post) NetVotes() int {
	return p.UpvoteCount - p.DownvoteCount
}

// TotalVotes returns upvotes plus downvotes.
func (p *Post) TotalVotes() int {
	return p.UpvoteCount + p.DownvoteCount
}
