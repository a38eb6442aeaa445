package models

import (
	"time"

	"gorm.io/gorm"
)

// DeletedReplyContent replaces the content of a tombstoned reply. The node
// itself stays in the thread so replies nested beneath it keep their place.
const DeletedReplyContent = "[deleted]"

// Reply is a comment on a post. Replies form a tree: a root reply has no
// parent and depth 0, a nested reply sits at exactly parent depth + 1 and
// belongs to the same post as its parent.
type Reply struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PostID        uint           `gorm:"not null;index" json:"post_id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	ParentID      *uint          `gorm:"index" json:"parent_id,omitempty"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Depth         int            `gorm:"not null;default:0" json:"depth"`
	Edited        bool           `gorm:"not null;default:false" json:"edited"`
	UpvoteCount   int            `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount int            `gorm:"not null;default:0" json:"downvote_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// NetVotes returns upvotes minus downvotes.
func (r *Reply) NetVotes() int {
	return r.UpvoteCount - r.DownvoteCount
}

// TotalVotes returns upvotes plus downvotes.
func (r *Reply) TotalVotes() int {
	return r.UpvoteCount + r.DownvoteCount
}

// IsRoot reports whether the reply is a top-level reply on its post.
func (r *Reply) IsRoot() bool {
	return r.ParentID == nil
}

// CanReplyTo reports whether a new reply may be nested under this one given
// the configured maximum thread depth.
func (r *Reply) CanReplyTo(maxDepth int) bool {
	return r.Depth < maxDepth
}

// Tombstoned reports whether the reply has been deleted but kept in the
// thread to preserve the topology of replies beneath it.
func (r *Reply) Tombstoned() bool {
	return r.DeletedAt.Valid
}
