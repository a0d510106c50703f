package models

import (
	"time"
)

// Post represents a feed post. Name and Avatar are snapshotted from the
// author at creation time and are not re-synced when the author later edits
// their account, so historical posts keep the identity they were written
// under. Likes and Comments are owned sub-collections reachable only through
// post operations.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize replaces nil sub-collection slices with empty ones so the JSON
// encoding is [] rather than null.
func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// Like records that a user liked a post. The (post_id, user_id) pair is
// unique: the set semantics of the like list are enforced by the index, not
// just by the handler's pre-check.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment on a post, carrying its own author snapshot.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
