package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a feed item. AuthorName and AuthorAvatar are snapshots of the
// author's user record taken at creation time and are intentionally never
// resynced with later profile edits (historical attribution).
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Text         string         `gorm:"type:text;not null" json:"text"`
	AuthorName   string         `json:"name"`
	AuthorAvatar string         `json:"avatar"`
	Likes        []Like         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments     []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like marks that a user liked a post. The composite unique index guarantees
// a user appears at most once in a post's likes set.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reply on a post, with the same author-snapshot semantics as Post.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index" json:"post_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
