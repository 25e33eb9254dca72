// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. The avatar URL is derived from the
// email at registration time and stored alongside the record so posts and
// comments can snapshot it cheaply.
//
// Rows are hard-deleted on account removal: the unique email index must not
// be held hostage by dead accounts, so a deleted email can register again.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
