// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the Pulse application.
//
// LikesCount, CommentsCount and FavoritesCount are denormalized aggregates:
// persisted columns that must always equal the row count of the corresponding
// join table for this post. Only the interaction repositories write them, and
// only as a relative delta inside the same transaction as the join-row change.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	LikesCount     int `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount  int `gorm:"not null;default:0" json:"comments_count"`
	FavoritesCount int `gorm:"not null;default:0" json:"favorites_count"`

	// Liked and Favorited are viewer-scoped; computed at query time, never persisted.
	Liked     bool `gorm:"->;-:migration" json:"is_liked"`
	Favorited bool `gorm:"->;-:migration" json:"is_favorited"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Likes         []Like         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites     []Favorite     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
