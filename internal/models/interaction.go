package models

import (
	"time"
)

// InteractionKind identifies a per-user interaction join table.
type InteractionKind string

const (
	KindLike     InteractionKind = "LIKE"
	KindFavorite InteractionKind = "FAVORITE"
)

// Valid reports whether k names a known interaction kind.
func (k InteractionKind) Valid() bool {
	return k == KindLike || k == KindFavorite
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite represents a user's favorite (bookmark) of a post.
// The combination of UserID and PostID must be unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_post;index" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction is the kind-neutral view of a Like or Favorite row returned by
// the interaction engine.
type Interaction struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	PostID    uint            `json:"post_id"`
	Kind      InteractionKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}
