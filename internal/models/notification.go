package models

import (
	"time"
)

// NotificationType distinguishes what kind of interaction produced a notification.
type NotificationType string

const (
	NotificationLike     NotificationType = "LIKE"
	NotificationFavorite NotificationType = "FAVORITE"
	NotificationComment  NotificationType = "COMMENT"
)

// Notification records "actor did X to recipient's post". Rows are immutable
// once written except for the Read flag, and are never created when the actor
// is the recipient. CommentID is set only for COMMENT notifications.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Type        NotificationType `gorm:"not null" json:"type"`
	PostID      uint             `gorm:"not null" json:"post_id"`
	CommentID   *uint            `json:"comment_id,omitempty"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor"`
}
