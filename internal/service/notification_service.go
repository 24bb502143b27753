package service

import (
	"context"
	"encoding/json"

	"pulse/internal/middleware"
	"pulse/internal/models"
	"pulse/internal/notifications"
	"pulse/internal/observability"
	"pulse/internal/repository"
)

// NotificationService records notifications and serves the notification
// feed. Recording is strictly best-effort: it runs after the primary
// mutation has committed and never surfaces a failure to the caller.
type NotificationService struct {
	repo     repository.NotificationRepository
	notifier *notifications.Notifier
}

func NewNotificationService(repo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{repo: repo, notifier: notifier}
}

// RecordInput describes one "actor did X to recipient's post" event.
type RecordInput struct {
	RecipientID uint
	ActorID     uint
	Type        models.NotificationType
	PostID      uint
	CommentID   *uint
}

// Record writes a notification row and publishes it for realtime
// delivery. Self-notifications (actor acting on their own post) are
// silently suppressed. Failures are logged and counted, never returned:
// the interaction that triggered the notification has already
// succeeded, and its outcome must not change here.
func (s *NotificationService) Record(ctx context.Context, in RecordInput) {
	if in.ActorID == in.RecipientID {
		return
	}

	n := &models.Notification{
		RecipientID: in.RecipientID,
		ActorID:     in.ActorID,
		Type:        in.Type,
		PostID:      in.PostID,
		CommentID:   in.CommentID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		observability.NotificationsDropped.WithLabelValues(string(in.Type)).Inc()
		middleware.Logger.ErrorContext(ctx, "failed to record notification",
			"type", in.Type,
			"recipient_id", in.RecipientID,
			"post_id", in.PostID,
			"error", err,
		)
		return
	}
	observability.NotificationsEmitted.WithLabelValues(string(in.Type)).Inc()

	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to encode notification payload", "error", err)
		return
	}
	if err := s.notifier.PublishUser(ctx, in.RecipientID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish notification",
			"recipient_id", in.RecipientID,
			"error", err,
		)
	}
}

// NotificationFeed is one page of a user's notifications.
type NotificationFeed struct {
	Notifications []models.Notification `json:"notifications"`
	TotalCount    int64                 `json:"total_count"`
	UnreadCount   int64                 `json:"unread_count"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uint, page, limit int) (*NotificationFeed, error) {
	page, limit = normalizePage(page, limit)

	rows, total, unread, err := s.repo.ListByRecipient(ctx, userID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{
		Notifications: rows,
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Notification", id)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
