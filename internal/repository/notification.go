package repository

import (
	"context"

	"gorm.io/gorm"

	"pulse/internal/models"
	"pulse/internal/observability"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListByRecipient pages a user's notifications newest-first and
	// also reports the total and unread counts.
	ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) (rows []models.Notification, total, unread int64, err error)
	// MarkRead flips one notification to read, scoped to the recipient
	// so users cannot touch each other's rows. Returns false when no
	// matching row exists.
	MarkRead(ctx context.Context, recipientID, id uint) (bool, error)
	MarkAllRead(ctx context.Context, recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	defer observability.TrackQuery("insert", "notifications")()
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]models.Notification, int64, int64, error) {
	defer observability.TrackQuery("select", "notifications")()

	base := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	var unread int64
	if err := base.Session(&gorm.Session{}).Where("read = ?", false).Count(&unread).Error; err != nil {
		return nil, 0, 0, err
	}

	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, 0, err
	}
	return rows, total, unread, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID, id uint) (bool, error) {
	defer observability.TrackQuery("update", "notifications")()

	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	defer observability.TrackQuery("update", "notifications")()

	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
