package repository

import (
	"context"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification reads.
// Writes happen inside the blog/comment fan-out transactions, not here.
type NotificationRepository interface {
	HasUnseen(ctx context.Context, userID uint) (bool, error)
	// List returns a page of the user's notifications, newest first,
	// optionally filtered by kind, and marks the returned page as seen.
	List(ctx context.Context, userID uint, kind models.NotificationType, limit, offset int) ([]*models.Notification, error)
	Count(ctx context.Context, userID uint, kind models.NotificationType) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) HasUnseen(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationRepository) List(ctx context.Context, userID uint, kind models.NotificationType, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification

	db := r.db.WithContext(ctx).
		Preload("Actor").
		Preload("Blog").
		Preload("Comment").
		Preload("Reply").
		Where("recipient_id = ?", userID)
	if kind != "" {
		db = db.Where("type = ?", kind)
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	// Fetching a page counts as seeing it.
	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		if !n.Seen {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("id IN ?", ids).
			Update("seen", true).Error; err != nil {
			return nil, err
		}
	}

	return notifications, nil
}

func (r *notificationRepository) Count(ctx context.Context, userID uint, kind models.NotificationType) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ?", userID)
	if kind != "" {
		db = db.Where("type = ?", kind)
	}
	err := db.Count(&count).Error
	return count, err
}
