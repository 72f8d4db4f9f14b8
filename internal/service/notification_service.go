package service

import (
	"context"

	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
)

// NotificationService implements the activity feed.
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// HasUnseen reports whether the user has notifications they have not
// seen yet.
func (s *NotificationService) HasUnseen(ctx context.Context, userID uint) (bool, error) {
	return s.notifications.HasUnseen(ctx, userID)
}

// List returns a page of the user's notifications, optionally filtered
// by kind, and marks the page as seen. deletedCount is how many items
// the client removed from earlier pages; the offset shifts back by
// that amount so nothing is skipped.
func (s *NotificationService) List(ctx context.Context, userID uint, filter string, page, deletedCount int) ([]*models.Notification, error) {
	kind, err := parseKind(filter)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	offset := (page-1)*NotificationPageSize - deletedCount
	if offset < 0 {
		offset = 0
	}
	return s.notifications.List(ctx, userID, kind, NotificationPageSize, offset)
}

// Count returns the user's total notification count for the filter.
func (s *NotificationService) Count(ctx context.Context, userID uint, filter string) (int64, error) {
	kind, err := parseKind(filter)
	if err != nil {
		return 0, err
	}
	return s.notifications.Count(ctx, userID, kind)
}

func parseKind(filter string) (models.NotificationType, error) {
	switch filter {
	case "", "all":
		return "", nil
	case string(models.NotificationLike):
		return models.NotificationLike, nil
	case string(models.NotificationComment):
		return models.NotificationComment, nil
	case string(models.NotificationReply):
		return models.NotificationReply, nil
	default:
		return "", models.NewValidationError("Unknown notification filter: " + filter)
	}
}
