package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

const notificationListLimit = 50

type NotificationService struct {
	notifications repositories.NotificationRepository
	log           *zap.Logger
}

func NewNotificationService(notifications repositories.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		log:           logger.OrNop(log).Named("notifications"),
	}
}

// List returns the user's newest notifications.
func (s *NotificationService) List(ctx context.Context, user *models.User) ([]models.Notification, error) {
	items, err := s.notifications.ListByUser(ctx, user.ID, notificationListLimit)
	if err != nil {
		return nil, types.Internal("Failed to load notifications", err)
	}
	return items, nil
}

// MarkRead flags one of the user's notifications as read. Marking an
// already read notification succeeds without changes.
func (s *NotificationService) MarkRead(ctx context.Context, id uint, user *models.User) (*models.Notification, error) {
	n, err := s.notifications.FindForUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound("Notification not found")
		}
		return nil, types.Internal("Failed to load notification", err)
	}
	if n.Read {
		return n, nil
	}
	if err := s.notifications.MarkRead(ctx, n.ID); err != nil {
		return nil, types.Internal("Failed to update notification", err)
	}
	n.Read = true
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, user *models.User) (int64, error) {
	n, err := s.notifications.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, types.Internal("Failed to count notifications", err)
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, user *models.User) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, user.ID)
	if err != nil {
		return 0, types.Internal("Failed to update notifications", err)
	}
	s.log.Debug("notifications marked read", zap.Uint("user_id", user.ID), zap.Int64("count", n))
	return n, nil
}
