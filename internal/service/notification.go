package service

import (
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
)

// NotificationService handles in-app notifications with ownership checks
type NotificationService struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewNotificationService initializes the notification service
func NewNotificationService(repo *repository.Repository, log *logrus.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// GetUserNotifications lists the user's notifications, optionally unread only
func (s *NotificationService) GetUserNotifications(userID int64, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.FindNotificationsByUser(userID, unreadOnly)
}

// MarkAsRead flags one notification, owned by the user, as read
func (s *NotificationService) MarkAsRead(userID, notificationID int64) error {
	notification, err := s.repo.FindNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	return s.repo.MarkNotificationRead(notificationID)
}

// MarkAllAsRead flags every notification of the user as read
func (s *NotificationService) MarkAllAsRead(userID int64) error {
	return s.repo.MarkAllNotificationsRead(userID)
}

// DeleteNotification removes a notification owned by the user
func (s *NotificationService) DeleteNotification(userID, notificationID int64) error {
	notification, err := s.repo.FindNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteNotification(notificationID)
}
