package repository

import (
	"database/sql"
	"fmt"

	"github.com/finassist/finassist/internal/models"
)

// CreateNotification inserts a new notification
func (r *Repository) CreateNotification(n *models.Notification) error {
	query := `
		INSERT INTO finassist.notifications (user_id, title, message, type, read, scheduled_for, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, n.UserID, n.Title, n.Message, n.Type, n.Read, n.ScheduledFor).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// FindNotificationByID retrieves a single notification
func (r *Repository) FindNotificationByID(id int64) (*models.Notification, error) {
	n := &models.Notification{}
	query := `
		SELECT id, user_id, title, message, type, read, scheduled_for, created_at
		FROM finassist.notifications
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.ScheduledFor, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return n, nil
}

// FindNotificationsByUser retrieves the user's notifications, newest first.
// When unreadOnly is set, read notifications are filtered out.
func (r *Repository) FindNotificationsByUser(userID int64, unreadOnly bool) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, read, scheduled_for, created_at
		FROM finassist.notifications
		WHERE user_id = $1 AND ($2 = false OR read = false)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read,
			&n.ScheduledFor, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnreadNotifications counts the user's unread notifications
func (r *Repository) CountUnreadNotifications(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM finassist.notifications WHERE user_id = $1 AND read = false`
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead flags one notification as read
func (r *Repository) MarkNotificationRead(id int64) error {
	if _, err := r.db.Exec(`UPDATE finassist.notifications SET read = true WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead flags every notification of the user as read
func (r *Repository) MarkAllNotificationsRead(userID int64) error {
	if _, err := r.db.Exec(`UPDATE finassist.notifications SET read = true WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification
func (r *Repository) DeleteNotification(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM finassist.notifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
