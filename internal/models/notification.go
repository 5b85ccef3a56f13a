package models

import "time"

// Notification represents an in-app notification
type Notification struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"` // BUDGET_ALERT, GOAL_COMPLETED, BADGE_AWARDED, SYSTEM
	Read         bool      `json:"read"`
	ScheduledFor time.Time `json:"scheduled_for"`
	CreatedAt    time.Time `json:"created_at"`
}
