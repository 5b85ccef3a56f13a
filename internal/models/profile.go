package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile holds the financial profile and gamification state of a user
type UserProfile struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Language        string          `json:"language"`
	Level           string          `json:"level"` // BEGINNER, INTERMEDIATE, ADVANCED
	Points          int             `json:"points"`
	LevelNumber     int             `json:"level_number"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	TotalSavings    decimal.Decimal `json:"total_savings"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
	Badges          []Badge         `json:"badges,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Badge represents an unlockable achievement in the badge catalog
type Badge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}
