package models

import "github.com/shopspring/decimal"

// Dashboard is the aggregated view returned to the frontend. It is derived
// fresh on every request and never persisted.
type Dashboard struct {
	TotalIncome          decimal.Decimal   `json:"total_income"`
	TotalExpenses        decimal.Decimal   `json:"total_expenses"`
	TotalSavings         decimal.Decimal   `json:"total_savings"`
	TotalDebt            decimal.Decimal   `json:"total_debt"`
	FinancialHealthScore decimal.Decimal   `json:"financial_health_score"` // 0-100
	MonthlyData          []MonthlyData     `json:"monthly_data"`
	CategoryExpenses     []CategoryExpense `json:"category_expenses"`
	ActiveGoals          []GoalProjection  `json:"active_goals"`
	TotalPoints          int               `json:"total_points"`
	Level                int               `json:"level"`
	UnreadNotifications  int               `json:"unread_notifications"`
}

// MonthlyData pairs income and expenses for one calendar month
type MonthlyData struct {
	Month    string          `json:"month"` // e.g. "Jan 2026"
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryExpense is the spend attributed to one category over the lookback window
type CategoryExpense struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}
