package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a spending envelope for a category over a period
type Budget struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Period    string          `json:"period"` // WEEKLY, MONTHLY, YEARLY
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetView is the API representation of a budget with derived figures
type BudgetView struct {
	Budget
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentage_used"`
}
