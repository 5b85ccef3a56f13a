package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense
type Expense struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	BudgetID      *int64          `json:"budget_id,omitempty"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}
