package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

// CreateExpense inserts a new expense
func (r *Repository) CreateExpense(expense *models.Expense) error {
	query := `
		INSERT INTO finassist.expenses (user_id, budget_id, description, category, amount, date, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, expense.UserID, expense.BudgetID, expense.Description,
		expense.Category, expense.Amount, expense.Date, expense.PaymentMethod).
		Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindExpenseByID retrieves a single expense
func (r *Repository) FindExpenseByID(id int64) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT id, user_id, budget_id, description, category, amount, date, payment_method, created_at
		FROM finassist.expenses
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&expense.ID, &expense.UserID, &expense.BudgetID, &expense.Description,
			&expense.Category, &expense.Amount, &expense.Date, &expense.PaymentMethod, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}

// FindExpensesByUser retrieves all expenses of a user, newest first
func (r *Repository) FindExpensesByUser(userID int64) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, budget_id, description, category, amount, date, payment_method, created_at
		FROM finassist.expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`
	return r.scanExpenses(r.db.Query(query, userID))
}

// FindExpensesByUserBetween retrieves the user's expenses with a date
// inside [from, to]
func (r *Repository) FindExpensesByUserBetween(userID int64, from, to time.Time) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, budget_id, description, category, amount, date, payment_method, created_at
		FROM finassist.expenses
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, id DESC`
	return r.scanExpenses(r.db.Query(query, userID, from, to))
}

// UpdateExpense updates the mutable fields of an expense
func (r *Repository) UpdateExpense(expense *models.Expense) error {
	query := `
		UPDATE finassist.expenses
		SET budget_id = $1, description = $2, category = $3, amount = $4, date = $5, payment_method = $6
		WHERE id = $7`
	if _, err := r.db.Exec(query, expense.BudgetID, expense.Description, expense.Category,
		expense.Amount, expense.Date, expense.PaymentMethod, expense.ID); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense
func (r *Repository) DeleteExpense(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM finassist.expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// SumExpensesForBudget totals the expenses linked to a budget
func (r *Repository) SumExpensesForBudget(budgetID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM finassist.expenses
		WHERE budget_id = $1`
	if err := r.db.QueryRow(query, budgetID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

func (r *Repository) scanExpenses(rows *sql.Rows, err error) ([]models.Expense, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.BudgetID, &e.Description, &e.Category,
			&e.Amount, &e.Date, &e.PaymentMethod, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
