package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finassist/finassist/internal/models"
)

// CreateBudget inserts a new budget with nothing spent yet
func (r *Repository) CreateBudget(budget *models.Budget) error {
	query := `
		INSERT INTO finassist.budgets (user_id, name, category, amount, spent, start_date, end_date, period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, budget.UserID, budget.Name, budget.Category, budget.Amount,
		budget.Spent, budget.StartDate, budget.EndDate, budget.Period).
		Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// FindBudgetByID retrieves a single budget
func (r *Repository) FindBudgetByID(id int64) (*models.Budget, error) {
	budget := &models.Budget{}
	query := `
		SELECT id, user_id, name, category, amount, spent, start_date, end_date, period, created_at
		FROM finassist.budgets
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&budget.ID, &budget.UserID, &budget.Name, &budget.Category, &budget.Amount,
			&budget.Spent, &budget.StartDate, &budget.EndDate, &budget.Period, &budget.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	return budget, nil
}

// FindBudgetsByUser retrieves all budgets of a user
func (r *Repository) FindBudgetsByUser(userID int64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, name, category, amount, spent, start_date, end_date, period, created_at
		FROM finassist.budgets
		WHERE user_id = $1
		ORDER BY id`
	return r.scanBudgets(r.db.Query(query, userID))
}

// FindBudgetsOverThreshold retrieves budgets whose spent share reached the
// given ratio, across all users. Used by the daily alert sweep.
func (r *Repository) FindBudgetsOverThreshold(ratio float64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, name, category, amount, spent, start_date, end_date, period, created_at
		FROM finassist.budgets
		WHERE amount > 0 AND spent >= amount * $1
		ORDER BY id`
	return r.scanBudgets(r.db.Query(query, ratio))
}

// UpdateBudget updates the mutable fields of a budget
func (r *Repository) UpdateBudget(budget *models.Budget) error {
	query := `
		UPDATE finassist.budgets
		SET name = $1, category = $2, amount = $3, start_date = $4, end_date = $5, period = $6
		WHERE id = $7`
	if _, err := r.db.Exec(query, budget.Name, budget.Category, budget.Amount,
		budget.StartDate, budget.EndDate, budget.Period, budget.ID); err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// UpdateBudgetSpent stores a recomputed spent figure
func (r *Repository) UpdateBudgetSpent(id int64, spent decimal.Decimal) error {
	if _, err := r.db.Exec(`UPDATE finassist.budgets SET spent = $1 WHERE id = $2`, spent, id); err != nil {
		return fmt.Errorf("failed to update budget spent: %w", err)
	}
	return nil
}

// DeleteBudget removes a budget; linked expenses keep existing with a
// cleared budget reference
func (r *Repository) DeleteBudget(id int64) error {
	if _, err := r.db.Exec(`UPDATE finassist.expenses SET budget_id = NULL WHERE budget_id = $1`, id); err != nil {
		return fmt.Errorf("failed to unlink expenses: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM finassist.budgets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (r *Repository) scanBudgets(rows *sql.Rows, err error) ([]models.Budget, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Category, &b.Amount, &b.Spent,
			&b.StartDate, &b.EndDate, &b.Period, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
