package repository

import (
	"database/sql"
	"fmt"

	"github.com/finassist/finassist/internal/models"
)

// CreateSavingsGoal inserts a new savings goal
func (r *Repository) CreateSavingsGoal(goal *models.SavingsGoal) error {
	query := `
		INSERT INTO finassist.savings_goals (user_id, name, description, target_amount, current_amount, target_date, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, goal.UserID, goal.Name, goal.Description, goal.TargetAmount,
		goal.CurrentAmount, goal.TargetDate, goal.Completed).
		Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create savings goal: %w", err)
	}
	return nil
}

// FindSavingsGoalByID retrieves a single savings goal
func (r *Repository) FindSavingsGoalByID(id int64) (*models.SavingsGoal, error) {
	goal := &models.SavingsGoal{}
	query := `
		SELECT id, user_id, name, description, target_amount, current_amount, target_date, completed, created_at
		FROM finassist.savings_goals
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.TargetAmount,
			&goal.CurrentAmount, &goal.TargetDate, &goal.Completed, &goal.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find savings goal: %w", err)
	}
	return goal, nil
}

// FindSavingsGoalsByUser retrieves all savings goals of a user
func (r *Repository) FindSavingsGoalsByUser(userID int64) ([]models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, description, target_amount, current_amount, target_date, completed, created_at
		FROM finassist.savings_goals
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals: %w", err)
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.TargetAmount,
			&g.CurrentAmount, &g.TargetDate, &g.Completed, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateSavingsGoal updates the mutable fields of a goal
func (r *Repository) UpdateSavingsGoal(goal *models.SavingsGoal) error {
	query := `
		UPDATE finassist.savings_goals
		SET name = $1, description = $2, target_amount = $3, current_amount = $4, target_date = $5, completed = $6
		WHERE id = $7`
	if _, err := r.db.Exec(query, goal.Name, goal.Description, goal.TargetAmount,
		goal.CurrentAmount, goal.TargetDate, goal.Completed, goal.ID); err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	return nil
}

// DeleteSavingsGoal removes a savings goal
func (r *Repository) DeleteSavingsGoal(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM finassist.savings_goals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return nil
}
