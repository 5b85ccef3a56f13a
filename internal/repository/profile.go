package repository

import (
	"database/sql"
	"fmt"

	"github.com/finassist/finassist/internal/models"
)

// FindProfileByUserID retrieves the user's profile, or (nil, nil) when the
// user has none yet.
func (r *Repository) FindProfileByUserID(userID int64) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	query := `
		SELECT id, user_id, language, level, points, level_number,
		       monthly_income, monthly_expenses, total_savings, total_debt,
		       created_at, updated_at
		FROM finassist.user_profiles
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&profile.ID, &profile.UserID, &profile.Language, &profile.Level,
			&profile.Points, &profile.LevelNumber, &profile.MonthlyIncome,
			&profile.MonthlyExpenses, &profile.TotalSavings, &profile.TotalDebt,
			&profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// CreateProfile inserts a new profile
func (r *Repository) CreateProfile(profile *models.UserProfile) error {
	query := `
		INSERT INTO finassist.user_profiles
			(user_id, language, level, points, level_number,
			 monthly_income, monthly_expenses, total_savings, total_debt,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, profile.UserID, profile.Language, profile.Level,
		profile.Points, profile.LevelNumber, profile.MonthlyIncome,
		profile.MonthlyExpenses, profile.TotalSavings, profile.TotalDebt).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// SaveProfile writes back the mutable profile fields
func (r *Repository) SaveProfile(profile *models.UserProfile) error {
	query := `
		UPDATE finassist.user_profiles
		SET language = $1, level = $2, points = $3, level_number = $4,
		    monthly_income = $5, monthly_expenses = $6, total_savings = $7, total_debt = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9`
	if _, err := r.db.Exec(query, profile.Language, profile.Level, profile.Points,
		profile.LevelNumber, profile.MonthlyIncome, profile.MonthlyExpenses,
		profile.TotalSavings, profile.TotalDebt, profile.ID); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ProfileHasBadge reports whether the profile already unlocked the badge
func (r *Repository) ProfileHasBadge(profileID, badgeID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM finassist.profile_badges
			WHERE profile_id = $1 AND badge_id = $2
		)`
	if err := r.db.QueryRow(query, profileID, badgeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check badge: %w", err)
	}
	return exists, nil
}

// AddBadgeToProfile unlocks a badge for the profile. Unlocks are append-only.
func (r *Repository) AddBadgeToProfile(profileID, badgeID int64) error {
	query := `
		INSERT INTO finassist.profile_badges (profile_id, badge_id, awarded_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (profile_id, badge_id) DO NOTHING`
	if _, err := r.db.Exec(query, profileID, badgeID); err != nil {
		return fmt.Errorf("failed to add badge: %w", err)
	}
	return nil
}

// FindBadgesByProfile lists the badges unlocked by a profile
func (r *Repository) FindBadgesByProfile(profileID int64) ([]models.Badge, error) {
	query := `
		SELECT b.id, b.name, b.description, b.icon, b.points
		FROM finassist.badges b
		JOIN finassist.profile_badges pb ON pb.badge_id = b.id
		WHERE pb.profile_id = $1
		ORDER BY pb.awarded_at`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges: %w", err)
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Points); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
