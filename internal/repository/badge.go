package repository

import (
	"database/sql"
	"fmt"

	"github.com/finassist/finassist/internal/models"
)

// FindBadgeByName looks up a badge definition in the catalog, or (nil, nil)
// when no badge carries the name.
func (r *Repository) FindBadgeByName(name string) (*models.Badge, error) {
	badge := &models.Badge{}
	query := `
		SELECT id, name, description, icon, points
		FROM finassist.badges
		WHERE name = $1`
	err := r.db.QueryRow(query, name).
		Scan(&badge.ID, &badge.Name, &badge.Description, &badge.Icon, &badge.Points)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find badge: %w", err)
	}
	return badge, nil
}

// FindAllBadges lists the badge catalog
func (r *Repository) FindAllBadges() ([]models.Badge, error) {
	rows, err := r.db.Query(`SELECT id, name, description, icon, points FROM finassist.badges ORDER BY id`)
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
