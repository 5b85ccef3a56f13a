package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/dashboard"
	"github.com/finassist/finassist/internal/gamification"
	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
)

// DashboardService assembles the snapshot of a user's records and runs the
// aggregator over it.
type DashboardService struct {
	repo *repository.Repository
	game *gamification.Engine
	log  *logrus.Logger
}

// NewDashboardService initializes the dashboard service
func NewDashboardService(repo *repository.Repository, game *gamification.Engine, log *logrus.Logger) *DashboardService {
	return &DashboardService{repo: repo, game: game, log: log}
}

// GetDashboard fetches the user's records and derives the summary. The
// gamification profile is created lazily when the user has none yet.
func (s *DashboardService) GetDashboard(userID int64) (*models.Dashboard, error) {
	if _, err := s.repo.FindUserByID(userID); err != nil {
		return nil, err
	}

	profile, err := s.game.Profile(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expenses, err := s.repo.FindExpensesByUserBetween(userID, now.AddDate(0, -dashboard.LookbackMonths, 0), now)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repo.FindBudgetsByUser(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.repo.FindSavingsGoalsByUser(userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnreadNotifications(userID)
	if err != nil {
		return nil, err
	}

	summary := dashboard.Build(dashboard.Snapshot{
		Now:                 now,
		MonthlyIncome:       profile.MonthlyIncome,
		Expenses:            expenses,
		Budgets:             budgets,
		Goals:               goals,
		Profile:             *profile,
		UnreadNotifications: unread,
	})

	s.log.Debugf("Dashboard built for user %d: score %s", userID, summary.FinancialHealthScore)
	return &summary, nil
}
