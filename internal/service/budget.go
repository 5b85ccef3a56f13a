package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
	"github.com/finassist/finassist/internal/utils/email"
)

// AlertThreshold is the spent share at which a budget raises an alert
const AlertThreshold = 0.9

// BudgetService handles budget CRUD and the overspend alert sweep
type BudgetService struct {
	repo     *repository.Repository
	notifier *email.Sender
	log      *logrus.Logger
}

// NewBudgetService initializes the budget service
func NewBudgetService(repo *repository.Repository, notifier *email.Sender, log *logrus.Logger) *BudgetService {
	return &BudgetService{repo: repo, notifier: notifier, log: log}
}

// CreateBudget creates a budget for the user with nothing spent
func (s *BudgetService) CreateBudget(userID int64, budget *models.Budget) (*models.BudgetView, error) {
	budget.UserID = userID
	budget.Spent = decimal.Zero
	if err := s.repo.CreateBudget(budget); err != nil {
		return nil, err
	}
	s.log.Infof("Budget created for user %d: %s %s", userID, budget.Name, budget.Amount)
	view := toBudgetView(*budget)
	return &view, nil
}

// GetUserBudgets lists the user's budgets with derived figures
func (s *BudgetService) GetUserBudgets(userID int64) ([]models.BudgetView, error) {
	budgets, err := s.repo.FindBudgetsByUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, toBudgetView(b))
	}
	return views, nil
}

// UpdateBudget updates a budget owned by the user
func (s *BudgetService) UpdateBudget(userID, budgetID int64, update *models.Budget) (*models.BudgetView, error) {
	budget, err := s.repo.FindBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, ErrForbidden
	}

	budget.Name = update.Name
	budget.Category = update.Category
	budget.Amount = update.Amount
	budget.StartDate = update.StartDate
	budget.EndDate = update.EndDate
	budget.Period = update.Period

	if err := s.repo.UpdateBudget(budget); err != nil {
		return nil, err
	}
	view := toBudgetView(*budget)
	return &view, nil
}

// DeleteBudget removes a budget owned by the user
func (s *BudgetService) DeleteBudget(userID, budgetID int64) error {
	budget, err := s.repo.FindBudgetByID(budgetID)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteBudget(budgetID)
}

// AlertOverspentBudgets notifies owners of budgets at or past the alert
// threshold. Run daily by the scheduler; a failed email is logged, not
// fatal, so one bad address does not stop the sweep.
func (s *BudgetService) AlertOverspentBudgets() error {
	budgets, err := s.repo.FindBudgetsOverThreshold(AlertThreshold)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		view := toBudgetView(b)
		notification := &models.Notification{
			UserID:       b.UserID,
			Title:        "Budget alert",
			Message:      "Budget \"" + b.Name + "\" has reached " + b.Spent.StringFixed(2) + " of " + b.Amount.StringFixed(2),
			Type:         "BUDGET_ALERT",
			ScheduledFor: time.Now(),
		}
		if err := s.repo.CreateNotification(notification); err != nil {
			return err
		}

		user, err := s.repo.FindUserByID(b.UserID)
		if err != nil {
			return err
		}
		if err := s.notifier.SendBudgetAlert(user.Email, user.Username, b.Name, b.Spent, b.Amount, view.PercentageUsed); err != nil {
			s.log.Warnf("Budget alert email to %s failed: %v", user.Email, err)
		}
	}

	s.log.Infof("Budget alert sweep finished: %d budgets over threshold", len(budgets))
	return nil
}

func toBudgetView(b models.Budget) models.BudgetView {
	view := models.BudgetView{Budget: b}
	view.Remaining = b.Amount.Sub(b.Spent)
	if b.Amount.IsPositive() {
		view.PercentageUsed, _ = b.Spent.DivRound(b.Amount, 4).
			Mul(decimal.NewFromInt(100)).Float64()
	}
	return view
}
