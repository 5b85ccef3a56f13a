package service

import (
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
)

// ExpenseService handles expense CRUD and budget linkage
type ExpenseService struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewExpenseService initializes the expense service
func NewExpenseService(repo *repository.Repository, log *logrus.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, log: log}
}

// CreateExpense records a new expense for the user. When a budget of the
// same category covers the expense date, the expense is linked to it and
// the budget's spent figure is recomputed.
func (s *ExpenseService) CreateExpense(userID int64, expense *models.Expense) (*models.Expense, error) {
	expense.UserID = userID
	expense.BudgetID = nil

	if expense.Category != "" {
		budgets, err := s.repo.FindBudgetsByUser(userID)
		if err != nil {
			return nil, err
		}
		for i := range budgets {
			b := budgets[i]
			if b.Category != expense.Category {
				continue
			}
			if expense.Date.Before(b.StartDate) || expense.Date.After(b.EndDate) {
				continue
			}
			expense.BudgetID = &b.ID
			break
		}
	}

	if err := s.repo.CreateExpense(expense); err != nil {
		return nil, err
	}

	if expense.BudgetID != nil {
		if err := s.recomputeBudgetSpent(*expense.BudgetID); err != nil {
			return nil, err
		}
	}

	s.log.Infof("Expense created for user %d: %s %s", userID, expense.Amount, expense.Category)
	return expense, nil
}

// GetUserExpenses lists all expenses of the user
func (s *ExpenseService) GetUserExpenses(userID int64) ([]models.Expense, error) {
	return s.repo.FindExpensesByUser(userID)
}

// UpdateExpense updates an expense owned by the user
func (s *ExpenseService) UpdateExpense(userID, expenseID int64, update *models.Expense) (*models.Expense, error) {
	expense, err := s.repo.FindExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, ErrForbidden
	}

	previousBudget := expense.BudgetID
	expense.Description = update.Description
	expense.Category = update.Category
	expense.Amount = update.Amount
	expense.Date = update.Date
	expense.PaymentMethod = update.PaymentMethod

	if err := s.repo.UpdateExpense(expense); err != nil {
		return nil, err
	}
	if previousBudget != nil {
		if err := s.recomputeBudgetSpent(*previousBudget); err != nil {
			return nil, err
		}
	}
	return expense, nil
}

// DeleteExpense removes an expense owned by the user
func (s *ExpenseService) DeleteExpense(userID, expenseID int64) error {
	expense, err := s.repo.FindExpenseByID(expenseID)
	if err != nil {
		return err
	}
	if expense.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.DeleteExpense(expenseID); err != nil {
		return err
	}
	if expense.BudgetID != nil {
		return s.recomputeBudgetSpent(*expense.BudgetID)
	}
	return nil
}

func (s *ExpenseService) recomputeBudgetSpent(budgetID int64) error {
	spent, err := s.repo.SumExpensesForBudget(budgetID)
	if err != nil {
		return err
	}
	return s.repo.UpdateBudgetSpent(budgetID, spent)
}
