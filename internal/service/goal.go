package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/gamification"
	"github.com/finassist/finassist/internal/models"
	"github.com/finassist/finassist/internal/repository"
	"github.com/finassist/finassist/internal/utils/email"
)

// Points awarded by savings-goal milestones
const (
	PointsGoalCreated   = 10
	PointsGoalCompleted = 50
)

// SavingsGoalService handles savings-goal CRUD, contributions and the
// completion milestone.
type SavingsGoalService struct {
	repo     *repository.Repository
	game     *gamification.Engine
	notifier *email.Sender
	log      *logrus.Logger
}

// NewSavingsGoalService initializes the savings-goal service
func NewSavingsGoalService(repo *repository.Repository, game *gamification.Engine, notifier *email.Sender, log *logrus.Logger) *SavingsGoalService {
	return &SavingsGoalService{repo: repo, game: game, notifier: notifier, log: log}
}

// CreateGoal creates a savings goal and awards the creation points
func (s *SavingsGoalService) CreateGoal(userID int64, goal *models.SavingsGoal) (*models.SavingsGoal, error) {
	goal.UserID = userID
	goal.Completed = false
	if goal.CurrentAmount.IsNegative() {
		goal.CurrentAmount = decimal.Zero
	}
	if err := s.repo.CreateSavingsGoal(goal); err != nil {
		return nil, err
	}

	if _, err := s.game.AddPoints(userID, PointsGoalCreated); err != nil {
		return nil, err
	}

	s.log.Infof("Savings goal created for user %d: %s target %s", userID, goal.Name, goal.TargetAmount)
	return goal, nil
}

// GetUserGoals lists all savings goals of the user
func (s *SavingsGoalService) GetUserGoals(userID int64) ([]models.SavingsGoal, error) {
	return s.repo.FindSavingsGoalsByUser(userID)
}

// UpdateGoal updates a goal owned by the user
func (s *SavingsGoalService) UpdateGoal(userID, goalID int64, update *models.SavingsGoal) (*models.SavingsGoal, error) {
	goal, err := s.repo.FindSavingsGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}

	goal.Name = update.Name
	goal.Description = update.Description
	goal.TargetAmount = update.TargetAmount
	goal.TargetDate = update.TargetDate

	if err := s.repo.UpdateSavingsGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal owned by the user
func (s *SavingsGoalService) DeleteGoal(userID, goalID int64) error {
	goal, err := s.repo.FindSavingsGoalByID(goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteSavingsGoal(goalID)
}

// Contribute adds an amount to a goal's balance. Reaching the target marks
// the goal completed, awards the completion points and notifies the owner.
func (s *SavingsGoalService) Contribute(userID, goalID int64, amount decimal.Decimal) (*models.SavingsGoal, error) {
	goal, err := s.repo.FindSavingsGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	justCompleted := !goal.Completed && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	if justCompleted {
		goal.Completed = true
	}

	if err := s.repo.UpdateSavingsGoal(goal); err != nil {
		return nil, err
	}

	if justCompleted {
		if _, err := s.game.AddPoints(userID, PointsGoalCompleted); err != nil {
			return nil, err
		}

		notification := &models.Notification{
			UserID:       userID,
			Title:        "Goal reached",
			Message:      "Congratulations, you reached your savings goal \"" + goal.Name + "\"",
			Type:         "GOAL_COMPLETED",
			ScheduledFor: time.Now(),
		}
		if err := s.repo.CreateNotification(notification); err != nil {
			return nil, err
		}

		user, err := s.repo.FindUserByID(userID)
		if err != nil {
			return nil, err
		}
		if err := s.notifier.SendGoalCompleted(user.Email, user.Username, goal.Name, goal.TargetAmount); err != nil {
			s.log.Warnf("Goal completion email to %s failed: %v", user.Email, err)
		}

		s.log.Infof("Savings goal %d completed by user %d", goalID, userID)
	}

	return goal, nil
}
