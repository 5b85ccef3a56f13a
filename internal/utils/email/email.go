package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendGoalCompleted congratulates a user on reaching a savings goal
func (s *Sender) SendGoalCompleted(to, username, goalName string, target decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Savings Goal Reached"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Congratulations! You reached your savings goal \"%s\" of %s.\n"+
			"Keep up the momentum and set your next target.\n",
		username, goalName, target.StringFixed(2),
	)
	body += "\nBest regards,\nFinAssist"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendBudgetAlert warns a user that a budget is close to its limit
func (s *Sender) SendBudgetAlert(to, username, budgetName string, spent, amount decimal.Decimal, percentUsed float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Budget Alert"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your budget \"%s\" has reached %.0f%% of its limit.\n"+
			"Spent so far: %s of %s.\n"+
			"Review your upcoming expenses to stay on track.\n",
		username, budgetName, percentUsed, spent.StringFixed(2), amount.StringFixed(2),
	)
	body += "\nBest regards,\nFinAssist"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
