package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/villagebank/village-bank-service/internal/config"
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

// SendOverdueReminder notifies a member that a loan has passed its repayment
// window and what balance remains.
func (s *Sender) SendOverdueReminder(to, name string, loanCreatedAt time.Time, balance float64, currency string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Overdue Loan Notification"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"The loan issued to you on %s is now overdue.\n"+
			"Outstanding balance: %.2f %s.\n"+
			"Please repay as soon as possible to avoid penalties.\n"+
			"\nBest regards,\nVillage Bank",
		name, loanCreatedAt.Format("2006-01-02"), balance, currency,
	)
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send overdue reminder to %s: %v", to, err)
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendSavingReceipt confirms a recorded contribution and the interest fixed on
// it.
func (s *Sender) SendSavingReceipt(to, name string, amount, expectedInterest float64, currency string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Contribution Received"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your contribution of %.2f %s has been recorded.\n"+
			"Recorded at: %s\n"+
			"Expected interest at cycle end: %.2f %s\n"+
			"\nBest regards,\nVillage Bank",
		name, amount, currency, time.Now().Format("2006-01-02 15:04:05"), expectedInterest, currency,
	)
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send saving receipt to %s: %v", to, err)
		return fmt.Errorf("failed to send saving receipt: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}
