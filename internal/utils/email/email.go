package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bancasol/core-service/internal/config"
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

// SendPaymentReminder sends a payment reminder or overdue notice
func (s *Sender) SendPaymentReminder(to, name string, amount decimal.Decimal, dueDate time.Time, overdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if overdue {
		e.Subject = "Overdue Installment Notice"
	} else {
		e.Subject = "Upcoming Installment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", name)
	if overdue {
		body += fmt.Sprintf(
			"Your installment of %s PEN was due on %s and is now overdue.\n"+
				"Overdue installments lower your credit score. Please pay as soon as possible.\n",
			amount.StringFixed(2), dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your installment of %s PEN is due on %s.\n"+
				"Please ensure sufficient funds are available in your account.\n",
			amount.StringFixed(2), dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nBancaSol"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
