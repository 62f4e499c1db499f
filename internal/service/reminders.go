package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
)

// Days before the due date at which an upcoming installment triggers a
// reminder email.
const reminderWindowDays = 3

// ReminderSender delivers payment reminder emails.
type ReminderSender interface {
	SendPaymentReminder(to, name string, amount decimal.Decimal, dueDate time.Time, overdue bool) error
}

// SendPaymentReminders emails every user with an installment due within the
// reminder window or already overdue. Delivery failures are logged and do
// not stop the run.
func (s *Service) SendPaymentReminders(ctx context.Context) error {
	if s.sender == nil {
		return nil
	}

	paymentList, err := s.repo.Payments(ctx)
	if err != nil {
		return err
	}
	users, err := s.repo.Users(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, reminderWindowDays)
	sent := 0
	for _, p := range paymentList {
		var overdue bool
		switch {
		case p.Status == models.PaymentStatusOverdue:
			overdue = true
		case p.Status == models.PaymentStatusPending && !p.DueDate.After(cutoff):
			overdue = false
		default:
			continue
		}

		user, ok := byID[p.UserID]
		if !ok {
			s.log.Warnf("Payment %s references unknown user %s", p.ID, p.UserID)
			continue
		}
		if err := s.sender.SendPaymentReminder(user.Email, user.Name, p.Amount, p.DueDate, overdue); err != nil {
			s.log.Errorf("Failed to send reminder to %s: %v", user.Email, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Infof("Sent %d payment reminders", sent)
	}
	return nil
}
