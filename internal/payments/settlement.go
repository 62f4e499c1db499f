package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bancasol/core-service/internal/models"
)

// DataStore is the data access settlement needs. *repository.Repository
// satisfies it.
type DataStore interface {
	Payments(ctx context.Context) ([]models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ReplacePayment(ctx context.Context, payment *models.Payment) error
	FindCreditByID(ctx context.Context, id string) (*models.Credit, error)
	ReplaceCredit(ctx context.Context, credit *models.Credit) error
}

// ScoreRecomputer recomputes a user's credit score. Recomputation is a
// required final step of every successful settlement.
type ScoreRecomputer interface {
	ComputeScore(ctx context.Context, userID string) (*models.CreditScore, error)
}

// Settlement is the result of a successful installment payment.
type Settlement struct {
	Payment     *models.Payment `json:"payment"`
	Credit      *models.Credit  `json:"credit"`
	NextPayment *models.Payment `json:"nextPayment,omitempty"`
}

// Settler applies installment payments and runs the overdue sweep.
type Settler struct {
	data   DataStore
	scores ScoreRecomputer
	log    *logrus.Logger
	now    func() time.Time
}

// NewSettler initializes a new settler
func NewSettler(data DataStore, scores ScoreRecomputer, log *logrus.Logger) *Settler {
	return &Settler{data: data, scores: scores, log: log, now: time.Now}
}

// WithNow overrides the settler's clock. Used by tests.
func (s *Settler) WithNow(now func() time.Time) *Settler {
	s.now = now
	return s
}

// Settle applies the installment with the given id. The eligibility check
// is a precondition: an ineligible payment fails the call before any write.
//
// On acceptance the payment becomes paid (lateness is derived from the
// timestamps, never encoded in the status), the credit's paid amount grows
// and its remaining count shrinks, completing the credit at zero; while
// installments remain, exactly one successor is created due one calendar
// month from now. The payer's score is then recomputed. The write sequence
// is not transactional: a store failure aborts the remaining steps and
// leaves the earlier writes in place.
func (s *Settler) Settle(ctx context.Context, paymentID string) (*Settlement, error) {
	all, err := s.data.Payments(ctx)
	if err != nil {
		return nil, err
	}

	var payment *models.Payment
	var creditPayments []models.Payment
	for i := range all {
		if all[i].ID == paymentID {
			payment = &all[i]
		}
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, models.ErrNotFound)
	}
	for _, p := range all {
		if p.CreditID == payment.CreditID {
			creditPayments = append(creditPayments, p)
		}
	}

	now := s.now()
	if elig := Evaluate(*payment, creditPayments, now); !elig.Eligible {
		return nil, &models.ValidationError{Reason: elig.Reason}
	}

	credit, err := s.data.FindCreditByID(ctx, payment.CreditID)
	if err != nil {
		return nil, err
	}

	paidAt := now
	payment.PaidAt = &paidAt
	payment.Status = models.PaymentStatusPaid
	if err := s.data.ReplacePayment(ctx, payment); err != nil {
		return nil, err
	}

	credit.PaidAmount = credit.PaidAmount.Add(payment.Amount)
	credit.RemainingPayments--
	if credit.RemainingPayments == 0 {
		credit.Status = models.CreditStatusCompleted
	}
	if err := s.data.ReplaceCredit(ctx, credit); err != nil {
		return nil, err
	}

	var next *models.Payment
	if credit.RemainingPayments > 0 {
		next = &models.Payment{
			ID:            "pay-" + uuid.NewString(),
			CreditID:      credit.ID,
			UserID:        payment.UserID,
			Amount:        credit.MonthlyPayment,
			DueDate:       now.AddDate(0, 1, 0),
			Status:        models.PaymentStatusPending,
			PaymentNumber: payment.PaymentNumber + 1,
		}
		if err := s.data.CreatePayment(ctx, next); err != nil {
			return nil, err
		}
	}

	if _, err := s.scores.ComputeScore(ctx, payment.UserID); err != nil {
		return nil, fmt.Errorf("payment settled but score recompute failed: %w", err)
	}

	if payment.IsLate() {
		s.log.Warnf("Late payment %d settled for credit %s", payment.PaymentNumber, credit.ID)
	} else {
		s.log.Infof("Payment %d settled for credit %s", payment.PaymentNumber, credit.ID)
	}
	return &Settlement{Payment: payment, Credit: credit, NextPayment: next}, nil
}

// SweepOverdue transitions every pending payment whose due date has passed
// to overdue and returns how many were transitioned.
func (s *Settler) SweepOverdue(ctx context.Context) (int, error) {
	all, err := s.data.Payments(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	swept := 0
	for i := range all {
		p := &all[i]
		if p.Status != models.PaymentStatusPending || !p.DueDate.Before(now) {
			continue
		}
		p.Status = models.PaymentStatusOverdue
		if err := s.data.ReplacePayment(ctx, p); err != nil {
			return swept, err
		}
		swept++
	}

	if swept > 0 {
		s.log.Infof("Marked %d payments overdue", swept)
	}
	return swept, nil
}
