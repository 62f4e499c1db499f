package service

import (
	"context"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/payments"
)

// PayInstallment settles an installment on behalf of the actor. Ownership
// is checked before the eligibility rules run.
func (s *Service) PayInstallment(ctx context.Context, actor Actor, paymentID string) (*payments.Settlement, error) {
	payment, err := s.repo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, payment.UserID); err != nil {
		return nil, err
	}
	return s.settler.Settle(ctx, paymentID)
}

// EvaluateInstallment reports whether an installment could be paid now,
// without settling it.
func (s *Service) EvaluateInstallment(ctx context.Context, actor Actor, paymentID string) (payments.Eligibility, error) {
	payment, err := s.repo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return payments.Eligibility{}, err
	}
	if err := authorize(actor, payment.UserID); err != nil {
		return payments.Eligibility{}, err
	}

	all, err := s.repo.Payments(ctx)
	if err != nil {
		return payments.Eligibility{}, err
	}
	var creditPayments []models.Payment
	for _, p := range all {
		if p.CreditID == payment.CreditID {
			creditPayments = append(creditPayments, p)
		}
	}
	return payments.Evaluate(*payment, creditPayments, s.now()), nil
}

// ListPayments sweeps overdue installments, then returns all payments for
// admins or the actor's own otherwise. Sweeping on load keeps listed
// statuses current between scheduled sweeps.
func (s *Service) ListPayments(ctx context.Context, actor Actor) ([]models.Payment, error) {
	if _, err := s.settler.SweepOverdue(ctx); err != nil {
		return nil, err
	}

	all, err := s.repo.Payments(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return all, nil
	}
	own := make([]models.Payment, 0, len(all))
	for _, p := range all {
		if p.UserID == actor.UserID {
			own = append(own, p)
		}
	}
	return own, nil
}
