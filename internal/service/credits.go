package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/scoring"
)

// RateTier gives the annual rate for amounts below the bound. A zero bound
// marks the open-ended last tier.
type RateTier struct {
	Below decimal.Decimal
	Rate  decimal.Decimal
}

var creditRateTiers = map[string][]RateTier{
	models.CreditTypePersonal: {
		{Below: decimal.NewFromInt(5000), Rate: decimal.NewFromFloat(15.0)},
		{Below: decimal.NewFromInt(15000), Rate: decimal.NewFromFloat(12.5)},
		{Rate: decimal.NewFromFloat(10.0)},
	},
	models.CreditTypeMortgage: {
		{Below: decimal.NewFromInt(100000), Rate: decimal.NewFromFloat(8.5)},
		{Below: decimal.NewFromInt(200000), Rate: decimal.NewFromFloat(7.5)},
		{Rate: decimal.NewFromFloat(6.5)},
	},
	models.CreditTypeBusiness: {
		{Below: decimal.NewFromInt(50000), Rate: decimal.NewFromFloat(14.0)},
		{Below: decimal.NewFromInt(100000), Rate: decimal.NewFromFloat(11.5)},
		{Rate: decimal.NewFromFloat(9.0)},
	},
}

// BaseRate returns the annual rate for a credit type and amount.
func BaseRate(creditType string, amount decimal.Decimal) (decimal.Decimal, bool) {
	tiers, ok := creditRateTiers[creditType]
	if !ok {
		return decimal.Zero, false
	}
	for _, t := range tiers {
		if t.Below.IsZero() || amount.LessThan(t.Below) {
			return t.Rate, true
		}
	}
	return tiers[len(tiers)-1].Rate, true
}

// MonthlyPayment computes the annuity installment for the principal, annual
// rate in percent and term in months, rounded to cents.
func MonthlyPayment(amount, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	term := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return amount.DivRound(term, 2)
	}
	one := decimal.NewFromInt(1)
	monthlyRate := annualRate.Div(decimal.NewFromInt(1200))
	factor := one.Add(monthlyRate).Pow(term)
	return amount.Mul(monthlyRate).Mul(factor).DivRound(factor.Sub(one), 2)
}

// RequestCredit creates a pending credit request for the actor. The actor's
// score is recomputed first and gates the request; a medium level raises
// the rate by the score modifier and the monthly payment follows the
// adjusted rate.
func (s *Service) RequestCredit(ctx context.Context, actor Actor, creditType string, amount decimal.Decimal, termMonths int) (*models.Credit, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &models.ValidationError{Reason: "amount must be positive"}
	}
	if termMonths <= 0 {
		return nil, &models.ValidationError{Reason: "term must be at least one month"}
	}
	rate, ok := BaseRate(creditType, amount)
	if !ok {
		return nil, &models.ValidationError{Reason: "unknown credit type: " + creditType}
	}

	score, err := s.scores.ComputeScore(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if allowed, reason := scoring.CanRequestCredit(score); !allowed {
		return nil, &models.ValidationError{Reason: reason}
	}
	rate = rate.Add(scoring.InterestRateModifier(score.Level))

	credit := &models.Credit{
		ID:                "cred-" + uuid.NewString(),
		UserID:            actor.UserID,
		Type:              creditType,
		Amount:            amount,
		InterestRate:      rate,
		TermMonths:        termMonths,
		MonthlyPayment:    MonthlyPayment(amount, rate, termMonths),
		RemainingPayments: termMonths,
		PaidAmount:        decimal.Zero,
		Status:            models.CreditStatusPending,
		RequestedAt:       s.now(),
	}

	if err := s.repo.CreateCredit(ctx, credit); err != nil {
		return nil, err
	}

	s.log.Infof("Credit requested by user %s: %s %s over %d months at %s%%",
		actor.UserID, creditType, amount, termMonths, rate)
	return credit, nil
}

// ApproveCredit activates a pending credit and schedules its first
// installment, due one calendar month after approval. Admin only.
func (s *Service) ApproveCredit(ctx context.Context, actor Actor, creditID string) (*models.Credit, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrPermissionDenied
	}

	credit, err := s.repo.FindCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit.Status != models.CreditStatusPending {
		return nil, &models.ValidationError{Reason: "only pending credits can be approved"}
	}

	now := s.now()
	credit.Status = models.CreditStatusActive
	credit.ApprovedAt = &now
	if err := s.repo.ReplaceCredit(ctx, credit); err != nil {
		return nil, err
	}

	first := &models.Payment{
		ID:            "pay-" + uuid.NewString(),
		CreditID:      credit.ID,
		UserID:        credit.UserID,
		Amount:        credit.MonthlyPayment,
		DueDate:       now.AddDate(0, 1, 0),
		Status:        models.PaymentStatusPending,
		PaymentNumber: 1,
	}
	if err := s.repo.CreatePayment(ctx, first); err != nil {
		return nil, err
	}

	s.log.Infof("Credit %s approved, first installment due %s", credit.ID, first.DueDate.Format("2006-01-02"))
	return credit, nil
}

// RejectCredit rejects a pending credit with a reason. Admin only.
func (s *Service) RejectCredit(ctx context.Context, actor Actor, creditID, reason string) (*models.Credit, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrPermissionDenied
	}

	credit, err := s.repo.FindCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit.Status != models.CreditStatusPending {
		return nil, &models.ValidationError{Reason: "only pending credits can be rejected"}
	}

	credit.Status = models.CreditStatusRejected
	credit.RejectionReason = reason
	if err := s.repo.ReplaceCredit(ctx, credit); err != nil {
		return nil, err
	}

	s.log.Infof("Credit %s rejected: %s", credit.ID, reason)
	return credit, nil
}

// ListCredits returns all credits for admins, the actor's own otherwise.
func (s *Service) ListCredits(ctx context.Context, actor Actor) ([]models.Credit, error) {
	credits, err := s.repo.Credits(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return credits, nil
	}
	own := make([]models.Credit, 0, len(credits))
	for _, c := range credits {
		if c.UserID == actor.UserID {
			own = append(own, c)
		}
	}
	return own, nil
}
