package payments

import (
	"fmt"
	"time"

	"github.com/bancasol/core-service/internal/models"
)

// Eligibility is the outcome of evaluating an installment payment request.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// Evaluate decides whether an installment may be paid now.
//
// Rule A, strict order: the installment's number must be exactly one past
// the count of already-paid installments for the credit. Rule B, monthly
// cadence: if the most recently paid installment was settled in the same
// calendar month and year as now, the payment is rejected until the first
// day of the next month. Rule A is checked first.
func Evaluate(payment models.Payment, creditPayments []models.Payment, now time.Time) Eligibility {
	paidCount := 0
	var lastPaid *models.Payment
	for i := range creditPayments {
		p := &creditPayments[i]
		if p.CreditID != payment.CreditID || p.Status != models.PaymentStatusPaid {
			continue
		}
		paidCount++
		if p.PaidAt == nil {
			continue
		}
		if lastPaid == nil || p.PaidAt.After(*lastPaid.PaidAt) {
			lastPaid = p
		}
	}

	if payment.PaymentNumber != paidCount+1 {
		return Eligibility{Reason: "installments must be paid in order"}
	}

	if lastPaid != nil {
		lastYear, lastMonth, _ := lastPaid.PaidAt.Date()
		year, month, _ := now.Date()
		if lastYear == year && lastMonth == month {
			nextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location())
			return Eligibility{Reason: fmt.Sprintf(
				"already paid this month, next payment available on %s",
				nextMonth.Format("2006-01-02"),
			)}
		}
	}

	return Eligibility{Eligible: true}
}
