package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit types
const (
	CreditTypePersonal = "personal"
	CreditTypeMortgage = "mortgage"
	CreditTypeBusiness = "business"
)

// Credit statuses. A credit moves pending -> active on admin approval or
// pending -> rejected, and active -> completed once fully paid.
const (
	CreditStatusPending   = "pending"
	CreditStatusApproved  = "approved"
	CreditStatusActive    = "active"
	CreditStatusRejected  = "rejected"
	CreditStatusCompleted = "completed"
)

// Credit represents a credit in the system
type Credit struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	TermMonths        int             `json:"term"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	RemainingPayments int             `json:"remainingPayments"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	Status            string          `json:"status"`
	RequestedAt       time.Time       `json:"requestedAt"`
	ApprovedAt        *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason   string          `json:"rejectionReason,omitempty"`
}

// IsDebt reports whether the credit counts as an active debt for scoring.
func (c Credit) IsDebt() bool {
	return c.Status == CreditStatusActive || c.Status == CreditStatusApproved
}
