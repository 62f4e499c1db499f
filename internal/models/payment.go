package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses. A payment moves pending -> paid on settlement,
// pending -> overdue when its due date passes unpaid, and overdue -> paid
// on late settlement. Paid is terminal.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Payment represents one installment of a credit's repayment. For each
// credit at most one payment is pending or overdue at any time; all
// lower-numbered installments are paid.
type Payment struct {
	ID            string          `json:"id"`
	CreditID      string          `json:"creditId"`
	UserID        string          `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Status        string          `json:"status"`
	PaymentNumber int             `json:"paymentNumber"`
}

// IsLate reports whether the payment was settled after its due date.
// Lateness is derived from the timestamps, never encoded in Status.
func (p Payment) IsLate() bool {
	return p.PaidAt != nil && p.PaidAt.After(p.DueDate)
}
