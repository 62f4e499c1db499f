package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types
const (
	AccountTypeSavings  = "savings"
	AccountTypeChecking = "checking"
	AccountTypeBusiness = "business"
)

// Account statuses
const (
	AccountStatusActive    = "active"
	AccountStatusInactive  = "inactive"
	AccountStatusSuspended = "suspended"
	AccountStatusPending   = "pending"
)

// BankAccount represents a bank account
type BankAccount struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	CreatedAt     time.Time       `json:"createdAt"`
}
