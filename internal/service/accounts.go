package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/utils"
)

// AccountTypeConfig holds the per-type parameters for opening an account.
// One lookup table instead of a factory hierarchy: the behavior is pure
// data plus one interest formula.
type AccountTypeConfig struct {
	AnnualRate    decimal.Decimal
	NumberPrefix  string
	InitialStatus string
}

var accountTypes = map[string]AccountTypeConfig{
	models.AccountTypeSavings: {
		AnnualRate:    decimal.NewFromFloat(2.5),
		NumberPrefix:  "0001",
		InitialStatus: models.AccountStatusActive,
	},
	models.AccountTypeChecking: {
		AnnualRate:    decimal.Zero,
		NumberPrefix:  "0002",
		InitialStatus: models.AccountStatusActive,
	},
	// Business accounts require admin approval before use.
	models.AccountTypeBusiness: {
		AnnualRate:    decimal.NewFromFloat(1.5),
		NumberPrefix:  "0003",
		InitialStatus: models.AccountStatusPending,
	},
}

// AccountTypeFor returns the configuration of an account type.
func AccountTypeFor(accountType string) (AccountTypeConfig, bool) {
	cfg, ok := accountTypes[accountType]
	return cfg, ok
}

// AccountTypeInfo describes an account type for API consumers.
type AccountTypeInfo struct {
	Type          string          `json:"type"`
	AnnualRate    decimal.Decimal `json:"annualRate"`
	InitialStatus string          `json:"initialStatus"`
}

// AccountTypeList returns the available account types sorted by name.
func AccountTypeList() []AccountTypeInfo {
	names := make([]string, 0, len(accountTypes))
	for name := range accountTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]AccountTypeInfo, 0, len(names))
	for _, name := range names {
		cfg := accountTypes[name]
		list = append(list, AccountTypeInfo{
			Type:          name,
			AnnualRate:    cfg.AnnualRate,
			InitialStatus: cfg.InitialStatus,
		})
	}
	return list
}

// OpenAccount creates a new bank account for the actor.
func (s *Service) OpenAccount(ctx context.Context, actor Actor, accountType string, initialBalance decimal.Decimal) (*models.BankAccount, error) {
	cfg, ok := AccountTypeFor(accountType)
	if !ok {
		return nil, &models.ValidationError{Reason: "unknown account type: " + accountType}
	}
	if initialBalance.IsNegative() {
		return nil, &models.ValidationError{Reason: "balance cannot be negative"}
	}

	number, err := utils.GenerateAccountNumber(cfg.NumberPrefix)
	if err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		ID:            "acc-" + uuid.NewString(),
		UserID:        actor.UserID,
		Type:          accountType,
		AccountNumber: number,
		Balance:       initialBalance,
		Currency:      "PEN",
		Status:        cfg.InitialStatus,
		InterestRate:  cfg.AnnualRate,
		CreatedAt:     s.now(),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account %s opened for user %s (%s)", account.AccountNumber, actor.UserID, accountType)
	return account, nil
}

// ListAccounts returns all accounts for admins, the actor's own otherwise.
func (s *Service) ListAccounts(ctx context.Context, actor Actor) ([]models.BankAccount, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return accounts, nil
	}
	own := make([]models.BankAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.UserID == actor.UserID {
			own = append(own, a)
		}
	}
	return own, nil
}

// ProjectedInterest estimates simple interest on the account balance over
// the given number of months, rounded to cents. Checking accounts earn
// nothing.
func ProjectedInterest(account models.BankAccount, months int) decimal.Decimal {
	if account.InterestRate.IsZero() || months <= 0 {
		return decimal.Zero
	}
	monthlyRate := account.InterestRate.Div(decimal.NewFromInt(1200))
	return account.Balance.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(months))).Round(2)
}

// AccountInterest projects interest for an account the actor may access.
func (s *Service) AccountInterest(ctx context.Context, actor Actor, accountID string, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, &models.ValidationError{Reason: "months must be positive"}
	}
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := authorize(actor, account.UserID); err != nil {
		return decimal.Zero, err
	}
	return ProjectedInterest(*account, months), nil
}
