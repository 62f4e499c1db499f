package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
)

// Deposit credits an account balance and records the transaction.
func (s *Service) Deposit(ctx context.Context, actor Actor, accountID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	account, err := s.activeAccount(ctx, actor, accountID)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &models.ValidationError{Reason: "amount must be positive"}
	}

	account.Balance = account.Balance.Add(amount)
	if err := s.repo.ReplaceAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.recordTransaction(ctx, models.TransactionTypeDeposit, account.ID, "", amount, description)
}

// Withdraw debits an account balance and records the transaction. A
// resulting negative balance is rejected.
func (s *Service) Withdraw(ctx context.Context, actor Actor, accountID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	account, err := s.activeAccount(ctx, actor, accountID)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &models.ValidationError{Reason: "amount must be positive"}
	}
	if account.Balance.LessThan(amount) {
		return nil, &models.ValidationError{Reason: "insufficient funds"}
	}

	account.Balance = account.Balance.Sub(amount)
	if err := s.repo.ReplaceAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.recordTransaction(ctx, models.TransactionTypeWithdrawal, account.ID, "", amount, description)
}

// Transfer moves funds between two accounts: two independent balance
// updates plus one transaction record carrying the destination account.
// The sequence is not transactional (see the settlement notes); a store
// failure between the two balance writes leaves partial state.
func (s *Service) Transfer(ctx context.Context, actor Actor, fromID, toID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if fromID == toID {
		return nil, &models.ValidationError{Reason: "cannot transfer to the same account"}
	}

	from, err := s.activeAccount(ctx, actor, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.repo.FindAccountByID(ctx, toID)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &models.ValidationError{Reason: "amount must be positive"}
	}
	if from.Balance.LessThan(amount) {
		return nil, &models.ValidationError{Reason: "insufficient funds"}
	}

	from.Balance = from.Balance.Sub(amount)
	if err := s.repo.ReplaceAccount(ctx, from); err != nil {
		return nil, err
	}
	to.Balance = to.Balance.Add(amount)
	if err := s.repo.ReplaceAccount(ctx, to); err != nil {
		return nil, err
	}

	return s.recordTransaction(ctx, models.TransactionTypeTransfer, from.ID, to.ID, amount, description)
}

// ListTransactions returns the transactions visible to the actor: all for
// admins, those touching the actor's accounts otherwise.
func (s *Service) ListTransactions(ctx context.Context, actor Actor) ([]models.Transaction, error) {
	transactions, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return transactions, nil
	}

	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a.UserID == actor.UserID {
			owned[a.ID] = true
		}
	}

	own := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if owned[t.AccountID] || owned[t.ToAccountID] {
			own = append(own, t)
		}
	}
	return own, nil
}

// activeAccount loads an account, checks ownership-or-admin and requires
// the account to be active.
func (s *Service) activeAccount(ctx context.Context, actor Actor, accountID string) (*models.BankAccount, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, account.UserID); err != nil {
		return nil, err
	}
	if account.Status != models.AccountStatusActive {
		return nil, &models.ValidationError{Reason: "account is not active"}
	}
	return account, nil
}

func (s *Service) recordTransaction(ctx context.Context, txType, accountID, toAccountID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	transaction := &models.Transaction{
		ID:          "txn-" + uuid.NewString(),
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        s.now(),
		Status:      models.TransactionStatusCompleted,
		ToAccountID: toAccountID,
	}
	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction %s: %s %s on account %s", transaction.ID, txType, amount, accountID)
	return transaction, nil
}
