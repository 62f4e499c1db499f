package repository

import (
	"context"
	"fmt"

	"github.com/bancasol/core-service/internal/models"
)

// Store is the document-store contract the data layer depends on.
type Store interface {
	GetAll(ctx context.Context, collection string, out any) error
	Create(ctx context.Context, collection string, record any) error
	Replace(ctx context.Context, collection, id string, record any) error
	Delete(ctx context.Context, collection, id string) error
}

// Collection names in the document store.
const (
	collectionUsers        = "users"
	collectionAccounts     = "accounts"
	collectionCredits      = "credits"
	collectionTransactions = "transactions"
	collectionPayments     = "payments"
	collectionCreditScores = "creditScores"
)

// Repository provides typed access to the store collections
type Repository struct {
	store Store
}

// NewRepository initializes a new repository
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Users retrieves all users
func (r *Repository) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.GetAll(ctx, collectionUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

// CreateUser stores a new user
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.store.Create(ctx, collectionUsers, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Accounts retrieves all bank accounts
func (r *Repository) Accounts(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := r.store.GetAll(ctx, collectionAccounts, &accounts); err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account by id
func (r *Repository) FindAccountByID(ctx context.Context, id string) (*models.BankAccount, error) {
	accounts, err := r.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", id, models.ErrNotFound)
}

// CreateAccount stores a new account
func (r *Repository) CreateAccount(ctx context.Context, account *models.BankAccount) error {
	if err := r.store.Create(ctx, collectionAccounts, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ReplaceAccount overwrites an existing account
func (r *Repository) ReplaceAccount(ctx context.Context, account *models.BankAccount) error {
	if err := r.store.Replace(ctx, collectionAccounts, account.ID, account); err != nil {
		return fmt.Errorf("failed to replace account: %w", err)
	}
	return nil
}

// Credits retrieves all credits
func (r *Repository) Credits(ctx context.Context) ([]models.Credit, error) {
	var credits []models.Credit
	if err := r.store.GetAll(ctx, collectionCredits, &credits); err != nil {
		return nil, fmt.Errorf("failed to fetch credits: %w", err)
	}
	return credits, nil
}

// FindCreditByID retrieves a credit by id
func (r *Repository) FindCreditByID(ctx context.Context, id string) (*models.Credit, error) {
	credits, err := r.Credits(ctx)
	if err != nil {
		return nil, err
	}
	for i := range credits {
		if credits[i].ID == id {
			return &credits[i], nil
		}
	}
	return nil, fmt.Errorf("credit %s: %w", id, models.ErrNotFound)
}

// CreateCredit stores a new credit
func (r *Repository) CreateCredit(ctx context.Context, credit *models.Credit) error {
	if err := r.store.Create(ctx, collectionCredits, credit); err != nil {
		return fmt.Errorf("failed to create credit: %w", err)
	}
	return nil
}

// ReplaceCredit overwrites an existing credit
func (r *Repository) ReplaceCredit(ctx context.Context, credit *models.Credit) error {
	if err := r.store.Replace(ctx, collectionCredits, credit.ID, credit); err != nil {
		return fmt.Errorf("failed to replace credit: %w", err)
	}
	return nil
}

// Payments retrieves all payments
func (r *Repository) Payments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.store.GetAll(ctx, collectionPayments, &payments); err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return payments, nil
}

// FindPaymentByID retrieves a payment by id
func (r *Repository) FindPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	payments, err := r.Payments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == id {
			return &payments[i], nil
		}
	}
	return nil, fmt.Errorf("payment %s: %w", id, models.ErrNotFound)
}

// CreatePayment stores a new payment
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := r.store.Create(ctx, collectionPayments, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ReplacePayment overwrites an existing payment
func (r *Repository) ReplacePayment(ctx context.Context, payment *models.Payment) error {
	if err := r.store.Replace(ctx, collectionPayments, payment.ID, payment); err != nil {
		return fmt.Errorf("failed to replace payment: %w", err)
	}
	return nil
}

// Transactions retrieves all transactions
func (r *Repository) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.store.GetAll(ctx, collectionTransactions, &transactions); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction stores a new transaction record
func (r *Repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := r.store.Create(ctx, collectionTransactions, transaction); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreditScores retrieves all credit score records
func (r *Repository) CreditScores(ctx context.Context) ([]models.CreditScore, error) {
	var scores []models.CreditScore
	if err := r.store.GetAll(ctx, collectionCreditScores, &scores); err != nil {
		return nil, fmt.Errorf("failed to fetch credit scores: %w", err)
	}
	return scores, nil
}

// CreateCreditScore stores a new credit score record
func (r *Repository) CreateCreditScore(ctx context.Context, score *models.CreditScore) error {
	if err := r.store.Create(ctx, collectionCreditScores, score); err != nil {
		return fmt.Errorf("failed to create credit score: %w", err)
	}
	return nil
}

// ReplaceCreditScore overwrites an existing credit score record
func (r *Repository) ReplaceCreditScore(ctx context.Context, score *models.CreditScore) error {
	if err := r.store.Replace(ctx, collectionCreditScores, score.ID, score); err != nil {
		return fmt.Errorf("failed to replace credit score: %w", err)
	}
	return nil
}
