package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/service"
)

func openAccount(t *testing.T, env *testEnv, actor service.Actor, balance int64) *models.BankAccount {
	t.Helper()
	account, err := env.svc.OpenAccount(context.Background(), actor, models.AccountTypeSavings, decimal.NewFromInt(balance))
	require.NoError(t, err)
	return account
}

func balanceOf(t *testing.T, env *testEnv, accountID string) decimal.Decimal {
	t.Helper()
	account, err := env.repo.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return account.Balance
}

func TestDeposit(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	account := openAccount(t, env, asUser, 100)

	tx, err := env.svc.Deposit(ctx, asUser, account.ID, decimal.NewFromInt(50), "payday")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeDeposit, tx.Type)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, account.ID, tx.AccountID)
	assert.True(t, balanceOf(t, env, account.ID).Equal(decimal.NewFromInt(150)))

	_, err = env.svc.Deposit(ctx, asUser, account.ID, decimal.Zero, "")
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestWithdraw(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	account := openAccount(t, env, asUser, 100)

	tx, err := env.svc.Withdraw(ctx, asUser, account.ID, decimal.NewFromInt(40), "groceries")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeWithdrawal, tx.Type)
	assert.True(t, balanceOf(t, env, account.ID).Equal(decimal.NewFromInt(60)))

	_, err = env.svc.Withdraw(ctx, asUser, account.ID, decimal.NewFromInt(1000), "too much")
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "insufficient funds", validationErr.Reason)
	assert.True(t, balanceOf(t, env, account.ID).Equal(decimal.NewFromInt(60)))
}

func TestTransfer(t *testing.T) {
	t.Run("moves funds and records the destination", func(t *testing.T) {
		env := newTestService(t)
		ctx := context.Background()
		from := openAccount(t, env, asUser, 100)
		to := openAccount(t, env, asOther, 0)

		tx, err := env.svc.Transfer(ctx, asUser, from.ID, to.ID, decimal.NewFromInt(75), "rent")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionTypeTransfer, tx.Type)
		assert.Equal(t, from.ID, tx.AccountID)
		assert.Equal(t, to.ID, tx.ToAccountID)
		assert.True(t, balanceOf(t, env, from.ID).Equal(decimal.NewFromInt(25)))
		assert.True(t, balanceOf(t, env, to.ID).Equal(decimal.NewFromInt(75)))
	})

	t.Run("rejects a self-transfer", func(t *testing.T) {
		env := newTestService(t)
		account := openAccount(t, env, asUser, 100)
		_, err := env.svc.Transfer(context.Background(), asUser, account.ID, account.ID, decimal.NewFromInt(10), "")
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects insufficient funds before any write", func(t *testing.T) {
		env := newTestService(t)
		ctx := context.Background()
		from := openAccount(t, env, asUser, 10)
		to := openAccount(t, env, asOther, 0)

		_, err := env.svc.Transfer(ctx, asUser, from.ID, to.ID, decimal.NewFromInt(50), "")
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.True(t, balanceOf(t, env, from.ID).Equal(decimal.NewFromInt(10)))
		assert.True(t, balanceOf(t, env, to.ID).IsZero())
		assert.Equal(t, 0, env.fake.Count("transactions"))
	})
}

func TestAccountAccessRules(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	account := openAccount(t, env, asUser, 100)

	t.Run("strangers cannot touch the account", func(t *testing.T) {
		_, err := env.svc.Deposit(ctx, asOther, account.ID, decimal.NewFromInt(10), "")
		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("admins can", func(t *testing.T) {
		_, err := env.svc.Deposit(ctx, asAdmin, account.ID, decimal.NewFromInt(10), "adjustment")
		assert.NoError(t, err)
	})

	t.Run("inactive accounts reject operations", func(t *testing.T) {
		pending, err := env.svc.OpenAccount(ctx, asUser, models.AccountTypeBusiness, decimal.NewFromInt(1000))
		require.NoError(t, err)

		_, err = env.svc.Deposit(ctx, asUser, pending.ID, decimal.NewFromInt(10), "")
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "account is not active", validationErr.Reason)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := env.svc.Deposit(ctx, asUser, "nope", decimal.NewFromInt(10), "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	mine := openAccount(t, env, asUser, 100)
	theirs := openAccount(t, env, asOther, 100)

	_, err := env.svc.Deposit(ctx, asUser, mine.ID, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	_, err = env.svc.Withdraw(ctx, asOther, theirs.ID, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	// Incoming transfers are visible to the receiving side too.
	_, err = env.svc.Transfer(ctx, asOther, theirs.ID, mine.ID, decimal.NewFromInt(5), "")
	require.NoError(t, err)

	own, err := env.svc.ListTransactions(ctx, asUser)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := env.svc.ListTransactions(ctx, asAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
