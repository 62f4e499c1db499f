package service_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/service"
)

func TestOpenAccount(t *testing.T) {
	t.Run("savings opens active with interest", func(t *testing.T) {
		env := newTestService(t)
		account, err := env.svc.OpenAccount(context.Background(), asUser, models.AccountTypeSavings, decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.Equal(t, "u1", account.UserID)
		assert.Equal(t, models.AccountStatusActive, account.Status)
		assert.Equal(t, "PEN", account.Currency)
		assert.True(t, account.InterestRate.Equal(decimal.NewFromFloat(2.5)))
		assert.Regexp(t, regexp.MustCompile(`^0001-\d{4}-\d{4}-\d{4}$`), account.AccountNumber)
	})

	t.Run("checking earns no interest", func(t *testing.T) {
		env := newTestService(t)
		account, err := env.svc.OpenAccount(context.Background(), asUser, models.AccountTypeChecking, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, account.InterestRate.IsZero())
		assert.Equal(t, models.AccountStatusActive, account.Status)
	})

	t.Run("business starts pending approval", func(t *testing.T) {
		env := newTestService(t)
		account, err := env.svc.OpenAccount(context.Background(), asUser, models.AccountTypeBusiness, decimal.NewFromInt(10000))
		require.NoError(t, err)
		assert.Equal(t, models.AccountStatusPending, account.Status)
	})

	t.Run("rejects unknown type and negative balance", func(t *testing.T) {
		env := newTestService(t)
		ctx := context.Background()
		var validationErr *models.ValidationError

		_, err := env.svc.OpenAccount(ctx, asUser, "offshore", decimal.NewFromInt(100))
		assert.ErrorAs(t, err, &validationErr)

		_, err = env.svc.OpenAccount(ctx, asUser, models.AccountTypeSavings, decimal.NewFromInt(-1))
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 0, env.fake.Count("accounts"))
	})
}

func TestListAccounts(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	_, err := env.svc.OpenAccount(ctx, asUser, models.AccountTypeSavings, decimal.NewFromInt(500))
	require.NoError(t, err)
	_, err = env.svc.OpenAccount(ctx, asOther, models.AccountTypeChecking, decimal.Zero)
	require.NoError(t, err)

	own, err := env.svc.ListAccounts(ctx, asUser)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "u1", own[0].UserID)

	all, err := env.svc.ListAccounts(ctx, asAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAccountTypeList(t *testing.T) {
	list := service.AccountTypeList()
	require.Len(t, list, 3)
	assert.Equal(t, models.AccountTypeBusiness, list[0].Type)
	assert.Equal(t, models.AccountTypeChecking, list[1].Type)
	assert.Equal(t, models.AccountTypeSavings, list[2].Type)
	assert.True(t, list[2].AnnualRate.Equal(decimal.NewFromFloat(2.5)))
	assert.Equal(t, models.AccountStatusPending, list[0].InitialStatus)
}

func TestAccountInterest(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	account, err := env.svc.OpenAccount(ctx, asUser, models.AccountTypeSavings, decimal.NewFromInt(1000))
	require.NoError(t, err)

	t.Run("owner projects interest", func(t *testing.T) {
		got, err := env.svc.AccountInterest(ctx, asUser, account.ID, 12)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
	})

	t.Run("admins may project any account", func(t *testing.T) {
		_, err := env.svc.AccountInterest(ctx, asAdmin, account.ID, 12)
		assert.NoError(t, err)
	})

	t.Run("strangers are denied", func(t *testing.T) {
		_, err := env.svc.AccountInterest(ctx, asOther, account.ID, 12)
		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("rejects a non-positive horizon", func(t *testing.T) {
		_, err := env.svc.AccountInterest(ctx, asUser, account.ID, 0)
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := env.svc.AccountInterest(ctx, asUser, "nope", 12)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestProjectedInterest(t *testing.T) {
	savings := models.BankAccount{
		Balance:      decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(2.5),
	}
	got := service.ProjectedInterest(savings, 12)
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)

	checking := models.BankAccount{Balance: decimal.NewFromInt(1000)}
	assert.True(t, service.ProjectedInterest(checking, 12).IsZero())

	assert.True(t, service.ProjectedInterest(savings, 0).IsZero())
}
