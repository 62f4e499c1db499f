package scoring_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/repository"
	"github.com/bancasol/core-service/internal/scoring"
	"github.com/bancasol/core-service/internal/store"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) (*scoring.Engine, *repository.Repository, *store.Fake) {
	t.Helper()
	fake := store.NewFake()
	repo := repository.NewRepository(fake)
	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := scoring.NewEngine(repo, log).WithNow(func() time.Time { return testNow })
	return engine, repo, fake
}

func seedPayment(t *testing.T, repo *repository.Repository, userID, status string, due time.Time, paidAt *time.Time) {
	t.Helper()
	err := repo.CreatePayment(context.Background(), &models.Payment{
		ID:       "pay-" + userID + "-" + status + "-" + due.Format("20060102150405.000000000"),
		CreditID: "cred-" + userID,
		UserID:   userID,
		Amount:   decimal.NewFromInt(250),
		DueDate:  due,
		PaidAt:   paidAt,
		Status:   status,
	})
	require.NoError(t, err)
}

func seedPaidOnTime(t *testing.T, repo *repository.Repository, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		due := testNow.AddDate(0, -1, -i)
		paidAt := due.AddDate(0, 0, -1)
		seedPayment(t, repo, userID, models.PaymentStatusPaid, due, &paidAt)
	}
}

func TestComputeScore_OverduePayments(t *testing.T) {
	t.Run("one overdue payment -> 330, bad", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -10), nil)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 330, score.Score)
		assert.Equal(t, models.ScoreLevelBad, score.Level)
		assert.True(t, score.PastDebtProblems)
		assert.Equal(t, 1, score.LatePayments)
	})

	t.Run("many overdue payments floor at the bad base", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		for i := 0; i < 10; i++ {
			seedPayment(t, repo, "u1", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -10-i), nil)
		}

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 250, score.Score)
		assert.Equal(t, models.ScoreLevelBad, score.Level)
	})

	t.Run("overdue takes priority over due-soon", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -10), nil)
		seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 3), nil)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, models.ScoreLevelBad, score.Level)
	})
}

func TestComputeScore_DueSoon(t *testing.T) {
	t.Run("pending in 3 days with 10 on-time -> 600, medium", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 3), nil)
		seedPaidOnTime(t, repo, "u1", 10)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 600, score.Score)
		assert.Equal(t, models.ScoreLevelMedium, score.Level)
		assert.Equal(t, 10, score.OnTimePayments)
	})

	t.Run("due exactly seven days out counts as due soon", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 7), nil)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, models.ScoreLevelMedium, score.Level)
	})

	t.Run("due in eight days is not due soon", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 8), nil)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, models.ScoreLevelGood, score.Level)
	})

	t.Run("medium bonus caps at 100", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 3), nil)
		seedPaidOnTime(t, repo, "u1", 40)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 650, score.Score)
	})
}

func TestComputeScore_Good(t *testing.T) {
	t.Run("80 on-time payments -> 900, good", func(t *testing.T) {
		engine, repo, _ := newEngine(t)
		seedPaidOnTime(t, repo, "u1", 80)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 900, score.Score)
		assert.Equal(t, models.ScoreLevelGood, score.Level)
		assert.False(t, score.PastDebtProblems)
	})

	t.Run("empty history is good at the base", func(t *testing.T) {
		engine, _, _ := newEngine(t)

		score, err := engine.ComputeScore(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 750, score.Score)
		assert.Equal(t, models.ScoreLevelGood, score.Level)
	})
}

func TestComputeScore_Range(t *testing.T) {
	histories := map[string]func(t *testing.T, repo *repository.Repository){
		"heavy overdue": func(t *testing.T, repo *repository.Repository) {
			for i := 0; i < 25; i++ {
				seedPayment(t, repo, "u1", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -i-1), nil)
			}
		},
		"heavy on-time": func(t *testing.T, repo *repository.Repository) {
			seedPaidOnTime(t, repo, "u1", 200)
		},
		"mixed": func(t *testing.T, repo *repository.Repository) {
			seedPaidOnTime(t, repo, "u1", 30)
			late := testNow.AddDate(0, -2, 0)
			seedPayment(t, repo, "u1", models.PaymentStatusPaid, late.AddDate(0, 0, -5), &late)
			seedPayment(t, repo, "u1", models.PaymentStatusPending, testNow.AddDate(0, 0, 5), nil)
		},
	}
	for name, seed := range histories {
		t.Run(name, func(t *testing.T) {
			engine, repo, _ := newEngine(t)
			seed(t, repo)

			score, err := engine.ComputeScore(context.Background(), "u1")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score.Score, 0)
			assert.LessOrEqual(t, score.Score, 1000)
		})
	}
}

func TestComputeScore_Counters(t *testing.T) {
	engine, repo, _ := newEngine(t)
	ctx := context.Background()

	// A late-but-paid payment and an overdue one both count as late.
	latePaidAt := testNow.AddDate(0, -1, 0)
	seedPayment(t, repo, "u1", models.PaymentStatusPaid, latePaidAt.AddDate(0, 0, -3), &latePaidAt)
	seedPayment(t, repo, "u1", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -20), nil)

	// Active and approved credits are debts; a rejected one is not. One
	// request falls outside the six-month window.
	seedCredit := func(id, status string, requestedAt time.Time) {
		require.NoError(t, repo.CreateCredit(ctx, &models.Credit{
			ID: id, UserID: "u1", Type: models.CreditTypePersonal,
			Amount: decimal.NewFromInt(5000), Status: status, RequestedAt: requestedAt,
		}))
	}
	seedCredit("c1", models.CreditStatusActive, testNow.AddDate(0, -1, 0))
	seedCredit("c2", models.CreditStatusApproved, testNow.AddDate(0, -2, 0))
	seedCredit("c3", models.CreditStatusRejected, testNow.AddDate(0, -3, 0))
	seedCredit("c4", models.CreditStatusCompleted, testNow.AddDate(0, -7, 0))

	score, err := engine.ComputeScore(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, score.LatePayments)
	assert.Equal(t, 2, score.ActiveDebts)
	assert.True(t, score.PastDebtProblems)
	assert.Equal(t, 3, score.CreditRequestsLast6Months)
}

func TestComputeScore_IgnoresOtherUsers(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedPayment(t, repo, "u2", models.PaymentStatusOverdue, testNow.AddDate(0, 0, -10), nil)

	score, err := engine.ComputeScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ScoreLevelGood, score.Level)
}

func TestComputeScore_Idempotent(t *testing.T) {
	engine, repo, fake := newEngine(t)
	ctx := context.Background()
	seedPaidOnTime(t, repo, "u1", 5)

	first, err := engine.ComputeScore(ctx, "u1")
	require.NoError(t, err)
	second, err := engine.ComputeScore(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.ID, second.ID, "score record id must stay stable across updates")
	assert.Equal(t, 1, fake.Count("creditScores"), "recompute must replace, not duplicate")
}

func TestComputeScore_StoreFailure(t *testing.T) {
	engine, _, fake := newEngine(t)
	fake.Err = assert.AnError

	_, err := engine.ComputeScore(context.Background(), "u1")
	require.Error(t, err)
	var storeErr *store.Error
	assert.ErrorAs(t, err, &storeErr)
}

func TestUserScore(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.UserScore(ctx, "u1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	computed, err := engine.ComputeScore(ctx, "u1")
	require.NoError(t, err)

	stored, err := engine.UserScore(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, computed.ID, stored.ID)
	assert.Equal(t, computed.Score, stored.Score)
}
