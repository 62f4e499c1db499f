package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bancasol/core-service/internal/models"
)

// Score bases for the three classification branches and the window in which
// a pending payment counts as "due soon".
const (
	badBase    = 250
	mediumBase = 550
	goodBase   = 750

	dueSoonDays = 7
)

// DataStore is the data access the engine needs. *repository.Repository
// satisfies it.
type DataStore interface {
	Credits(ctx context.Context) ([]models.Credit, error)
	Payments(ctx context.Context) ([]models.Payment, error)
	CreditScores(ctx context.Context) ([]models.CreditScore, error)
	CreateCreditScore(ctx context.Context, score *models.CreditScore) error
	ReplaceCreditScore(ctx context.Context, score *models.CreditScore) error
}

// Engine computes and persists credit scores.
//
// Classification is priority-ordered: any overdue payment makes the level
// bad, otherwise any pending payment due within seven days makes it medium,
// otherwise the level is good. The numeric score starts from the branch
// base and moves with the user's payment counters, clamped to [0, 1000].
type Engine struct {
	data DataStore
	log  *logrus.Logger
	now  func() time.Time
}

// NewEngine initializes a new scoring engine
func NewEngine(data DataStore, log *logrus.Logger) *Engine {
	return &Engine{data: data, log: log, now: time.Now}
}

// WithNow overrides the engine's clock. Used by tests.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ComputeScore recalculates the score record for a user from the full
// credit and payment history and persists it, replacing any existing record
// for the user (the record id stays stable across updates). A store failure
// propagates to the caller; nothing is retried.
func (e *Engine) ComputeScore(ctx context.Context, userID string) (*models.CreditScore, error) {
	credits, err := e.data.Credits(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := e.data.Payments(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := e.data.CreditScores(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()

	var userCredits []models.Credit
	for _, c := range credits {
		if c.UserID == userID {
			userCredits = append(userCredits, c)
		}
	}
	var userPayments []models.Payment
	for _, p := range payments {
		if p.UserID == userID {
			userPayments = append(userPayments, p)
		}
	}

	overdue, onTime, late, pendingSoon := countPayments(userPayments, now)

	var score int
	var level string
	switch {
	case overdue > 0:
		level = models.ScoreLevelBad
		score = badBase + max(0, 100-20*overdue)
	case pendingSoon > 0:
		level = models.ScoreLevelMedium
		score = mediumBase + min(100, 5*onTime)
	default:
		level = models.ScoreLevelGood
		score = goodBase + min(150, 2*onTime)
	}
	score = min(1000, max(0, score))

	activeDebts := 0
	for _, c := range userCredits {
		if c.IsDebt() {
			activeDebts++
		}
	}

	sixMonthsAgo := now.AddDate(0, -6, 0)
	recentRequests := 0
	for _, c := range userCredits {
		if !c.RequestedAt.Before(sixMonthsAgo) {
			recentRequests++
		}
	}

	record := &models.CreditScore{
		ID:                        "score-" + uuid.NewString(),
		UserID:                    userID,
		Score:                     score,
		Level:                     level,
		OnTimePayments:            onTime,
		LatePayments:              late,
		ActiveDebts:               activeDebts,
		PastDebtProblems:          late > 0,
		CreditRequestsLast6Months: recentRequests,
		LastUpdated:               now,
	}

	var existing *models.CreditScore
	for i := range scores {
		if scores[i].UserID == userID {
			existing = &scores[i]
			break
		}
	}
	if existing != nil {
		record.ID = existing.ID
		if err := e.data.ReplaceCreditScore(ctx, record); err != nil {
			return nil, err
		}
	} else {
		if err := e.data.CreateCreditScore(ctx, record); err != nil {
			return nil, err
		}
	}

	e.log.Infof("Credit score updated for user %s: %d (%s)", userID, score, level)
	return record, nil
}

// UserScore returns the stored score record for a user without recomputing.
func (e *Engine) UserScore(ctx context.Context, userID string) (*models.CreditScore, error) {
	scores, err := e.data.CreditScores(ctx)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		if scores[i].UserID == userID {
			return &scores[i], nil
		}
	}
	return nil, fmt.Errorf("credit score for user %s: %w", userID, models.ErrNotFound)
}

// countPayments buckets a user's payments. A paid payment without a settle
// timestamp counts in neither the on-time nor the late bucket.
func countPayments(payments []models.Payment, now time.Time) (overdue, onTime, late, pendingSoon int) {
	soonCutoff := now.AddDate(0, 0, dueSoonDays)
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusOverdue:
			overdue++
			late++
		case models.PaymentStatusPaid:
			if p.PaidAt == nil {
				continue
			}
			if p.PaidAt.After(p.DueDate) {
				late++
			} else {
				onTime++
			}
		case models.PaymentStatusPending:
			if !p.DueDate.Before(now) && !p.DueDate.After(soonCutoff) {
				pendingSoon++
			}
		}
	}
	return overdue, onTime, late, pendingSoon
}
