package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
)

// Thresholds for classifying a raw score outside the computation flow.
const (
	ThresholdGood   = 700
	ThresholdMedium = 400
)

// LevelFromScore classifies a raw score using the fixed thresholds.
func LevelFromScore(score int) string {
	if score >= ThresholdGood {
		return models.ScoreLevelGood
	}
	if score >= ThresholdMedium {
		return models.ScoreLevelMedium
	}
	return models.ScoreLevelBad
}

// CanRequestCredit gates new credit requests on the user's score level.
// A bad level is disallowed with a reason; everything else is allowed.
func CanRequestCredit(score *models.CreditScore) (bool, string) {
	if score.Level == models.ScoreLevelBad {
		return false, "credit score too low: improve your payment history before requesting a new credit"
	}
	return true, ""
}

// InterestRateModifier returns the percentage points added to a newly
// requested credit's rate for the given score level.
func InterestRateModifier(level string) decimal.Decimal {
	if level == models.ScoreLevelMedium {
		return decimal.NewFromInt(3)
	}
	return decimal.Zero
}
