package models

import "time"

// Score levels
const (
	ScoreLevelGood   = "good"
	ScoreLevelMedium = "medium"
	ScoreLevelBad    = "bad"
)

// CreditScore holds a user's computed credit score and the counters it was
// derived from. One record per user, replaced in place on every recompute;
// the ID stays stable across updates.
type CreditScore struct {
	ID                        string    `json:"id"`
	UserID                    string    `json:"userId"`
	Score                     int       `json:"score"`
	Level                     string    `json:"level"`
	OnTimePayments            int       `json:"onTimePayments"`
	LatePayments              int       `json:"latePayments"`
	ActiveDebts               int       `json:"activeDebts"`
	PastDebtProblems          bool      `json:"pastDebtProblems"`
	CreditRequestsLast6Months int       `json:"creditRequestsLast6Months"`
	LastUpdated               time.Time `json:"lastUpdated"`
}
