package service

import (
	"github.com/shopspring/decimal"

	"github.com/bancasol/core-service/internal/models"
)

// Add-on account service types
const (
	AddonInsurance = "insurance"
	AddonCashback  = "cashback"
	AddonAdvisory  = "advisory"
)

var addonFees = map[string]decimal.Decimal{
	AddonInsurance: decimal.NewFromInt(25),
	AddonCashback:  decimal.NewFromInt(15),
	AddonAdvisory:  decimal.NewFromInt(50),
}

// MonthlyFee sums the monthly fees of the selected add-on services. An
// unknown service type is a validation error.
func MonthlyFee(services []string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, svc := range services {
		fee, ok := addonFees[svc]
		if !ok {
			return decimal.Zero, &models.ValidationError{Reason: "unknown service type: " + svc}
		}
		total = total.Add(fee)
	}
	return total, nil
}
