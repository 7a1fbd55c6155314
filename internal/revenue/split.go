package revenue

import (
	"errors"
	"math"
)

// TierThreshold is the trip amount at which the split flips in the driver's
// favor. The boundary itself belongs to the lower tier.
const TierThreshold = 2500.0

// Lower tier (amount <= threshold): driver 30%, company 70%.
// Upper tier (amount > threshold): driver 70%, company 30%.
const (
	lowerTierDriverPct = 30
	upperTierDriverPct = 70
)

// ErrInvalidAmount is returned when the trip amount is zero, negative, or not
// a finite number. The split rule is only defined for positive amounts.
var ErrInvalidAmount = errors.New("revenue: invalid trip amount")

// Share is the result of splitting a trip's total amount between the driver
// and the company. DriverShare + CompanyShare always equals the input amount.
type Share struct {
	DriverShare       float64
	CompanyShare      float64
	DriverPercentage  int
	CompanyPercentage int
}

// Split divides totalAmount between driver and company under the two-tier
// rule. It is pure: the same input always produces the same output.
func Split(totalAmount float64) (Share, error) {
	if totalAmount <= 0 || math.IsNaN(totalAmount) || math.IsInf(totalAmount, 0) {
		return Share{}, ErrInvalidAmount
	}

	driverPct := lowerTierDriverPct
	if totalAmount > TierThreshold {
		driverPct = upperTierDriverPct
	}
	companyPct := 100 - driverPct

	return Share{
		DriverShare:       totalAmount * float64(driverPct) / 100,
		CompanyShare:      totalAmount * float64(companyPct) / 100,
		DriverPercentage:  driverPct,
		CompanyPercentage: companyPct,
	}, nil
}
