package core

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts a major-unit amount to minor units (x100).
// The float is taken at its shortest decimal representation, so 5.005 is
// exactly 500.5 minor units, and rounded once, half away from zero.
// Amounts whose minor units do not fit in an int64 are rejected.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidParams)
	}

	minor := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if minor.LessThan(minMinorUnits) || minor.GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidParams)
	}
	return minor.IntPart(), nil
}
