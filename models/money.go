package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// All storage and arithmetic in the ledgers uses integer minor units
// (cents). Decimal values exist only at the JSON boundary, so binary-float
// rounding errors cannot accumulate across sums.

var oneHundred = decimal.NewFromInt(100)

// ToMinorUnits converts a decimal currency amount to cents, rounding half
// away from zero on amount * 100.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(oneHundred).Round(0).IntPart()
}

// ToMinorUnitsOpt treats a missing amount as zero (used for "no charge
// specified", never for user-facing amounts).
func ToMinorUnitsOpt(amount *decimal.Decimal) int64 {
	if amount == nil {
		return 0
	}
	return ToMinorUnits(*amount)
}

// ParseMinorUnits converts a numeric string to cents. Empty input is zero;
// a non-numeric string is ErrInvalidAmount.
func ParseMinorUnits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return ToMinorUnits(d), nil
}

// ToDecimal converts cents back to the decimal boundary representation.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToDecimalOpt keeps nullable cents fields null across the boundary
// (card sales carry no cash fields).
func ToDecimalOpt(cents *int64) *decimal.Decimal {
	if cents == nil {
		return nil
	}
	d := ToDecimal(*cents)
	return &d
}
