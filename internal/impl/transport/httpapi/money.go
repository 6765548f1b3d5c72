package httpapi

import "github.com/shopspring/decimal"

// The API speaks decimal major units; the core only ever sees integer
// minor units. Conversion rounds half away from zero to the nearest
// minor unit before anything reaches the orchestrator.

func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Shift(2).Round(0).IntPart()
}

func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}
