package domain

import "github.com/shopspring/decimal"

// MaxAmount is the largest amount a single transaction may carry.
// Matches the NUMERIC(14,2) columns in the schema.
var MaxAmount = decimal.RequireFromString("999999.99")

// NormalizeAmount rounds an amount to 2 decimal places, half away from
// zero, before any validation, arithmetic or storage. Every amount in
// the system passes through here exactly once, so storage and balance
// arithmetic share a single rounding rule (10.005 -> 10.01).
func NormalizeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
