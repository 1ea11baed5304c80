// Package money holds the rounding rules shared by every payroll computation.
// Amounts are decimals rounded half away from zero to two places; hours use
// the same precision.
package money

import "github.com/shopspring/decimal"

const Places = 2

// Round2 rounds d to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Sum adds the rounded value of every amount and rounds the result.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(Round2(a))
	}
	return Round2(total)
}

// FromFloat converts a float input (e.g. a JSON number) into a rounded amount.
func FromFloat(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}

// HoursFromSeconds converts elapsed seconds into hours rounded to two places.
func HoursFromSeconds(seconds int64) decimal.Decimal {
	return Round2(decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)))
}

// String formats an amount with exactly two decimals.
func String(d decimal.Decimal) string {
	return Round2(d).StringFixed(Places)
}
