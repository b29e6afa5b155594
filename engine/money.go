/*
Package engine provides the shared infrastructure behind the calculators.

PURPOSE:
  The three calculators (Coast FIRE, debt snowball, fasting) are independent
  leaves. What they share lives here: the error taxonomy, numeric helpers,
  month arithmetic, the 600-month horizon, the calculator catalog and the
  result cache contract.

KEY CONCEPTS IN THIS FILE (money.go):
  - Currency amounts are decimal.Decimal wherever a running balance is kept,
    so simulated ledgers conserve every cent.
  - Closed-form growth formulas (compounding, BMR) stay in float64 and use
    math.Pow; only their outputs are rounded for display.

SEE ALSO:
  - errors.go: InvalidInputError and friends
  - time.go: Horizon cap and month helpers
  - catalog.go: Calculator registry
*/
package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// Money converts a float currency amount to a decimal.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// RoundCents rounds a decimal amount to two places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Float returns the float64 value of a decimal, rounded to cents.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// RoundTo rounds a float to the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// MonthlyInterest returns balance × annualPct/100/12.
func MonthlyInterest(balance, annualPct decimal.Decimal) decimal.Decimal {
	return balance.Mul(annualPct).Div(hundred).Div(monthsPerYear)
}

// Growth returns (1 + pct/100)^years.
func Growth(pct float64, years int) float64 {
	return math.Pow(1+pct/100, float64(years))
}

// =============================================================================
// VALIDATION HELPERS
// =============================================================================

// MaxAge is the oldest age any calculator accepts.
const MaxAge = 150

// RequireFinite rejects NaN and infinities.
func RequireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, "must be a finite number")
	}
	return nil
}

// RequireNonNegative rejects negative, NaN and infinite values.
func RequireNonNegative(field string, v float64) error {
	if err := RequireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(field, "must not be negative")
	}
	return nil
}

// RequirePositive rejects zero, negative, NaN and infinite values.
func RequirePositive(field string, v float64) error {
	if err := RequireFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(field, "must be greater than zero")
	}
	return nil
}

// RequireAtMost rejects values above limit. Callers check finiteness first.
func RequireAtMost(field string, v, limit float64) error {
	if v > limit {
		return Invalidf(field, "must not exceed %s", decimal.NewFromFloat(limit).String())
	}
	return nil
}

// RequireAge rejects ages below zero or above MaxAge.
func RequireAge(field string, age int) error {
	if age < 0 {
		return Invalid(field, "must not be negative")
	}
	if age > MaxAge {
		return Invalidf(field, "must not exceed %d", MaxAge)
	}
	return nil
}
