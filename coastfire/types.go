/*
Package coastfire computes the Coast FIRE number and its growth projection.

PURPOSE:
  Coast FIRE is the lump sum that, left alone to compound at the expected
  return, grows into the full retirement nest egg by the target age. Once a
  saver holds that amount they can stop contributing and "coast".

MODEL:
  Three-step present-value chain:
    1. Inflate today's annual expenses to retirement-year dollars.
    2. Size the nest egg with the safe withdrawal rate.
    3. Discount the nest egg back to today at the expected return.

  Inflation and return are both nominal and compound over the same horizon.
  No real-return reconciliation is done; this is the fixed model.

SEE ALSO:
  - engine.go: Compute
  - projection.go: Yearly chart series
*/
package coastfire

import "github.com/tigerkidtools/calc-engine/engine"

// Slug identifies this calculator in the catalog.
const Slug = "coast-fire-calculator"

func init() {
	engine.RegisterCalculator(engine.Calculator{
		Slug:          Slug,
		Title:         "Coast FIRE Calculator",
		Description:   "Calculate your Coast FIRE number and discover how much you need to save now to coast to financial independence by your target retirement age.",
		Category:      engine.CategoryFinance,
		PublishedDate: "2025-07-15",
	})
}

// Inputs are the saver's numbers. Rates are percentages (7 means 7%).
type Inputs struct {
	CurrentAge        int
	RetirementAge     int
	CurrentBalance    float64
	AnnualExpenses    float64
	ExpectedReturnPct float64
	InflationPct      float64
	WithdrawalRatePct float64
	MonthlySavings    float64
}

// Result is the outcome of Compute.
type Result struct {
	YearsToRetirement int

	// Today's expenses in retirement-year dollars.
	InflationAdjustedAnnualExpenses float64

	// Nest egg needed at retirement, in retirement-year dollars.
	TargetRetirementAmount float64

	// Present value of TargetRetirementAmount.
	CoastFireNumber float64

	CurrentGap float64 // max(0, CoastFireNumber - CurrentBalance)
	IsReached  bool

	// CurrentBalance compounded to retirement with no contributions.
	FutureValueOfCurrentBalance float64

	// Months of saving until the balance reaches CoastFireNumber. Zero when
	// already reached; engine.HorizonMonths means "not within 50 years".
	MonthsToCoastFire int

	// CoastFireAge is the age at which the number is reached. Nil when the
	// horizon is exceeded.
	CoastFireAge *float64
}

// WithinHorizon reports whether MonthsToCoastFire is a real duration.
func (r *Result) WithinHorizon() bool {
	return r.MonthsToCoastFire < engine.HorizonMonths
}

// ProjectionPoint is one year on the growth chart.
type ProjectionPoint struct {
	Age                   int
	BalanceWithoutSavings float64
	BalanceWithSavings    float64
	CoastFireTarget       float64
	RetirementTarget      float64
}
