package coastfire

import (
	"math"

	"github.com/tigerkidtools/calc-engine/engine"
)

const (
	// MaxAmount caps every dollar input.
	MaxAmount = 1e12

	// MaxRatePct caps return, inflation and withdrawal rates.
	MaxRatePct = 100.0

	// Gaps under half a cent display as $0.00 and count as reached.
	reachedTolerance = 0.005
)

// Validate checks every precondition of Compute.
func (in Inputs) Validate() error {
	if err := engine.RequireAge("currentAge", in.CurrentAge); err != nil {
		return err
	}
	if err := engine.RequireAge("retirementAge", in.RetirementAge); err != nil {
		return err
	}
	if in.RetirementAge <= in.CurrentAge {
		return engine.Invalid("retirementAge", "retirement age must exceed current age")
	}
	checks := []struct {
		field string
		value float64
		limit float64
	}{
		{"currentBalance", in.CurrentBalance, MaxAmount},
		{"annualExpenses", in.AnnualExpenses, MaxAmount},
		{"expectedReturnPct", in.ExpectedReturnPct, MaxRatePct},
		{"inflationPct", in.InflationPct, MaxRatePct},
		{"monthlySavings", in.MonthlySavings, MaxAmount},
	}
	for _, c := range checks {
		if err := engine.RequireNonNegative(c.field, c.value); err != nil {
			return err
		}
		if err := engine.RequireAtMost(c.field, c.value, c.limit); err != nil {
			return err
		}
	}
	if err := engine.RequirePositive("withdrawalRatePct", in.WithdrawalRatePct); err != nil {
		return err
	}
	return engine.RequireAtMost("withdrawalRatePct", in.WithdrawalRatePct, MaxRatePct)
}

// Compute runs the Coast FIRE present-value chain and the time-to-target
// simulation.
func Compute(in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	years := in.RetirementAge - in.CurrentAge

	futureExpenses := in.AnnualExpenses * engine.Growth(in.InflationPct, years)
	target := futureExpenses / (in.WithdrawalRatePct / 100)
	returnGrowth := engine.Growth(in.ExpectedReturnPct, years)
	coastNumber := target / returnGrowth
	futureBalance := in.CurrentBalance * returnGrowth

	// A tiny withdrawal rate can still blow the nest egg past float range.
	overflow := []struct {
		field string
		value float64
	}{
		{"inflationPct", futureExpenses},
		{"withdrawalRatePct", target},
		{"expectedReturnPct", coastNumber},
		{"currentBalance", futureBalance},
	}
	for _, o := range overflow {
		if math.IsNaN(o.value) || math.IsInf(o.value, 0) {
			return nil, engine.Invalid(o.field, "result is too large to compute")
		}
	}

	gap := math.Max(0, coastNumber-in.CurrentBalance)
	if gap < reachedTolerance {
		gap = 0
	}
	reached := gap == 0

	months := 0
	if !reached {
		months = monthsToTarget(in.CurrentBalance, coastNumber, in.ExpectedReturnPct, in.MonthlySavings)
	}

	result := &Result{
		YearsToRetirement:               years,
		InflationAdjustedAnnualExpenses: futureExpenses,
		TargetRetirementAmount:          target,
		CoastFireNumber:                 coastNumber,
		CurrentGap:                      gap,
		IsReached:                       reached,
		FutureValueOfCurrentBalance:     futureBalance,
		MonthsToCoastFire:               months,
	}
	if result.WithinHorizon() {
		age := float64(in.CurrentAge) + float64(months)/12
		result.CoastFireAge = &age
	}
	return result, nil
}

// monthsToTarget compounds balance monthly at annualPct/12 plus savings until
// it reaches target. Bounded by engine.HorizonMonths; without contributions
// the target is treated as unreachable.
func monthsToTarget(balance, target, annualPct, monthlySavings float64) int {
	if balance >= target {
		return 0
	}
	if monthlySavings <= 0 {
		return engine.HorizonMonths
	}

	monthlyRate := annualPct / 100 / 12
	months := 0
	for balance < target && months < engine.HorizonMonths {
		balance = balance*(1+monthlyRate) + monthlySavings
		months++
	}
	return months
}
