package coastfire

import (
	"math"

	"github.com/tigerkidtools/calc-engine/engine"
)

// Project builds the yearly growth chart from current age to retirement age
// inclusive. Balances compound annually; the savings line adds twelve
// months of contributions at the end of each year. Values are whole dollars.
func Project(in Inputs) ([]ProjectionPoint, error) {
	result, err := Compute(in)
	if err != nil {
		return nil, err
	}
	return ProjectResult(in, result), nil
}

// ProjectResult builds the chart for an already computed result.
func ProjectResult(in Inputs, result *Result) []ProjectionPoint {
	annualReturn := in.ExpectedReturnPct / 100
	annualSavings := in.MonthlySavings * 12
	coastLine := math.Round(result.CoastFireNumber)
	targetLine := math.Round(result.TargetRetirementAmount)

	points := make([]ProjectionPoint, 0, result.YearsToRetirement+1)
	withSavings := in.CurrentBalance
	for year := 0; year <= result.YearsToRetirement; year++ {
		if year > 0 {
			withSavings = withSavings*(1+annualReturn) + annualSavings
		}
		points = append(points, ProjectionPoint{
			Age:                   in.CurrentAge + year,
			BalanceWithoutSavings: math.Round(in.CurrentBalance * engine.Growth(in.ExpectedReturnPct, year)),
			BalanceWithSavings:    math.Round(withSavings),
			CoastFireTarget:       coastLine,
			RetirementTarget:      targetLine,
		})
	}
	return points
}
