/*
Package snowball simulates month-by-month debt payoff.

PURPOSE:
  Given a set of debts and an extra monthly payment, produce the full
  amortization schedule: what is paid on each debt each month, the interest
  accrued, when each debt reaches zero, and when the whole plan finishes.

STRATEGIES:
  snowball:  smallest starting balance first (default)
  avalanche: highest interest rate first

  The order is fixed at the start of the run. Each month the whole
  available snowball goes to the first debt in that order that still has a
  balance; every other active debt gets its minimum. When a debt reaches
  zero its minimum joins the snowball from the next month on.

HORIZON:
  The run stops after engine.HorizonMonths even if balances remain. Such a
  result has Completed == false and Err() returns a NotConvergedError. The
  partial schedule is still returned.

MONEY:
  Balances, payments and interest are decimal.Decimal so the ledger
  conserves exactly: TotalPaid == TotalInterestPaid + starting balances.

SEE ALSO:
  - simulate.go: Simulate and Compare
  - engine/errors.go: Error taxonomy
*/
package snowball

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tigerkidtools/calc-engine/engine"
)

// Slug identifies this calculator in the catalog.
const Slug = "debt-snowball-calculator"

// MaxDebts bounds the number of debts in one simulation.
const MaxDebts = 50

func init() {
	engine.RegisterCalculator(engine.Calculator{
		Slug:          Slug,
		Title:         "Debt Snowball Calculator",
		Description:   "Create a customized payoff plan and see how fast you can become debt-free.",
		Category:      engine.CategoryFinance,
		PublishedDate: "2025-07-10",
	})
}

// =============================================================================
// STRATEGY
// =============================================================================

type Strategy string

const (
	StrategySnowball  Strategy = "snowball"
	StrategyAvalanche Strategy = "avalanche"
)

// Valid reports whether s names a known strategy. Empty means snowball.
func (s Strategy) Valid() bool {
	switch s {
	case "", StrategySnowball, StrategyAvalanche:
		return true
	}
	return false
}

func (s Strategy) orDefault() Strategy {
	if s == "" {
		return StrategySnowball
	}
	return s
}

// =============================================================================
// DEBT
// =============================================================================

// DebtType is a display category; it does not affect the simulation.
type DebtType string

const (
	DebtCreditCard   DebtType = "Credit Card"
	DebtPersonalLoan DebtType = "Personal Loan"
	DebtAutoLoan     DebtType = "Auto Loan"
	DebtStudentLoan  DebtType = "Student Loan"
	DebtMedicalBill  DebtType = "Medical Bill"
	DebtOther        DebtType = "Other"
)

// DebtTypes lists the known categories in display order.
var DebtTypes = []DebtType{
	DebtCreditCard, DebtPersonalLoan, DebtAutoLoan, DebtStudentLoan, DebtMedicalBill, DebtOther,
}

// Valid reports whether t is a known category. Empty is allowed.
func (t DebtType) Valid() bool {
	if t == "" {
		return true
	}
	for _, known := range DebtTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Debt is one liability. InterestRate is an annual percentage (18.99 means 18.99%).
type Debt struct {
	ID           string
	Name         string
	Type         DebtType
	Balance      decimal.Decimal
	MinPayment   decimal.Decimal
	InterestRate decimal.Decimal
}

// NewDebt builds a Debt from float inputs.
func NewDebt(id, name string, balance, minPayment, interestRate float64) Debt {
	return Debt{
		ID:           id,
		Name:         name,
		Type:         DebtOther,
		Balance:      engine.Money(balance),
		MinPayment:   engine.Money(minPayment),
		InterestRate: decimal.NewFromFloat(interestRate),
	}
}

// Input is everything a simulation needs.
type Input struct {
	Debts               []Debt
	ExtraMonthlyPayment decimal.Decimal
	Strategy            Strategy

	// StartDate anchors PayoffDate. Zero means today.
	StartDate time.Time
}

// =============================================================================
// RESULT
// =============================================================================

// DebtPayment is one debt's line in a month.
type DebtPayment struct {
	DebtID           string
	Name             string
	Payment          decimal.Decimal
	Interest         decimal.Decimal
	RemainingBalance decimal.Decimal
	IsPaidOff        bool
}

// ScheduleEntry is one simulated month. Debts follow the payoff order.
type ScheduleEntry struct {
	Month         int // 1-based
	Debts         []DebtPayment
	TotalPayment  decimal.Decimal
	TotalInterest decimal.Decimal
}

// Result is the outcome of a simulation.
type Result struct {
	Strategy          Strategy
	TotalMonths       int
	TotalInterestPaid decimal.Decimal
	TotalPaid         decimal.Decimal
	StartingBalance   decimal.Decimal
	PayoffDate        time.Time
	Schedule          []ScheduleEntry

	// DebtPayoffOrder is the fixed order the snowball was applied in.
	DebtPayoffOrder []Debt

	// PayoffMonth maps debt ID to the month it reached zero. Debts that never
	// reached zero are absent; debts that started at zero map to 0.
	PayoffMonth map[string]int

	// Completed is false when the horizon cap stopped the run.
	Completed bool

	// RemainingBalance is what is still owed when the run stopped.
	RemainingBalance decimal.Decimal
}

// Err returns a NotConvergedError for incomplete runs, nil otherwise.
func (r *Result) Err() error {
	if r.Completed {
		return nil
	}
	return &engine.NotConvergedError{Months: r.TotalMonths, RemainingBalance: r.RemainingBalance}
}

// Comparison holds the two strategies side by side.
type Comparison struct {
	Snowball  *Result
	Avalanche *Result

	// InterestSaved is how much less interest avalanche pays (never negative).
	InterestSaved decimal.Decimal

	// MonthsSaved is snowball months minus avalanche months.
	MonthsSaved int

	// Recommended is the strategy paying less interest; snowball on ties.
	Recommended Strategy
}
