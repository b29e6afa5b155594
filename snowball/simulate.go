package snowball

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tigerkidtools/calc-engine/engine"
)

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every precondition of Simulate.
func (in Input) Validate() error {
	if len(in.Debts) == 0 {
		return engine.Invalid("debts", "at least one debt is required")
	}
	if len(in.Debts) > MaxDebts {
		return engine.Invalidf("debts", "at most %d debts are allowed", MaxDebts)
	}
	if in.ExtraMonthlyPayment.IsNegative() {
		return engine.Invalid("extraMonthlyPayment", "must not be negative")
	}
	if !in.Strategy.Valid() {
		return engine.Invalidf("strategy", "unknown strategy %q", in.Strategy)
	}

	seen := make(map[string]bool, len(in.Debts))
	for _, d := range in.Debts {
		if d.ID == "" {
			return engine.Invalid("debts.id", "every debt needs an id")
		}
		if seen[d.ID] {
			return engine.Invalidf("debts.id", "duplicate debt id %q", d.ID)
		}
		seen[d.ID] = true

		if !d.Type.Valid() {
			return engine.Invalidf("debts.type", "unknown debt type %q", d.Type)
		}

		if d.Balance.IsNegative() {
			return engine.Invalidf("debts.balance", "balance of %q must not be negative", d.ID)
		}
		if d.MinPayment.IsNegative() {
			return engine.Invalidf("debts.minPayment", "minimum payment of %q must not be negative", d.ID)
		}
		if d.InterestRate.IsNegative() {
			return engine.Invalidf("debts.interestRate", "interest rate of %q must not be negative", d.ID)
		}
	}
	return nil
}

// =============================================================================
// ORDERING
// =============================================================================

// PayoffOrder returns a copy of debts in the order the strategy pays them.
// Ties keep input order.
func PayoffOrder(debts []Debt, strategy Strategy) []Debt {
	ordered := make([]Debt, len(debts))
	copy(ordered, debts)

	switch strategy.orDefault() {
	case StrategyAvalanche:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].InterestRate.GreaterThan(ordered[j].InterestRate)
		})
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance.LessThan(ordered[j].Balance)
		})
	}
	return ordered
}

// =============================================================================
// SIMULATION
// =============================================================================

// Simulate runs the payoff plan month by month. The caller's debts are never
// modified. A run cut off by the horizon returns a result with
// Completed == false and a nil error; use Result.Err to surface it.
func Simulate(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	strategy := in.Strategy.orDefault()
	order := PayoffOrder(in.Debts, strategy)

	start := in.StartDate
	if start.IsZero() {
		start = engine.Today()
	}

	balances := make([]decimal.Decimal, len(order))
	startingBalance := decimal.Zero
	payoffMonth := make(map[string]int, len(order))
	for i, d := range order {
		balances[i] = d.Balance
		startingBalance = startingBalance.Add(d.Balance)
		if !d.Balance.IsPositive() {
			payoffMonth[d.ID] = 0
		}
	}

	var (
		snowball      = in.ExtraMonthlyPayment
		totalInterest = decimal.Zero
		totalPaid     = decimal.Zero
		schedule      []ScheduleEntry
		month         int
	)

	for month < engine.HorizonMonths {
		target := firstActive(balances)
		if target < 0 {
			break
		}
		month++

		entry := ScheduleEntry{
			Month:         month,
			Debts:         make([]DebtPayment, 0, len(order)),
			TotalPayment:  decimal.Zero,
			TotalInterest: decimal.Zero,
		}
		freed := decimal.Zero

		for i, d := range order {
			if !balances[i].IsPositive() {
				entry.Debts = append(entry.Debts, DebtPayment{
					DebtID:           d.ID,
					Name:             d.Name,
					Payment:          decimal.Zero,
					Interest:         decimal.Zero,
					RemainingBalance: decimal.Zero,
					IsPaidOff:        true,
				})
				continue
			}

			interest := engine.MonthlyInterest(balances[i], d.InterestRate)
			owed := balances[i].Add(interest)

			payment := d.MinPayment
			if i == target {
				payment = payment.Add(snowball)
			}
			if payment.GreaterThan(owed) {
				payment = owed
			}

			remaining := owed.Sub(payment)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			balances[i] = remaining

			paidOff := remaining.IsZero()
			if paidOff {
				freed = freed.Add(d.MinPayment)
				payoffMonth[d.ID] = month
			}

			entry.Debts = append(entry.Debts, DebtPayment{
				DebtID:           d.ID,
				Name:             d.Name,
				Payment:          payment,
				Interest:         interest,
				RemainingBalance: remaining,
				IsPaidOff:        paidOff,
			})
			entry.TotalPayment = entry.TotalPayment.Add(payment)
			entry.TotalInterest = entry.TotalInterest.Add(interest)
		}

		// Freed minimums join the snowball from next month on.
		snowball = snowball.Add(freed)

		totalInterest = totalInterest.Add(entry.TotalInterest)
		totalPaid = totalPaid.Add(entry.TotalPayment)
		schedule = append(schedule, entry)
	}

	remaining := decimal.Zero
	for _, b := range balances {
		remaining = remaining.Add(b)
	}

	return &Result{
		Strategy:          strategy,
		TotalMonths:       month,
		TotalInterestPaid: totalInterest,
		TotalPaid:         totalPaid,
		StartingBalance:   startingBalance,
		PayoffDate:        engine.AddMonths(start, month),
		Schedule:          schedule,
		DebtPayoffOrder:   order,
		PayoffMonth:       payoffMonth,
		Completed:         remaining.IsZero(),
		RemainingBalance:  remaining,
	}, nil
}

// firstActive returns the index of the first debt with a positive balance,
// or -1 when everything is paid.
func firstActive(balances []decimal.Decimal) int {
	for i, b := range balances {
		if b.IsPositive() {
			return i
		}
	}
	return -1
}

// =============================================================================
// COMPARISON
// =============================================================================

// Compare simulates the same debts under both strategies.
func Compare(in Input) (*Comparison, error) {
	in.Strategy = StrategySnowball
	snow, err := Simulate(in)
	if err != nil {
		return nil, err
	}

	in.Strategy = StrategyAvalanche
	aval, err := Simulate(in)
	if err != nil {
		return nil, err
	}

	saved := snow.TotalInterestPaid.Sub(aval.TotalInterestPaid)
	recommended := StrategySnowball
	if saved.IsPositive() {
		recommended = StrategyAvalanche
	} else {
		saved = decimal.Zero
	}

	return &Comparison{
		Snowball:      snow,
		Avalanche:     aval,
		InterestSaved: saved,
		MonthsSaved:   snow.TotalMonths - aval.TotalMonths,
		Recommended:   recommended,
	}, nil
}
