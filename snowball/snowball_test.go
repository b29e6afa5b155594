package snowball_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/snowball"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var jan15 = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func assertMoney(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(money(want)), "want %v, got %s", want, got)
}

// defaultDebts mirrors the calculator's starting form.
func defaultDebts() []snowball.Debt {
	return []snowball.Debt{
		snowball.NewDebt("1", "Credit Card 1", 2500, 75, 18.99),
		snowball.NewDebt("2", "Store Card", 800, 25, 24.99),
		snowball.NewDebt("3", "Personal Loan", 5000, 150, 12.5),
	}
}

func input(debts []snowball.Debt, extra float64) snowball.Input {
	return snowball.Input{
		Debts:               debts,
		ExtraMonthlyPayment: money(extra),
		StartDate:           jan15,
	}
}

func sumSchedulePayments(r *snowball.Result) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range r.Schedule {
		for _, p := range entry.Debts {
			total = total.Add(p.Payment)
		}
	}
	return total
}

// =============================================================================
// BASIC MECHANICS
// =============================================================================

func TestSimulate_SingleInterestFreeDebt(t *testing.T) {
	// GIVEN: $1000 at 0% with a $100 minimum
	// THEN: Ten equal payments, no interest
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("a", "Loan", 1000, 100, 0),
	}, 0))
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.NoError(t, result.Err())
	assert.Equal(t, 10, result.TotalMonths)
	assert.Len(t, result.Schedule, 10)
	assert.True(t, result.TotalInterestPaid.IsZero())
	assertMoney(t, 1000, result.TotalPaid)
	assert.Equal(t, 10, result.PayoffMonth["a"])
}

func TestSimulate_InterestAccruesBeforePayment(t *testing.T) {
	// GIVEN: $1200 at 12% APR, paying $112/month
	// THEN: Month 1 accrues exactly $12 and leaves $1100
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("a", "Card", 1200, 112, 12),
	}, 0))
	require.NoError(t, err)

	first := result.Schedule[0].Debts[0]
	assertMoney(t, 12, first.Interest)
	assertMoney(t, 112, first.Payment)
	assertMoney(t, 1100, first.RemainingBalance)
	assert.False(t, first.IsPaidOff)
}

func TestSimulate_SnowballRollsOver(t *testing.T) {
	// GIVEN: A small and a large interest-free debt, $50 extra
	// WHEN: The small debt is paid in month 1
	// THEN: Its $50 minimum joins the snowball from month 2 onward
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("big", "Big", 1000, 100, 0),
		snowball.NewDebt("small", "Small", 100, 50, 0),
	}, 50))
	require.NoError(t, err)

	require.True(t, result.Completed)
	assert.Equal(t, 6, result.TotalMonths)
	assert.Equal(t, 1, result.PayoffMonth["small"])
	assert.Equal(t, 6, result.PayoffMonth["big"])

	// Month 1: small gets min + extra, big gets its minimum
	m1 := result.Schedule[0]
	assert.Equal(t, "small", m1.Debts[0].DebtID)
	assertMoney(t, 100, m1.Debts[0].Payment)
	assert.True(t, m1.Debts[0].IsPaidOff)
	assertMoney(t, 100, m1.Debts[1].Payment)

	// Month 2: paid-off debt recorded with zero payment; big gets 100 + 50 + 50
	m2 := result.Schedule[1]
	assert.True(t, m2.Debts[0].Payment.IsZero())
	assert.True(t, m2.Debts[0].IsPaidOff)
	assertMoney(t, 200, m2.Debts[1].Payment)
	assertMoney(t, 700, m2.Debts[1].RemainingBalance)

	// Final month is capped at what is owed
	last := result.Schedule[5]
	assertMoney(t, 100, last.Debts[1].Payment)
	assertMoney(t, 100, last.TotalPayment)

	assertMoney(t, 1100, result.TotalPaid)
}

func TestSimulate_OrderFixedAtStart(t *testing.T) {
	// GIVEN: A starts smaller but B has a huge minimum and finishes first
	// THEN: A stays the snowball target; B's freed minimum then clears A
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("A", "A", 500, 10, 0),
		snowball.NewDebt("B", "B", 600, 590, 0),
	}, 0))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, []string{result.DebtPayoffOrder[0].ID, result.DebtPayoffOrder[1].ID})
	assert.Equal(t, 2, result.PayoffMonth["B"])
	assert.Equal(t, 3, result.PayoffMonth["A"])
	assert.Equal(t, 3, result.TotalMonths)
	assertMoney(t, 480, result.Schedule[2].Debts[0].Payment)
}

func TestSimulate_StableTieBreak(t *testing.T) {
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("first", "First", 500, 50, 5),
		snowball.NewDebt("second", "Second", 500, 50, 20),
		snowball.NewDebt("tiny", "Tiny", 10, 10, 0),
	}, 0))
	require.NoError(t, err)

	ids := make([]string, 0, 3)
	for _, d := range result.DebtPayoffOrder {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"tiny", "first", "second"}, ids)
}

func TestSimulate_PayoffDate(t *testing.T) {
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("a", "Loan", 600, 100, 0),
	}, 0))
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalMonths)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), result.PayoffDate)
}

func TestSimulate_DefaultsStartDateToToday(t *testing.T) {
	defer func(prev func() time.Time) { engine.Clock = prev }(engine.Clock)
	engine.Clock = func() time.Time { return time.Date(2026, time.March, 3, 17, 45, 0, 0, time.UTC) }

	in := input([]snowball.Debt{snowball.NewDebt("a", "Loan", 200, 100, 0)}, 0)
	in.StartDate = time.Time{}

	result, err := snowball.Simulate(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC), result.PayoffDate)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestSimulate_Conservation(t *testing.T) {
	// GIVEN: The default three-debt plan
	// THEN: Every dollar paid is principal or interest
	result, err := snowball.Simulate(input(defaultDebts(), 200))
	require.NoError(t, err)
	require.True(t, result.Completed)

	assertMoney(t, 8300, result.StartingBalance)
	assert.True(t, result.TotalPaid.Equal(sumSchedulePayments(result)))
	assert.True(t, result.TotalPaid.Equal(result.TotalInterestPaid.Add(result.StartingBalance)),
		"paid %s != interest %s + principal %s", result.TotalPaid, result.TotalInterestPaid, result.StartingBalance)

	monthly := decimal.Zero
	for _, e := range result.Schedule {
		monthly = monthly.Add(e.TotalPayment)
	}
	assert.True(t, result.TotalPaid.Equal(monthly))
}

func TestSimulate_SnowballOrderInvariant(t *testing.T) {
	result, err := snowball.Simulate(input(defaultDebts(), 200))
	require.NoError(t, err)

	order := result.DebtPayoffOrder
	for i := 1; i < len(order); i++ {
		assert.True(t, order[i-1].Balance.LessThanOrEqual(order[i].Balance))
	}

	smallest := result.PayoffMonth[order[0].ID]
	for _, d := range order[1:] {
		assert.LessOrEqual(t, smallest, result.PayoffMonth[d.ID], "debt %s", d.ID)
	}
	assert.Equal(t, "2", order[0].ID, "store card has the smallest balance")
}

func TestSimulate_BalancesNeverIncreaseWhenAmortizing(t *testing.T) {
	result, err := snowball.Simulate(input(defaultDebts(), 200))
	require.NoError(t, err)

	prev := map[string]decimal.Decimal{}
	for _, d := range result.DebtPayoffOrder {
		prev[d.ID] = d.Balance
	}
	for _, entry := range result.Schedule {
		for _, p := range entry.Debts {
			assert.True(t, p.RemainingBalance.LessThanOrEqual(prev[p.DebtID]),
				"month %d debt %s grew", entry.Month, p.DebtID)
			prev[p.DebtID] = p.RemainingBalance
		}
	}
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	debts := defaultDebts()
	ids := []string{debts[0].ID, debts[1].ID, debts[2].ID}

	_, err := snowball.Simulate(input(debts, 200))
	require.NoError(t, err)

	assert.Equal(t, ids, []string{debts[0].ID, debts[1].ID, debts[2].ID})
	assertMoney(t, 2500, debts[0].Balance)
	assertMoney(t, 800, debts[1].Balance)
	assertMoney(t, 5000, debts[2].Balance)
}

// =============================================================================
// TERMINATION
// =============================================================================

func TestSimulate_NotConverged_StopsAtHorizon(t *testing.T) {
	// GIVEN: A last-in-order debt whose interest dwarfs every payment it gets
	// THEN: Exactly 600 months, Completed false, NotConverged surfaced
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("small", "Small", 100, 50, 0),
		snowball.NewDebt("huge", "Huge", 100000, 10, 30),
	}, 0))
	require.NoError(t, err)

	assert.False(t, result.Completed)
	assert.Equal(t, engine.HorizonMonths, result.TotalMonths)
	assert.Len(t, result.Schedule, engine.HorizonMonths)
	assert.True(t, result.RemainingBalance.IsPositive())

	assert.Equal(t, 2, result.PayoffMonth["small"])
	_, paid := result.PayoffMonth["huge"]
	assert.False(t, paid)

	notConverged := result.Err()
	require.Error(t, notConverged)
	assert.ErrorIs(t, notConverged, engine.ErrSimulationNotConverged)
	assert.False(t, engine.IsClientError(notConverged))
}

func TestSimulate_ZeroPaymentsNeverConverge(t *testing.T) {
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("a", "Frozen", 100, 0, 0),
	}, 0))
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, engine.HorizonMonths, result.TotalMonths)
}

func TestSimulate_ZeroBalanceDebtIsExcluded(t *testing.T) {
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("done", "Done", 0, 40, 20),
		snowball.NewDebt("a", "Loan", 300, 100, 0),
	}, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalMonths)
	assert.Equal(t, 0, result.PayoffMonth["done"])
	for _, entry := range result.Schedule {
		assert.Equal(t, "done", entry.Debts[0].DebtID)
		assert.True(t, entry.Debts[0].Payment.IsZero())
		assert.True(t, entry.Debts[0].Interest.IsZero())
		assert.True(t, entry.Debts[0].IsPaidOff)
	}
}

func TestSimulate_AllPaidAlready(t *testing.T) {
	result, err := snowball.Simulate(input([]snowball.Debt{
		snowball.NewDebt("a", "Done", 0, 10, 5),
	}, 100))
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.Zero(t, result.TotalMonths)
	assert.Empty(t, result.Schedule)
	assert.Equal(t, jan15, result.PayoffDate)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestSimulate_InvalidInput(t *testing.T) {
	tooMany := make([]snowball.Debt, snowball.MaxDebts+1)
	for i := range tooMany {
		tooMany[i] = snowball.NewDebt(string(rune('A'+i%26))+string(rune('a'+i/26)), "D", 10, 1, 1)
	}

	tests := []struct {
		name  string
		in    snowball.Input
		field string
	}{
		{"no debts", input(nil, 0), "debts"},
		{"too many debts", input(tooMany, 0), "debts"},
		{"negative extra", input(defaultDebts(), -1), "extraMonthlyPayment"},
		{"negative balance", input([]snowball.Debt{snowball.NewDebt("a", "A", -1, 10, 1)}, 0), "debts.balance"},
		{"negative minimum", input([]snowball.Debt{snowball.NewDebt("a", "A", 100, -10, 1)}, 0), "debts.minPayment"},
		{"negative rate", input([]snowball.Debt{snowball.NewDebt("a", "A", 100, 10, -1)}, 0), "debts.interestRate"},
		{"missing id", input([]snowball.Debt{snowball.NewDebt("", "A", 100, 10, 1)}, 0), "debts.id"},
		{"duplicate id", input([]snowball.Debt{
			snowball.NewDebt("a", "A", 100, 10, 1),
			snowball.NewDebt("a", "B", 200, 10, 1),
		}, 0), "debts.id"},
		{"unknown type", input([]snowball.Debt{{ID: "a", Name: "A", Type: "Mortgage", Balance: money(100)}}, 0), "debts.type"},
		{"unknown strategy", snowball.Input{Debts: defaultDebts(), Strategy: "lottery"}, "strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := snowball.Simulate(tt.in)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
			assert.Equal(t, tt.field, engine.FieldOf(err))
		})
	}
}

// =============================================================================
// STRATEGIES
// =============================================================================

func TestPayoffOrder_Avalanche(t *testing.T) {
	order := snowball.PayoffOrder(defaultDebts(), snowball.StrategyAvalanche)
	assert.Equal(t, "2", order[0].ID) // 24.99%
	assert.Equal(t, "1", order[1].ID) // 18.99%
	assert.Equal(t, "3", order[2].ID) // 12.5%
}

func TestCompare_AvalancheSavesInterest(t *testing.T) {
	// GIVEN: The small debt is cheap, the large one expensive
	// THEN: Targeting the expensive one first pays less interest
	cmp, err := snowball.Compare(input([]snowball.Debt{
		snowball.NewDebt("cheap", "Cheap", 1000, 50, 5),
		snowball.NewDebt("pricey", "Pricey", 3000, 100, 25),
	}, 300))
	require.NoError(t, err)

	assert.Equal(t, snowball.StrategySnowball, cmp.Snowball.Strategy)
	assert.Equal(t, snowball.StrategyAvalanche, cmp.Avalanche.Strategy)
	assert.Equal(t, "cheap", cmp.Snowball.DebtPayoffOrder[0].ID)
	assert.Equal(t, "pricey", cmp.Avalanche.DebtPayoffOrder[0].ID)

	assert.True(t, cmp.Avalanche.TotalInterestPaid.LessThan(cmp.Snowball.TotalInterestPaid))
	assert.True(t, cmp.InterestSaved.IsPositive())
	assert.Equal(t, snowball.StrategyAvalanche, cmp.Recommended)
	assert.Equal(t, cmp.Snowball.TotalMonths-cmp.Avalanche.TotalMonths, cmp.MonthsSaved)
}

func TestCompare_SameOrderSameResult(t *testing.T) {
	// Default debts sort identically under both strategies
	cmp, err := snowball.Compare(input(defaultDebts(), 200))
	require.NoError(t, err)

	assert.True(t, cmp.InterestSaved.IsZero())
	assert.Zero(t, cmp.MonthsSaved)
	assert.Equal(t, snowball.StrategySnowball, cmp.Recommended)
}

func TestCompare_PropagatesValidation(t *testing.T) {
	_, err := snowball.Compare(input(nil, 0))
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}
