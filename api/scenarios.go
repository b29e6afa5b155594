/*
scenarios.go - Preset calculator inputs for demos and smoke tests

PURPOSE:
  Provides ready-made requests that mirror the defaults each calculator
  page starts with, plus a few contrasting cases. Running a scenario goes
  through exactly the same compute path as the matching endpoint.

AVAILABLE SCENARIOS:
  coast-fire-default:      Page defaults, with the growth chart
  coast-fire-reached:      Balance already past the Coast FIRE number
  debt-snowball-default:   Two cards and a personal loan, $200 extra
  debt-strategy-compare:   Same debts, snowball vs avalanche
  fasting-16-8:            16:8 window after an 8 PM dinner today
  fasting-weight-loss:     30-year-old male, moderate activity, one day

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/debt-snowball-default/run

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' with ID, name, description, calculator slug
 2. Add a case to runScenario building the request

SEE ALSO:
  - handlers.go: compute* functions shared with the endpoints
*/
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tigerkidtools/calc-engine/coastfire"
	"github.com/tigerkidtools/calc-engine/fasting"
	"github.com/tigerkidtools/calc-engine/snowball"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "coast-fire-default",
		Name:        "Coast FIRE Starter",
		Description: "Age 25, $50k saved, $2k/month, retiring at 65",
		Calculator:  coastfire.Slug,
	},
	{
		ID:          "coast-fire-reached",
		Name:        "Already Coasting",
		Description: "Age 40 with $600k invested: contributions can stop",
		Calculator:  coastfire.Slug,
	},
	{
		ID:          "debt-snowball-default",
		Name:        "Three Debts",
		Description: "Two credit cards and a personal loan with $200 extra per month",
		Calculator:  snowball.Slug,
	},
	{
		ID:          "debt-strategy-compare",
		Name:        "Snowball vs Avalanche",
		Description: "The same three debts under both payoff strategies",
		Calculator:  snowball.Slug,
	},
	{
		ID:          "fasting-16-8",
		Name:        "16:8 After Dinner",
		Description: "Sixteen hour fast starting after an 8 PM dinner today",
		Calculator:  fasting.Slug,
	},
	{
		ID:          "fasting-weight-loss",
		Name:        "One Day Fast",
		Description: "30-year-old male, 70 kg, 175 cm, moderately active",
		Calculator:  fasting.Slug,
	},
}

func defaultDebtRequests() []DebtRequest {
	return []DebtRequest{
		{ID: "credit-card-1", Name: "Credit Card 1", Type: string(snowball.DebtCreditCard), Balance: 2500, MinPayment: 75, InterestRate: 18.99},
		{ID: "store-card", Name: "Store Card", Type: string(snowball.DebtCreditCard), Balance: 800, MinPayment: 25, InterestRate: 24.99},
		{ID: "personal-loan", Name: "Personal Loan", Type: string(snowball.DebtPersonalLoan), Balance: 5000, MinPayment: 150, InterestRate: 12.5},
	}
}

func defaultCoastFireRequest() CoastFireRequest {
	return CoastFireRequest{
		CurrentAge:        25,
		RetirementAge:     65,
		CurrentBalance:    50000,
		AnnualExpenses:    50000,
		ExpectedReturnPct: 7,
		InflationPct:      3,
		WithdrawalRatePct: 4,
		MonthlySavings:    2000,
		IncludeProjection: true,
	}
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns all available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario computes a preset scenario.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var scenario *ScenarioDTO
	for i := range scenarios {
		if scenarios[i].ID == id {
			scenario = &scenarios[i]
			break
		}
	}
	if scenario == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario", fmt.Errorf("scenario %q: %w", id, errNotFound))
		return
	}

	result, err := h.runScenario(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScenarioRunResponse{Scenario: *scenario, Result: result})
}

func (h *Handler) runScenario(id string) (any, error) {
	switch id {
	case "coast-fire-default":
		return computeCoastFire(defaultCoastFireRequest())

	case "coast-fire-reached":
		req := defaultCoastFireRequest()
		req.CurrentAge = 40
		req.CurrentBalance = 600000
		req.IncludeProjection = false
		return computeCoastFire(req)

	case "debt-snowball-default":
		return computeSnowball(h.normalizeSnowball(SnowballRequest{
			Debts:               defaultDebtRequests(),
			ExtraMonthlyPayment: 200,
		}))

	case "debt-strategy-compare":
		return computeComparison(h.normalizeSnowball(SnowballRequest{
			Debts:               defaultDebtRequests(),
			ExtraMonthlyPayment: 200,
		}))

	case "fasting-16-8":
		req, err := h.normalizeWindow(FastingWindowRequest{Plan: "16:8", LastMealTime: "20:00"})
		if err != nil {
			return nil, err
		}
		return computeWindow(req)

	case "fasting-weight-loss":
		return computeWeightLoss(WeightLossRequest{
			Gender:      string(fasting.GenderMale),
			Age:         30,
			Weight:      70,
			WeightUnit:  string(fasting.WeightKg),
			Height:      175,
			HeightUnit:  string(fasting.HeightCm),
			Activity:    string(fasting.ActivityModerate),
			FastingDays: 1,
		})
	}
	return nil, fmt.Errorf("scenario %q: %w", id, errNotFound)
}
