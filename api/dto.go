/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculator packages from the external API contract:
  - Money leaves the API as floats rounded to cents
  - Dates are ISO strings, optional values are null rather than sentinels
  - Display labels are pre-formatted for the website

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Top-level response bodies
  - *DTO: Nested response types

  JSON keys match the field names used in validation errors, so a 400 with
  "field": "monthlySavings" points at the request key of the same name.

TYPES:
  Coast FIRE:   CoastFireRequest, CoastFireResponse, ProjectionPointDTO
  Snowball:     SnowballRequest, DebtRequest, SnowballResponse, CompareResponse
  Fasting:      FastingWindowRequest, FastingWindowResponse,
                WeightLossRequest, WeightLossResponse, FastingPlansResponse
  Catalog:      CalculatorDTO
  Scenarios:    ScenarioDTO, ScenarioRunResponse

VALIDATION:
  Validation is done by the calculator packages, not in DTOs. DTOs are pure
  data carriers plus conversion.

SEE ALSO:
  - handlers.go: Uses these types
  - format.go: Display labels
*/
package api

import (
	"time"

	"github.com/tigerkidtools/calc-engine/coastfire"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/fasting"
	"github.com/tigerkidtools/calc-engine/snowball"
)

const dateLayout = "2006-01-02"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// =============================================================================
// CATALOG
// =============================================================================

type CalculatorDTO struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	PublishedDate string `json:"publishedDate"`
}

func toCalculatorDTO(c engine.Calculator) CalculatorDTO {
	return CalculatorDTO{
		Slug:          c.Slug,
		Title:         c.Title,
		Description:   c.Description,
		Category:      string(c.Category),
		PublishedDate: c.PublishedDate,
	}
}

// =============================================================================
// COAST FIRE
// =============================================================================

// CoastFireRequest carries percentages as whole numbers (7 means 7%).
type CoastFireRequest struct {
	CurrentAge        int     `json:"currentAge"`
	RetirementAge     int     `json:"retirementAge"`
	CurrentBalance    float64 `json:"currentBalance"`
	AnnualExpenses    float64 `json:"annualExpenses"`
	ExpectedReturnPct float64 `json:"expectedReturnPct"`
	InflationPct      float64 `json:"inflationPct"`
	WithdrawalRatePct float64 `json:"withdrawalRatePct"`
	MonthlySavings    float64 `json:"monthlySavings"`
	IncludeProjection bool    `json:"includeProjection"`
}

func (req CoastFireRequest) toInputs() coastfire.Inputs {
	return coastfire.Inputs{
		CurrentAge:        req.CurrentAge,
		RetirementAge:     req.RetirementAge,
		CurrentBalance:    req.CurrentBalance,
		AnnualExpenses:    req.AnnualExpenses,
		ExpectedReturnPct: req.ExpectedReturnPct,
		InflationPct:      req.InflationPct,
		WithdrawalRatePct: req.WithdrawalRatePct,
		MonthlySavings:    req.MonthlySavings,
	}
}

type CoastFireResponse struct {
	YearsToRetirement               int      `json:"yearsToRetirement"`
	InflationAdjustedAnnualExpenses float64  `json:"inflationAdjustedAnnualExpenses"`
	TargetRetirementAmount          float64  `json:"targetRetirementAmount"`
	CoastFireNumber                 float64  `json:"coastFireNumber"`
	CurrentGap                      float64  `json:"currentGap"`
	IsReached                       bool     `json:"isReached"`
	FutureValueOfCurrentBalance     float64  `json:"futureValueOfCurrentBalance"`
	MonthsToCoastFire               int      `json:"monthsToCoastFire"`
	WithinHorizon                   bool     `json:"withinHorizon"`
	CoastFireAge                    *float64 `json:"coastFireAge"`

	Labels     CoastFireLabels      `json:"labels"`
	Projection []ProjectionPointDTO `json:"projection,omitempty"`
}

// CoastFireLabels are display strings for the result card.
type CoastFireLabels struct {
	CoastFireNumber        string `json:"coastFireNumber"`
	TargetRetirementAmount string `json:"targetRetirementAmount"`
	CurrentGap             string `json:"currentGap"`
	TimeToCoastFire        string `json:"timeToCoastFire"`
}

type ProjectionPointDTO struct {
	Age                   int     `json:"age"`
	BalanceWithoutSavings float64 `json:"balanceWithoutSavings"`
	BalanceWithSavings    float64 `json:"balanceWithSavings"`
	CoastFireTarget       float64 `json:"coastFireTarget"`
	RetirementTarget      float64 `json:"retirementTarget"`
}

func toCoastFireResponse(r *coastfire.Result) *CoastFireResponse {
	resp := &CoastFireResponse{
		YearsToRetirement:               r.YearsToRetirement,
		InflationAdjustedAnnualExpenses: engine.RoundTo(r.InflationAdjustedAnnualExpenses, 2),
		TargetRetirementAmount:          engine.RoundTo(r.TargetRetirementAmount, 2),
		CoastFireNumber:                 engine.RoundTo(r.CoastFireNumber, 2),
		CurrentGap:                      engine.RoundTo(r.CurrentGap, 2),
		IsReached:                       r.IsReached,
		FutureValueOfCurrentBalance:     engine.RoundTo(r.FutureValueOfCurrentBalance, 2),
		MonthsToCoastFire:               r.MonthsToCoastFire,
		WithinHorizon:                   r.WithinHorizon(),
		Labels: CoastFireLabels{
			CoastFireNumber:        formatDollars(r.CoastFireNumber),
			TargetRetirementAmount: formatDollars(r.TargetRetirementAmount),
			CurrentGap:             formatDollars(r.CurrentGap),
			TimeToCoastFire:        engine.HorizonLabel(r.MonthsToCoastFire),
		},
	}
	if r.CoastFireAge != nil {
		age := engine.RoundTo(*r.CoastFireAge, 1)
		resp.CoastFireAge = &age
	}
	return resp
}

func toProjectionDTOs(points []coastfire.ProjectionPoint) []ProjectionPointDTO {
	out := make([]ProjectionPointDTO, len(points))
	for i, p := range points {
		out[i] = ProjectionPointDTO(p)
	}
	return out
}

// =============================================================================
// DEBT SNOWBALL
// =============================================================================

// DebtRequest is one debt as submitted. A missing ID is assigned by the server.
type DebtRequest struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"type,omitempty"`
	Balance      float64 `json:"balance"`
	MinPayment   float64 `json:"minPayment"`
	InterestRate float64 `json:"interestRate"`
}

type SnowballRequest struct {
	Debts               []DebtRequest `json:"debts"`
	ExtraMonthlyPayment float64       `json:"extraMonthlyPayment"`
	Strategy            string        `json:"strategy,omitempty"`
	StartDate           string        `json:"startDate,omitempty"` // YYYY-MM-DD, default today
}

func (req SnowballRequest) toInput() (snowball.Input, error) {
	in := snowball.Input{
		Debts:               make([]snowball.Debt, len(req.Debts)),
		ExtraMonthlyPayment: engine.Money(req.ExtraMonthlyPayment),
		Strategy:            snowball.Strategy(req.Strategy),
	}
	for i, d := range req.Debts {
		debt := snowball.NewDebt(d.ID, d.Name, d.Balance, d.MinPayment, d.InterestRate)
		if d.Type != "" {
			debt.Type = snowball.DebtType(d.Type)
		}
		in.Debts[i] = debt
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return snowball.Input{}, engine.Invalid("startDate", "use YYYY-MM-DD")
		}
		in.StartDate = start
	}
	return in, nil
}

type DebtDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Balance      float64 `json:"balance"`
	MinPayment   float64 `json:"minPayment"`
	InterestRate float64 `json:"interestRate"`
	PayoffMonth  *int    `json:"payoffMonth"`
}

type DebtPaymentDTO struct {
	DebtID           string  `json:"debtId"`
	Name             string  `json:"name"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
	IsPaidOff        bool    `json:"isPaidOff"`
}

type ScheduleEntryDTO struct {
	Month         int              `json:"month"`
	Debts         []DebtPaymentDTO `json:"debts"`
	TotalPayment  float64          `json:"totalPayment"`
	TotalInterest float64          `json:"totalInterest"`
}

type SnowballResponse struct {
	Strategy          string             `json:"strategy"`
	Completed         bool               `json:"completed"`
	TotalMonths       int                `json:"totalMonths"`
	TotalInterestPaid float64            `json:"totalInterestPaid"`
	TotalPaid         float64            `json:"totalPaid"`
	StartingBalance   float64            `json:"startingBalance"`
	RemainingBalance  float64            `json:"remainingBalance"`
	PayoffDate        *string            `json:"payoffDate"`
	Notice            string             `json:"notice,omitempty"`
	DebtPayoffOrder   []DebtDTO          `json:"debtPayoffOrder"`
	Schedule          []ScheduleEntryDTO `json:"schedule"`
	Labels            SnowballLabels     `json:"labels"`
}

type SnowballLabels struct {
	TotalInterestPaid string `json:"totalInterestPaid"`
	TotalPaid         string `json:"totalPaid"`
	TimeToPayoff      string `json:"timeToPayoff"`
	PayoffDate        string `json:"payoffDate"`
}

type CompareResponse struct {
	Snowball      *SnowballResponse `json:"snowball"`
	Avalanche     *SnowballResponse `json:"avalanche"`
	InterestSaved float64           `json:"interestSaved"`
	MonthsSaved   int               `json:"monthsSaved"`
	Recommended   string            `json:"recommended"`
}

func toSnowballResponse(r *snowball.Result) *SnowballResponse {
	resp := &SnowballResponse{
		Strategy:          string(r.Strategy),
		Completed:         r.Completed,
		TotalMonths:       r.TotalMonths,
		TotalInterestPaid: engine.Float(r.TotalInterestPaid),
		TotalPaid:         engine.Float(r.TotalPaid),
		StartingBalance:   engine.Float(r.StartingBalance),
		RemainingBalance:  engine.Float(r.RemainingBalance),
		DebtPayoffOrder:   make([]DebtDTO, len(r.DebtPayoffOrder)),
		Schedule:          make([]ScheduleEntryDTO, len(r.Schedule)),
		Labels: SnowballLabels{
			TotalInterestPaid: formatCents(r.TotalInterestPaid),
			TotalPaid:         formatCents(r.TotalPaid),
		},
	}

	if r.Completed {
		date := r.PayoffDate.Format(dateLayout)
		resp.PayoffDate = &date
		resp.Labels.TimeToPayoff = engine.DurationLabel(r.TotalMonths)
		resp.Labels.PayoffDate = r.PayoffDate.Format("January 2006")
	} else {
		resp.Notice = r.Err().Error()
		resp.Labels.TimeToPayoff = engine.HorizonLabel(engine.HorizonMonths)
	}

	for i, d := range r.DebtPayoffOrder {
		dto := DebtDTO{
			ID:           d.ID,
			Name:         d.Name,
			Type:         string(d.Type),
			Balance:      engine.Float(d.Balance),
			MinPayment:   engine.Float(d.MinPayment),
			InterestRate: d.InterestRate.InexactFloat64(),
		}
		if m, ok := r.PayoffMonth[d.ID]; ok {
			dto.PayoffMonth = &m
		}
		resp.DebtPayoffOrder[i] = dto
	}

	for i, e := range r.Schedule {
		entry := ScheduleEntryDTO{
			Month:         e.Month,
			Debts:         make([]DebtPaymentDTO, len(e.Debts)),
			TotalPayment:  engine.Float(e.TotalPayment),
			TotalInterest: engine.Float(e.TotalInterest),
		}
		for j, p := range e.Debts {
			entry.Debts[j] = DebtPaymentDTO{
				DebtID:           p.DebtID,
				Name:             p.Name,
				Payment:          engine.Float(p.Payment),
				Interest:         engine.Float(p.Interest),
				RemainingBalance: engine.Float(p.RemainingBalance),
				IsPaidOff:        p.IsPaidOff,
			}
		}
		resp.Schedule[i] = entry
	}
	return resp
}

func toCompareResponse(c *snowball.Comparison) *CompareResponse {
	return &CompareResponse{
		Snowball:      toSnowballResponse(c.Snowball),
		Avalanche:     toSnowballResponse(c.Avalanche),
		InterestSaved: engine.Float(c.InterestSaved),
		MonthsSaved:   c.MonthsSaved,
		Recommended:   string(c.Recommended),
	}
}

// =============================================================================
// FASTING
// =============================================================================

type PlanDTO struct {
	Name         string  `json:"name"`
	FastingHours float64 `json:"fastingHours"`
	EatingHours  float64 `json:"eatingHours"`
}

type ActivityDTO struct {
	Level       string  `json:"level"`
	Name        string  `json:"name"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
}

type FastingPlansResponse struct {
	Plans          []PlanDTO     `json:"plans"`
	ActivityLevels []ActivityDTO `json:"activityLevels"`
}

// FastingWindowRequest picks hours from Plan when set (other than
// "custom"), otherwise FastingHours. The last meal is either a full
// timestamp or a wall-clock time today.
type FastingWindowRequest struct {
	Plan         string  `json:"plan,omitempty"`
	FastingHours float64 `json:"fastingHours,omitempty"`
	LastMeal     string  `json:"lastMeal,omitempty"`     // RFC 3339
	LastMealTime string  `json:"lastMealTime,omitempty"` // HH:MM
}

type FastingWindowResponse struct {
	FastingHours float64      `json:"fastingHours"`
	EatingHours  float64      `json:"eatingHours"`
	FastingStart time.Time    `json:"fastingStart"`
	FastingEnd   time.Time    `json:"fastingEnd"`
	EatingStart  time.Time    `json:"eatingStart"`
	EatingEnd    time.Time    `json:"eatingEnd"`
	Labels       WindowLabels `json:"labels"`
}

type WindowLabels struct {
	FastingEnd string `json:"fastingEnd"`
	EatingEnd  string `json:"eatingEnd"`
}

func toWindowResponse(w *fasting.WindowResult) *FastingWindowResponse {
	return &FastingWindowResponse{
		FastingHours: w.FastingHours,
		EatingHours:  w.EatingHours,
		FastingStart: w.FastingStart,
		FastingEnd:   w.FastingEnd,
		EatingStart:  w.EatingStart,
		EatingEnd:    w.EatingEnd,
		Labels: WindowLabels{
			FastingEnd: w.FastingEnd.Format("Mon 3:04 PM"),
			EatingEnd:  w.EatingEnd.Format("Mon 3:04 PM"),
		},
	}
}

// WeightLossRequest accepts either unit system; see fasting.Measurements.
type WeightLossRequest struct {
	Gender      string  `json:"gender"`
	Age         int     `json:"age"`
	Weight      float64 `json:"weight"`
	WeightUnit  string  `json:"weightUnit,omitempty"`
	Height      float64 `json:"height,omitempty"`
	HeightUnit  string  `json:"heightUnit,omitempty"`
	Feet        float64 `json:"feet,omitempty"`
	Inches      float64 `json:"inches,omitempty"`
	Activity    string  `json:"activity"`
	FastingDays int     `json:"fastingDays"`
}

func (req WeightLossRequest) toInputs() (fasting.WeightLossInputs, error) {
	kg, cm, err := fasting.Measurements{
		Weight:     req.Weight,
		WeightUnit: fasting.WeightUnit(req.WeightUnit),
		Height:     req.Height,
		HeightUnit: fasting.HeightUnit(req.HeightUnit),
		Feet:       req.Feet,
		Inches:     req.Inches,
	}.Metric()
	if err != nil {
		return fasting.WeightLossInputs{}, err
	}
	return fasting.WeightLossInputs{
		Gender:      fasting.Gender(req.Gender),
		Age:         req.Age,
		WeightKg:    kg,
		HeightCm:    cm,
		Activity:    fasting.ActivityLevel(req.Activity),
		FastingDays: req.FastingDays,
	}, nil
}

type WeightLossResponse struct {
	BMR          float64 `json:"bmr"`  // whole kcal
	TDEE         float64 `json:"tdee"` // whole kcal
	FatLossKg    float64 `json:"fatLossKg"`
	WaterLossKg  float64 `json:"waterLossKg"`
	TotalLossKg  float64 `json:"totalLossKg"`
	FatLossLbs   float64 `json:"fatLossLbs"`
	WaterLossLbs float64 `json:"waterLossLbs"`
	TotalLossLbs float64 `json:"totalLossLbs"`
}

func toWeightLossResponse(r *fasting.WeightLossResult) *WeightLossResponse {
	lbs := r.Pounds()
	return &WeightLossResponse{
		BMR:          engine.RoundTo(r.BMR, 0),
		TDEE:         engine.RoundTo(r.TDEE, 0),
		FatLossKg:    engine.RoundTo(r.FatLossKg, 2),
		WaterLossKg:  engine.RoundTo(r.WaterLossKg, 2),
		TotalLossKg:  engine.RoundTo(r.TotalLossKg, 2),
		FatLossLbs:   engine.RoundTo(lbs.Fat, 2),
		WaterLossLbs: engine.RoundTo(lbs.Water, 2),
		TotalLossLbs: engine.RoundTo(lbs.Total, 2),
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Calculator  string `json:"calculator"`
}

type ScenarioRunResponse struct {
	Scenario ScenarioDTO `json:"scenario"`
	Result   any         `json:"result"`
}
