/*
Package fasting plans intermittent fasting windows and estimates weight loss.

PURPOSE:
  Two independent calculations:
    - Window: from a fasting length and the last meal, when fasting ends
      and when the next eating window closes. Always spans 24 hours.
    - EstimateWeightLoss: Mifflin-St Jeor BMR, scaled to TDEE by an activity
      level, turned into fat loss (3500 kcal per pound) plus a capped
      water-loss ramp.

GENDER:
  Mifflin-St Jeor has exactly two published branches. Anything other than
  male or female is rejected rather than guessed.

SEE ALSO:
  - window.go: Fasting windows and preset plans
  - weightloss.go: BMR, TDEE and loss estimate
  - units.go: Pound and feet/inch conversion
*/
package fasting

import (
	"github.com/tigerkidtools/calc-engine/engine"
)

// Slug identifies this calculator in the catalog.
const Slug = "fasting-calculator"

func init() {
	engine.RegisterCalculator(engine.Calculator{
		Slug:          Slug,
		Title:         "Fasting Calculator",
		Description:   "Plan your intermittent fasting window and estimate potential weight loss with our comprehensive fasting calculator.",
		Category:      engine.CategoryHealth,
		PublishedDate: "2025-07-20",
	})
}

// =============================================================================
// PLANS
// =============================================================================

// Plan is a named fasting schedule.
type Plan struct {
	Name         string
	FastingHours float64
	EatingHours  float64
}

// Plans are the preset schedules, in display order.
var Plans = []Plan{
	{Name: "16:8", FastingHours: 16, EatingHours: 8},
	{Name: "18:6", FastingHours: 18, EatingHours: 6},
	{Name: "20:4", FastingHours: 20, EatingHours: 4},
	{Name: "OMAD", FastingHours: 23, EatingHours: 1},
}

// PlanByName finds a preset plan.
func PlanByName(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// =============================================================================
// GENDER & ACTIVITY
// =============================================================================

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel selects one of the fixed TDEE multipliers.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVery      ActivityLevel = "very"
	ActivityExtra     ActivityLevel = "extra"
)

// Activity describes an activity level for display.
type Activity struct {
	Level       ActivityLevel
	Name        string
	Multiplier  float64
	Description string
}

// Activities lists the levels from least to most active.
var Activities = []Activity{
	{ActivitySedentary, "Sedentary", 1.2, "Little to no exercise"},
	{ActivityLight, "Lightly Active", 1.375, "Light exercise 1-3 days/week"},
	{ActivityModerate, "Moderately Active", 1.55, "Moderate exercise 3-5 days/week"},
	{ActivityVery, "Very Active", 1.725, "Hard exercise 6-7 days/week"},
	{ActivityExtra, "Extra Active", 1.9, "Very hard exercise, physical job"},
}

// Multiplier returns the TDEE multiplier for a level.
func (a ActivityLevel) Multiplier() (float64, bool) {
	for _, act := range Activities {
		if act.Level == a {
			return act.Multiplier, true
		}
	}
	return 0, false
}

// =============================================================================
// RESULTS
// =============================================================================

// WeightLossInputs are in metric units; see Measurements for conversion.
type WeightLossInputs struct {
	Gender      Gender
	Age         int
	WeightKg    float64
	HeightCm    float64
	Activity    ActivityLevel
	FastingDays int
}

// WeightLossResult is the estimate. All losses are kilograms.
type WeightLossResult struct {
	BMR         float64
	TDEE        float64
	FatLossKg   float64
	WaterLossKg float64
	TotalLossKg float64
}

// LossPounds is the estimate converted to pounds.
type LossPounds struct {
	Fat   float64
	Water float64
	Total float64
}

// Pounds converts the losses to pounds.
func (r *WeightLossResult) Pounds() LossPounds {
	return LossPounds{
		Fat:   KgToPounds(r.FatLossKg),
		Water: KgToPounds(r.WaterLossKg),
		Total: KgToPounds(r.TotalLossKg),
	}
}
