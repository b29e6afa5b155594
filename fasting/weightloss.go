package fasting

import (
	"math"

	"github.com/tigerkidtools/calc-engine/engine"
)

const (
	// KcalPerPoundFat is the classic 3500 kcal ≈ 1 lb of body fat.
	KcalPerPoundFat = 3500.0

	// Water loss ramps at half a pound per fasting day, capped at 3 lb.
	waterLossLbsPerDay = 0.5
	maxWaterLossLbs    = 3.0
)

// MaxWaterLossKg is the ceiling on estimated water loss.
const MaxWaterLossKg = maxWaterLossLbs * KgPerPound

// Body measurement ceilings.
const (
	MaxWeightKg = 1000.0
	MaxHeightCm = 300.0
)

// Validate checks every precondition of EstimateWeightLoss.
func (in WeightLossInputs) Validate() error {
	switch in.Gender {
	case GenderMale, GenderFemale:
	default:
		return engine.Invalidf("gender", "must be %q or %q", GenderMale, GenderFemale)
	}
	if err := engine.RequireAge("age", in.Age); err != nil {
		return err
	}
	if err := engine.RequireNonNegative("weightKg", in.WeightKg); err != nil {
		return err
	}
	if err := engine.RequireAtMost("weightKg", in.WeightKg, MaxWeightKg); err != nil {
		return err
	}
	if err := engine.RequireNonNegative("heightCm", in.HeightCm); err != nil {
		return err
	}
	if err := engine.RequireAtMost("heightCm", in.HeightCm, MaxHeightCm); err != nil {
		return err
	}
	if _, ok := in.Activity.Multiplier(); !ok {
		return engine.Invalidf("activity", "unknown activity level %q", in.Activity)
	}
	if in.FastingDays < 1 {
		return engine.Invalid("fastingDays", "must be at least 1")
	}
	return nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(gender Gender, age int, weightKg, heightCm float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// EstimateWeightLoss treats each fasting day as a full-TDEE deficit.
func EstimateWeightLoss(in WeightLossInputs) (*WeightLossResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	multiplier, _ := in.Activity.Multiplier()
	bmr := BMR(in.Gender, in.Age, in.WeightKg, in.HeightCm)
	tdee := bmr * multiplier

	// BMR can go negative at extreme inputs; a negative deficit is no loss.
	deficit := math.Max(0, tdee*float64(in.FastingDays))
	fatKg := deficit / KcalPerPoundFat * KgPerPound

	waterLbs := math.Min(float64(in.FastingDays)*waterLossLbsPerDay, maxWaterLossLbs)
	waterKg := waterLbs * KgPerPound

	return &WeightLossResult{
		BMR:         bmr,
		TDEE:        tdee,
		FatLossKg:   fatKg,
		WaterLossKg: waterKg,
		TotalLossKg: fatKg + waterKg,
	}, nil
}
