package fasting_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/fasting"
)

var dinner = time.Date(2025, time.January, 15, 20, 0, 0, 0, time.UTC)

// =============================================================================
// WINDOWS
// =============================================================================

func TestWindow_SixteenEight(t *testing.T) {
	// GIVEN: Last meal at 20:00, fasting 16 hours
	// THEN: Eat from 12:00 to 20:00 the next day
	w, err := fasting.Window(16, dinner)
	require.NoError(t, err)

	assert.Equal(t, dinner, w.FastingStart)
	assert.Equal(t, time.Date(2025, time.January, 16, 12, 0, 0, 0, time.UTC), w.FastingEnd)
	assert.Equal(t, w.FastingEnd, w.EatingStart)
	assert.Equal(t, time.Date(2025, time.January, 16, 20, 0, 0, 0, time.UTC), w.EatingEnd)
	assert.Equal(t, 8.0, w.EatingHours)
}

func TestWindow_AlwaysSpansOneDay(t *testing.T) {
	for _, hours := range []float64{0.25, 1, 12, 16.5, 18, 20, 23, 23.75} {
		w, err := fasting.Window(hours, dinner)
		require.NoError(t, err, "hours=%v", hours)
		assert.Equal(t, 24*time.Hour, w.EatingEnd.Sub(w.FastingStart), "hours=%v", hours)
		assert.Equal(t, w.FastingEnd, w.EatingStart)
	}
}

func TestWindow_FractionalHours(t *testing.T) {
	w, err := fasting.Window(16.5, dinner)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 16, 12, 30, 0, 0, time.UTC), w.FastingEnd)
}

func TestWindow_InvalidHours(t *testing.T) {
	for _, hours := range []float64{0, -1, 24, 30, math.NaN(), math.Inf(1)} {
		_, err := fasting.Window(hours, dinner)
		assert.ErrorIs(t, err, engine.ErrInvalidInput, "hours=%v", hours)
		assert.Equal(t, "fastingHours", engine.FieldOf(err))
	}
}

func TestWindowForPlan(t *testing.T) {
	w, err := fasting.WindowForPlan("OMAD", dinner)
	require.NoError(t, err)
	assert.Equal(t, 23.0, w.FastingHours)
	assert.Equal(t, 1.0, w.EatingHours)

	_, err = fasting.WindowForPlan("5:2", dinner)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Equal(t, "plan", engine.FieldOf(err))
}

func TestPlans_SumToADay(t *testing.T) {
	require.Len(t, fasting.Plans, 4)
	for _, p := range fasting.Plans {
		assert.Equal(t, 24.0, p.FastingHours+p.EatingHours, p.Name)
	}
}

func TestLastMealToday(t *testing.T) {
	ref := time.Date(2025, time.March, 2, 9, 15, 0, 0, time.UTC)

	got, err := fasting.LastMealToday("19:30", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 2, 19, 30, 0, 0, time.UTC), got)

	_, err = fasting.LastMealToday("7pm", ref)
	assert.Equal(t, "lastMealTime", engine.FieldOf(err))
}

// =============================================================================
// WEIGHT LOSS
// =============================================================================

func baseInputs() fasting.WeightLossInputs {
	return fasting.WeightLossInputs{
		Gender:      fasting.GenderMale,
		Age:         30,
		WeightKg:    70,
		HeightCm:    175,
		Activity:    fasting.ActivitySedentary,
		FastingDays: 7,
	}
}

func TestBMR_MifflinStJeor(t *testing.T) {
	assert.InDelta(t, 1648.75, fasting.BMR(fasting.GenderMale, 30, 70, 175), 1e-9)
	assert.InDelta(t, 1482.75, fasting.BMR(fasting.GenderFemale, 30, 70, 175), 1e-9)
}

func TestEstimateWeightLoss_Reference(t *testing.T) {
	// GIVEN: 30-year-old male, 70 kg, 175 cm, sedentary, 7 days
	// THEN: TDEE 1978.5, water capped at 3 lb
	result, err := fasting.EstimateWeightLoss(baseInputs())
	require.NoError(t, err)

	assert.InDelta(t, 1648.75, result.BMR, 1e-9)
	assert.InDelta(t, 1978.5, result.TDEE, 1e-9)

	wantFatLbs := 1978.5 * 7 / 3500
	assert.InDelta(t, wantFatLbs*0.453592, result.FatLossKg, 1e-9)
	assert.InDelta(t, 3*0.453592, result.WaterLossKg, 1e-9)
	assert.InDelta(t, result.FatLossKg+result.WaterLossKg, result.TotalLossKg, 1e-12)

	lbs := result.Pounds()
	assert.InDelta(t, wantFatLbs, lbs.Fat, 1e-9)
	assert.InDelta(t, 3, lbs.Water, 1e-9)
	assert.InDelta(t, wantFatLbs+3, lbs.Total, 1e-9)
}

func TestEstimateWeightLoss_WaterRamp(t *testing.T) {
	in := baseInputs()
	in.FastingDays = 2

	result, err := fasting.EstimateWeightLoss(in)
	require.NoError(t, err)
	assert.InDelta(t, 0.453592, result.WaterLossKg, 1e-9)
	assert.LessOrEqual(t, result.WaterLossKg, fasting.MaxWaterLossKg)
}

func TestEstimateWeightLoss_ActivityScalesTDEE(t *testing.T) {
	prev := 0.0
	for _, act := range fasting.Activities {
		in := baseInputs()
		in.Activity = act.Level

		result, err := fasting.EstimateWeightLoss(in)
		require.NoError(t, err)
		assert.InDelta(t, result.BMR*act.Multiplier, result.TDEE, 1e-9)
		assert.Greater(t, result.TDEE, prev, act.Name)
		prev = result.TDEE
	}
}

func TestEstimateWeightLoss_NegativeDeficitClamped(t *testing.T) {
	// GIVEN: Degenerate body size where BMR goes negative
	in := baseInputs()
	in.Gender = fasting.GenderFemale
	in.WeightKg = 0
	in.HeightCm = 0
	in.Age = 90

	result, err := fasting.EstimateWeightLoss(in)
	require.NoError(t, err)
	assert.Negative(t, result.BMR)
	assert.Zero(t, result.FatLossKg)
	assert.InDelta(t, result.WaterLossKg, result.TotalLossKg, 1e-12)
}

func TestEstimateWeightLoss_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fasting.WeightLossInputs)
		field  string
	}{
		{"other gender", func(in *fasting.WeightLossInputs) { in.Gender = "other" }, "gender"},
		{"empty gender", func(in *fasting.WeightLossInputs) { in.Gender = "" }, "gender"},
		{"negative age", func(in *fasting.WeightLossInputs) { in.Age = -1 }, "age"},
		{"negative weight", func(in *fasting.WeightLossInputs) { in.WeightKg = -70 }, "weightKg"},
		{"NaN height", func(in *fasting.WeightLossInputs) { in.HeightCm = math.NaN() }, "heightCm"},
		{"age past ceiling", func(in *fasting.WeightLossInputs) { in.Age = engine.MaxAge + 1 }, "age"},
		{"huge weight", func(in *fasting.WeightLossInputs) { in.WeightKg = 1e308 }, "weightKg"},
		{"weight past ceiling", func(in *fasting.WeightLossInputs) { in.WeightKg = fasting.MaxWeightKg + 1 }, "weightKg"},
		{"height past ceiling", func(in *fasting.WeightLossInputs) { in.HeightCm = fasting.MaxHeightCm + 0.5 }, "heightCm"},
		{"unknown activity", func(in *fasting.WeightLossInputs) { in.Activity = "couch" }, "activity"},
		{"zero days", func(in *fasting.WeightLossInputs) { in.FastingDays = 0 }, "fastingDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInputs()
			tt.mutate(&in)

			result, err := fasting.EstimateWeightLoss(in)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
			assert.Equal(t, tt.field, engine.FieldOf(err))
		})
	}
}

// =============================================================================
// UNITS
// =============================================================================

func TestMeasurements_Metric(t *testing.T) {
	kg, cm, err := fasting.Measurements{
		Weight: 154, WeightUnit: fasting.WeightLbs,
		HeightUnit: fasting.HeightFeetIn, Feet: 5, Inches: 9,
	}.Metric()
	require.NoError(t, err)
	assert.InDelta(t, 69.853168, kg, 1e-9)
	assert.InDelta(t, 175.26, cm, 1e-9)

	kg, cm, err = fasting.Measurements{Weight: 70, Height: 175}.Metric()
	require.NoError(t, err)
	assert.Equal(t, 70.0, kg)
	assert.Equal(t, 175.0, cm)
}

func TestMeasurements_Ceilings(t *testing.T) {
	_, _, err := fasting.Measurements{Weight: 1e308, WeightUnit: fasting.WeightLbs, Height: 175}.Metric()
	require.Error(t, err)
	assert.Equal(t, "weight", engine.FieldOf(err))

	_, _, err = fasting.Measurements{Weight: 70, HeightUnit: fasting.HeightFeetIn, Feet: 11}.Metric()
	require.Error(t, err)
	assert.Equal(t, "height", engine.FieldOf(err))

	kg, cm, err := fasting.Measurements{Weight: fasting.MaxWeightKg, Height: fasting.MaxHeightCm}.Metric()
	require.NoError(t, err)
	assert.Equal(t, fasting.MaxWeightKg, kg)
	assert.Equal(t, fasting.MaxHeightCm, cm)
}

func TestMeasurements_UnknownUnit(t *testing.T) {
	_, _, err := fasting.Measurements{Weight: 70, WeightUnit: "stone"}.Metric()
	assert.Equal(t, "weightUnit", engine.FieldOf(err))

	_, _, err = fasting.Measurements{Weight: 70, Height: 2, HeightUnit: "m"}.Metric()
	assert.Equal(t, "heightUnit", engine.FieldOf(err))
}

func TestPoundConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 10, fasting.KgToPounds(fasting.PoundsToKg(10)), 1e-12)
}
