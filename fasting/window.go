package fasting

import (
	"time"

	"github.com/tigerkidtools/calc-engine/engine"
)

const day = 24 * time.Hour

// WindowResult holds the four boundaries of one fasting day.
// EatingEnd - FastingStart is always exactly 24 hours.
type WindowResult struct {
	FastingHours float64
	EatingHours  float64
	FastingStart time.Time
	FastingEnd   time.Time
	EatingStart  time.Time
	EatingEnd    time.Time
}

// Window computes the fasting and eating windows starting at lastMeal.
// fastingHours must be strictly between 0 and 24.
func Window(fastingHours float64, lastMeal time.Time) (*WindowResult, error) {
	if err := engine.RequireFinite("fastingHours", fastingHours); err != nil {
		return nil, err
	}
	if fastingHours <= 0 || fastingHours >= 24 {
		return nil, engine.Invalid("fastingHours", "must be between 0 and 24 hours, exclusive")
	}
	if lastMeal.IsZero() {
		return nil, engine.Invalid("lastMeal", "is required")
	}

	fasting := time.Duration(fastingHours * float64(time.Hour))
	fastingEnd := lastMeal.Add(fasting)

	return &WindowResult{
		FastingHours: fastingHours,
		EatingHours:  24 - fastingHours,
		FastingStart: lastMeal,
		FastingEnd:   fastingEnd,
		EatingStart:  fastingEnd,
		EatingEnd:    fastingEnd.Add(day - fasting),
	}, nil
}

// WindowForPlan computes the windows for a preset plan by name.
func WindowForPlan(name string, lastMeal time.Time) (*WindowResult, error) {
	plan, ok := PlanByName(name)
	if !ok {
		return nil, engine.Invalidf("plan", "unknown fasting plan %q", name)
	}
	return Window(plan.FastingHours, lastMeal)
}

// LastMealToday anchors a wall-clock "HH:MM" on the date of ref, in ref's
// location.
func LastMealToday(clock string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, engine.Invalid("lastMealTime", "use HH:MM")
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
