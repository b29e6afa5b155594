package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// HORIZON - Hard iteration ceiling shared by every month-by-month loop
// =============================================================================

// HorizonMonths caps every simulated month loop (50 years). Reaching it means
// "not within horizon", never a literal duration.
const HorizonMonths = 600

// Clock returns the current time. Tests replace it.
var Clock = time.Now

// Today returns the current date at midnight UTC.
func Today() time.Time {
	now := Clock().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths moves a date forward by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// SplitMonths splits a month count into whole years and leftover months.
func SplitMonths(months int) (years, rest int) {
	return months / 12, months % 12
}

// DurationLabel renders a month count as "N years, M months".
func DurationLabel(months int) string {
	years, rest := SplitMonths(months)
	switch {
	case years == 0:
		return fmt.Sprintf("%d %s", rest, plural(rest, "month"))
	case rest == 0:
		return fmt.Sprintf("%d %s", years, plural(years, "year"))
	default:
		return fmt.Sprintf("%d %s, %d %s", years, plural(years, "year"), rest, plural(rest, "month"))
	}
}

// HorizonLabel renders a time-to-target that may be zero or capped.
func HorizonLabel(months int) string {
	switch {
	case months <= 0:
		return "Already reached!"
	case months >= HorizonMonths:
		return "More than 50 years"
	default:
		return DurationLabel(months)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
