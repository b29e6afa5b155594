package api

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the way the website displays money.
var printer = message.NewPrinter(language.AmericanEnglish)

// maxGroupedInt is the largest magnitude formatDollars hands to the printer
// as an int64.
const maxGroupedInt = 9e18

// formatDollars renders whole dollars, e.g. "$478,006".
func formatDollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	r := math.Round(v)
	sign := ""
	if r < 0 {
		sign = "-"
		r = -r
	}
	if r < maxGroupedInt {
		return sign + printer.Sprintf("$%d", int64(r))
	}
	return sign + "$" + groupThousands(decimal.NewFromFloat(r).StringFixed(0))
}

// groupThousands inserts commas into a string of digits.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// formatCents renders an amount with cents, e.g. "$8,300.00".
func formatCents(d decimal.Decimal) string {
	cents := d.Round(2).Shift(2).IntPart()
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + printer.Sprintf("$%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}
