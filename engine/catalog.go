/*
catalog.go - Calculator registration and lookup

PURPOSE:
  Each calculator package registers a description of itself on init().
  The API lists the catalog so the website can render its tool index
  without hard-coding what exists.

USAGE:
  // In coastfire/types.go
  func init() {
      engine.RegisterCalculator(engine.Calculator{Slug: "coast-fire-calculator", ...})
  }

  // In api
  for _, c := range engine.ListCalculators() { ... }

SEE ALSO:
  - coastfire/types.go, snowball/types.go, fasting/types.go: Registrations
*/
package engine

import (
	"sort"
	"sync"
)

// Category groups calculators on the tool index.
type Category string

const (
	CategoryFinance Category = "Finance"
	CategoryHealth  Category = "Health"
)

// Calculator describes one tool in the catalog.
type Calculator struct {
	Slug          string
	Title         string
	Description   string
	Category      Category
	PublishedDate string // YYYY-MM-DD
}

var (
	calculatorRegistry = make(map[string]Calculator)
	registryMu         sync.RWMutex
)

// RegisterCalculator adds a calculator to the global catalog.
// Call this from calculator package init() functions.
func RegisterCalculator(c Calculator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	calculatorRegistry[c.Slug] = c
}

// LookupCalculator finds a calculator by slug.
func LookupCalculator(slug string) (Calculator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := calculatorRegistry[slug]
	if !ok {
		return Calculator{}, ErrUnknownCalculator
	}
	return c, nil
}

// ListCalculators returns the catalog ordered by slug.
func ListCalculators() []Calculator {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Calculator, 0, len(calculatorRegistry))
	for _, c := range calculatorRegistry {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result
}

// ListCalculatorsByCategory returns the calculators in one category.
func ListCalculatorsByCategory(category Category) []Calculator {
	var result []Calculator
	for _, c := range ListCalculators() {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result
}
