/*
errors.go - Centralized error types for the calculation engines

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculator packages return these errors (or wrap them) so callers can
  tell "fix your numbers" apart from "valid input, plan exceeds horizon".

ERROR CATEGORIES:
  1. Invalid input - a precondition was violated before any computation ran.
     Never retryable: the same input reproduces the same error.
  2. Not converged - a bounded simulation hit the horizon cap. Not a crash;
     the partial result is still returned alongside this error value.

USAGE:
  result, err := coastfire.Compute(in)
  if errors.Is(err, engine.ErrInvalidInput) {
      var inv *engine.InvalidInputError
      errors.As(err, &inv)
      fmt.Println("bad field:", inv.Field)
  }

SEE ALSO:
  - snowball/simulate.go: Produces NotConvergedError
  - api/handlers.go: Maps these errors to HTTP statuses
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when a calculation precondition is violated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSimulationNotConverged is returned when a simulation reaches the
	// horizon cap before finishing.
	ErrSimulationNotConverged = errors.New("simulation did not converge within horizon")

	// ErrUnknownCalculator is returned when a catalog lookup misses.
	ErrUnknownCalculator = errors.New("unknown calculator")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError names the offending field and why it was rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid is shorthand for building an InvalidInputError.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// Invalidf builds an InvalidInputError with a formatted reason.
func Invalidf(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotConvergedError reports how far a capped simulation got.
type NotConvergedError struct {
	Months           int
	RemainingBalance decimal.Decimal
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("simulation stopped at %d months with %s still outstanding",
		e.Months, e.RemainingBalance.StringFixed(2))
}

func (e *NotConvergedError) Unwrap() error {
	return ErrSimulationNotConverged
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound returns true if the error indicates a missing catalog entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownCalculator)
}

// FieldOf extracts the offending field from an invalid-input error, if any.
func FieldOf(err error) string {
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		return inv.Field
	}
	return ""
}
