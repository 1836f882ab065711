package models

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds returned by the calculators. Every error produced by a
// calculation wraps exactly one of these, so callers branch with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAssumption = errors.New("invalid assumption")
	ErrNoConvergence     = errors.New("no convergence")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidResult     = errors.New("invalid result")
)

// CalcError describes a failed calculation.
type CalcError struct {
	Op   string // calculator operation, e.g. "dcf.Project"
	Kind error  // one of the Err* kinds above
	Msg  string
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *CalcError) Unwrap() error { return e.Kind }

// Errorf builds a CalcError of the given kind.
func Errorf(op string, kind error, format string, args ...any) error {
	return &CalcError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindName returns a stable machine-readable name for the error's kind,
// or "internal" when err wraps none of the known kinds.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidAssumption):
		return "invalid_assumption"
	case errors.Is(err, ErrNoConvergence):
		return "no_convergence"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidResult):
		return "invalid_result"
	default:
		return "internal"
	}
}

// Field names a numeric input for boundary validation.
type Field struct {
	Name  string
	Value float64
}

// F is shorthand for constructing a Field.
func F(name string, v float64) Field { return Field{Name: name, Value: v} }

// ValidateFinite rejects NaN and ±Inf values. Fields are checked in order,
// so the first offending field is the one reported.
func ValidateFinite(op string, fields ...Field) error {
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return Errorf(op, ErrInvalidInput, "%s must be finite, got %v", f.Name, f.Value)
		}
	}
	return nil
}

// ValidateResult rejects NaN and ±Inf outputs as ErrInvalidResult. It is
// the output-side twin of ValidateFinite for finite inputs that overflow.
func ValidateResult(op string, fields ...Field) error {
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return Errorf(op, ErrInvalidResult, "%s overflowed to %v", f.Name, f.Value)
		}
	}
	return nil
}

// ValidateSeries rejects a series containing NaN or ±Inf.
func ValidateSeries(op, name string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Errorf(op, ErrInvalidInput, "%s[%d] must be finite, got %v", name, i, x)
		}
	}
	return nil
}
