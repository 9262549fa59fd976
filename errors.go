package tradecore

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a construction-time validation failure.
type ErrorKind int

const (
	// Format reports a malformed value: a non-canonical symbol, a missing
	// identifier, a zero timestamp.
	Format ErrorKind = iota + 1
	// Range reports a numeric field outside its domain (negative size,
	// non-positive price, out-of-range confidence).
	Range
	// Relational reports a cross-field rule violation: OHLC ordering, a
	// crossed quote, a missing conditional price, a payload that does not
	// match its entry type.
	Relational
	// Consistency reports an aggregate-level mismatch, such as batch totals
	// that do not sum or a results slice of the wrong length.
	Consistency
	// Lookup reports a required key absent from a caller-supplied mapping,
	// such as a missing current price for a held position.
	Lookup
)

func (k ErrorKind) String() string {
	switch k {
	case Format:
		return "format"
	case Range:
		return "range"
	case Relational:
		return "relational"
	case Consistency:
		return "consistency"
	case Lookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// ValidationError is returned by every constructor in this package when a
// field or cross-field rule is violated. Field names the offending field (or
// the rule for cross-field violations), so callers can report precisely which
// part of the input was rejected.
type ValidationError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// KindOf returns the kind of a validation error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Kind
	}
	return 0
}

func errFormat(field, format string, a ...any) error {
	return &ValidationError{Kind: Format, Field: field, Reason: fmt.Sprintf(format, a...)}
}

func errRange(field, format string, a ...any) error {
	return &ValidationError{Kind: Range, Field: field, Reason: fmt.Sprintf(format, a...)}
}

func errRelational(field, format string, a ...any) error {
	return &ValidationError{Kind: Relational, Field: field, Reason: fmt.Sprintf(format, a...)}
}

func errConsistency(field, format string, a ...any) error {
	return &ValidationError{Kind: Consistency, Field: field, Reason: fmt.Sprintf(format, a...)}
}

func errLookup(field, format string, a ...any) error {
	return &ValidationError{Kind: Lookup, Field: field, Reason: fmt.Sprintf(format, a...)}
}
