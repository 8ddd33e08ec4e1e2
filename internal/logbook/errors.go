package logbook

import (
	"errors"
	"fmt"
)

// Kind classifies a logbook failure. Every kind is a deterministic input
// error: retrying the same call yields the same result.
type Kind int

const (
	KindInvalidDateFormat Kind = iota + 1
	KindInvalidLimit
	KindMissingField
	KindInvalidDuration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidDateFormat:
		return "InvalidDateFormat"
	case KindInvalidLimit:
		return "InvalidLimit"
	case KindMissingField:
		return "MissingField"
	case KindInvalidDuration:
		return "InvalidDuration"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error shape returned by this package.
// Field names the offending input ("from", "to", "limit", "date", ...)
// and Value carries the raw value as received.
type Error struct {
	Kind  Kind
	Field string
	Value string
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidDateFormat = &Error{Kind: KindInvalidDateFormat}
	ErrInvalidLimit      = &Error{Kind: KindInvalidLimit}
	ErrMissingField      = &Error{Kind: KindMissingField}
	ErrInvalidDuration   = &Error{Kind: KindInvalidDuration}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidDateFormat:
		if e.Field != "" {
			return fmt.Sprintf("invalid date format for %s: %q (expected YYYY-MM-DD)", e.Field, e.Value)
		}
		return fmt.Sprintf("invalid date format: %q", e.Value)
	case KindInvalidLimit:
		return fmt.Sprintf("invalid limit %q: must be a positive integer", e.Value)
	case KindMissingField:
		return fmt.Sprintf("missing required field: %s", e.Field)
	case KindInvalidDuration:
		return fmt.Sprintf("invalid duration %q: must be a positive integer", e.Value)
	default:
		return fmt.Sprintf("logbook error %s", e.Kind)
	}
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the Kind of a logbook error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func invalidDate(field, value string) error {
	return &Error{Kind: KindInvalidDateFormat, Field: field, Value: value}
}
