// Package offset parses textual tail offset specifications.
//
// An offset specification has two shapes: the literal "+0", which requests
// the whole resource starting at its first unit, and a signed count.
// Positive counts are 1-based positions from the start of the resource;
// negative counts are positions from the end. Text with no sign prefix
// parses as a count from the end, which is the tail default.
package offset

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a parsed offset specification. It is immutable and comparable.
type Value struct {
	// PlusZero is set for the literal "+0" specification.
	PlusZero bool
	// N is the signed count. Only meaningful when PlusZero is unset.
	N int64
}

// FromStartZero returns the "+0" sentinel.
func FromStartZero() Value { return Value{PlusZero: true} }

// Signed returns an explicit signed offset.
func Signed(n int64) Value { return Value{N: n} }

// InvalidError reports an offset specification that is not a well-formed
// integer or the "+0" sentinel. Text carries the original specification so
// callers can report it verbatim.
type InvalidError struct {
	Text string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid offset %q", e.Text)
}

// minInt64Magnitude is |math.MinInt64|, which has no positive int64
// counterpart.
const minInt64Magnitude = uint64(1) << 63

// Parse converts an offset specification into a Value.
//
// "+0" is the sentinel. Text with an explicit + or - sign parses as that
// signed number and is used unchanged. Text with no sign is negated. The
// unsigned branch parses through uint64 so that the magnitude of
// math.MinInt64 stays representable and maps to math.MinInt64 itself;
// anything larger is invalid.
func Parse(spec string) (Value, error) {
	if spec == "+0" {
		return FromStartZero(), nil
	}
	if spec == "" {
		return Value{}, &InvalidError{Text: spec}
	}
	switch spec[0] {
	case '+', '-':
		if !allDigits(spec[1:]) {
			return Value{}, &InvalidError{Text: spec}
		}
		n, err := strconv.ParseInt(spec, 10, 64)
		if err != nil {
			return Value{}, &InvalidError{Text: spec}
		}
		return Signed(n), nil
	default:
		if !allDigits(spec) {
			return Value{}, &InvalidError{Text: spec}
		}
		u, err := strconv.ParseUint(spec, 10, 64)
		if err != nil || u > minInt64Magnitude {
			return Value{}, &InvalidError{Text: spec}
		}
		if u == minInt64Magnitude {
			return Signed(math.MinInt64), nil
		}
		return Signed(-int64(u)), nil
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
