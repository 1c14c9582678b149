// Package window resolves a parsed offset against a resource's total unit
// count, yielding the zero-based start index of the trailing window.
package window

import (
	"math"

	"github.com/oddbit-io/tailr/pkg/offset"
)

// Resolve computes the index of the first unit to emit, given a parsed
// offset and the total number of units in the resource. The second return
// is false when nothing should be emitted. Resolve is a pure function of
// its arguments and never fails.
//
// Rules, first match wins:
//   - total == 0: nothing, whatever the offset.
//   - "+0": start at 0.
//   - negative n: total - |n|, or 0 when |n| >= total.
//   - positive n <= total: n - 1 (1-based position to 0-based index).
//   - positive n > total, or n == 0: nothing.
func Resolve(v offset.Value, total uint64) (uint64, bool) {
	switch {
	case total == 0:
		return 0, false
	case v.PlusZero:
		return 0, true
	case v.N < 0:
		if mag := magnitude(v.N); mag < total {
			return total - mag, true
		}
		return 0, true
	case v.N > 0 && uint64(v.N) <= total:
		return uint64(v.N) - 1, true
	default:
		return 0, false
	}
}

// magnitude is |n| for negative n, computed in uint64 so math.MinInt64
// does not overflow.
func magnitude(n int64) uint64 {
	if n == math.MinInt64 {
		return uint64(1) << 63
	}
	return uint64(-n)
}
