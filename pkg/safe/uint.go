// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Uint16 converts signed integers to uint16 with range validation.
func Uint16[T ~int | ~int32 | ~int64](v T) (uint16, error) {
	if v < 0 || int64(v) > math.MaxUint16 {
		return 0, fmt.Errorf("value %d out of uint16 range", v)
	}
	return uint16(v), nil
}
