package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format used in the JSON documents.
const TimeLayout = "2006-01-02 15:04:05"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Round rounds x to the given number of decimal places, half away from zero.
// x is rounded from its shortest decimal form, so 1.005 rounds to 1.01.
// NaN and infinities are returned unchanged.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f, _ := decimal.NewFromFloat(x).Round(int32(places)).Float64()
	return f
}

// ParseFloat coerces s to a finite float64; anything unparsable, NaN or infinite becomes 0.
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(CleanString(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt coerces s to an int; anything unparsable becomes 0.
// A decimal value is truncated toward zero ("12.9" -> 12); values out of the int64 range become 0.
func ParseInt(s string) int {
	s = CleanString(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f := ParseFloat(s)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}

// Now returns the current local time truncated to whole seconds, the precision of TimeLayout.
var Now = func() time.Time {
	return time.Now().Truncate(time.Second)
}
