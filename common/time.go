package common

import (
	"math"
	"time"
)

// ISO8601 renders an epoch-seconds value (possibly fractional) as ISO-8601
// UTC text.  All timestamps in the output records use this format; the raw
// epoch value is retained separately where the schema calls for it.
func ISO8601(epoch float64) string {
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC().Format(time.RFC3339Nano)
}

// Round1 rounds to one decimal; the derived queue-time and duration fields
// are specified with one-decimal precision.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
