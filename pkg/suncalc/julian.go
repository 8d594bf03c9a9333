package suncalc

import (
	"math"
	"time"
)

// Timestamp is a count of milliseconds since the Unix epoch. Computed event
// times are NaN when the event does not happen on the requested day.
type Timestamp float64

// Valid reports whether the timestamp holds an actual instant.
func (ts Timestamp) Valid() bool {
	return !math.IsNaN(float64(ts)) && !math.IsInf(float64(ts), 0)
}

// Int64 returns the timestamp as integer milliseconds.
func (ts Timestamp) Int64() (int64, bool) {
	if !ts.Valid() {
		return 0, false
	}
	return int64(ts), true
}

// Time returns the timestamp as a UTC time.Time, or the zero time when the
// timestamp is not valid.
func (ts Timestamp) Time() time.Time {
	ms, ok := ts.Int64()
	if !ok {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// ToJulianDay converts epoch milliseconds to a Julian day.
func ToJulianDay(ms int64) float64 {
	return float64(ms)/dayMs - 0.5 + j1970
}

// FromJulianDay converts a Julian day to epoch milliseconds, rounded half away
// from zero. NaN in gives NaN out.
func FromJulianDay(j float64) Timestamp {
	return Timestamp(math.Round((j + 0.5 - j1970) * dayMs))
}

// ToDays returns the number of days since J2000.0 for epoch milliseconds.
func ToDays(ms int64) float64 {
	return ToJulianDay(ms) - j2000
}
