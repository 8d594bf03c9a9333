package storage

import (
	"database/sql"
	"math"

	"github.com/chrissnell/suncalc/pkg/suncalc"
)

// Event ties a storage column name to a timestamp field
type Event struct {
	Column string
	Value  *suncalc.Timestamp
}

// SunEvents returns the fields of t by the column names the backends use.
// The returned pointers alias t.
func SunEvents(t *suncalc.SunTimes) []Event {
	return []Event{
		{"solar_noon", &t.SolarNoon},
		{"nadir", &t.Nadir},
		{"sunrise", &t.Sunrise},
		{"sunset", &t.Sunset},
		{"sunrise_end", &t.SunriseEnd},
		{"sunset_start", &t.SunsetStart},
		{"dawn", &t.Dawn},
		{"dusk", &t.Dusk},
		{"nautical_dawn", &t.NauticalDawn},
		{"nautical_dusk", &t.NauticalDusk},
		{"night_end", &t.NightEnd},
		{"night", &t.Night},
		{"golden_hour_end", &t.GoldenHourEnd},
		{"golden_hour", &t.GoldenHour},
	}
}

// NullTimestamp maps a missing event to NULL
func NullTimestamp(ts suncalc.Timestamp) sql.NullInt64 {
	ms, ok := ts.Int64()
	return sql.NullInt64{Int64: ms, Valid: ok}
}

// TimestampFromNull maps NULL back to NaN
func TimestampFromNull(n sql.NullInt64) suncalc.Timestamp {
	if !n.Valid {
		return suncalc.Timestamp(math.NaN())
	}
	return suncalc.Timestamp(n.Int64)
}

// NullFloat maps NaN to NULL
func NullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: !math.IsNaN(f)}
}

// FloatFromNull maps NULL back to NaN
func FloatFromNull(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
