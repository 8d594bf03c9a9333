// Package solar provides daylight helpers built on top of suncalc results.
package solar

import (
	"math"
	"time"

	"github.com/chrissnell/suncalc/pkg/suncalc"
)

// sunriseAltitude is the apparent altitude of the Sun's upper limb at
// sunrise/sunset, in radians.
const sunriseAltitude = -0.833 * math.Pi / 180

// DayLength returns the time between sunrise and sunset. The second return
// value is false during polar day or polar night, when one of the two events
// does not occur.
func DayLength(t suncalc.SunTimes) (time.Duration, bool) {
	if !t.Sunrise.Valid() || !t.Sunset.Valid() {
		return 0, false
	}
	return time.Duration(float64(t.Sunset-t.Sunrise)) * time.Millisecond, true
}

// IsDaytime reports whether the Sun's upper limb is above the horizon.
func IsDaytime(pos suncalc.Position) bool {
	return pos.Altitude > sunriseAltitude
}

// FormatSunTime formats an event time as a clock time in the given timezone
// location. Events that do not occur format as an empty string.
func FormatSunTime(ts suncalc.Timestamp, loc *time.Location) string {
	if !ts.Valid() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.Time().In(loc).Format("3:04 PM")
}
