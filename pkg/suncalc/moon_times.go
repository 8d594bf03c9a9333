package suncalc

import (
	"math"
	"time"
)

// MoonTimes holds moonrise and moonset for a calendar day. Rise or Set is NaN
// when the event does not occur that day; if neither occurs the Moon is
// AlwaysUp or AlwaysDown.
type MoonTimes struct {
	Rise       Timestamp
	Set        Timestamp
	AlwaysUp   bool
	AlwaysDown bool
}

const hourMs = dayMs / 24

func hoursLater(ms int64, h float64) int64 {
	return ms + int64(h*hourMs)
}

// GetMoonTimes finds moonrise and moonset during the calendar day containing
// ms, with the day starting at midnight in loc (UTC when loc is nil). It
// samples the Moon's altitude hourly and fits a quadratic through each pair of
// hours to locate horizon crossings.
func GetMoonTimes(ms int64, lat, lon float64, loc *time.Location) MoonTimes {
	if loc == nil {
		loc = time.UTC
	}
	t := time.UnixMilli(ms).In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).UnixMilli()

	hc := 0.133 * rad
	h0 := GetMoonPosition(start, lat, lon).Altitude - hc

	var rise, set, ye float64
	var hasRise, hasSet bool

	// go in 2-hour chunks, each time seeing if a 3-point quadratic curve
	// crosses zero (which means rise or set)
	for i := 1.0; i <= 24; i += 2 {
		h1 := GetMoonPosition(hoursLater(start, i), lat, lon).Altitude - hc
		h2 := GetMoonPosition(hoursLater(start, i+1), lat, lon).Altitude - hc

		a := (h0+h2)/2 - h1
		b := (h2 - h0) / 2
		xe := -b / (2 * a)
		ye = (a*xe+b)*xe + h1
		d := b*b - 4*a*h1

		roots := 0
		var x1, x2 float64
		if d >= 0 {
			dx := math.Sqrt(d) / (math.Abs(a) * 2)
			x1 = xe - dx
			x2 = xe + dx
			if math.Abs(x1) <= 1 {
				roots++
			}
			if math.Abs(x2) <= 1 {
				roots++
			}
			if x1 < -1 {
				x1 = x2
			}
		}

		switch roots {
		case 1:
			if h0 < 0 {
				rise = i + x1
				hasRise = true
			} else {
				set = i + x1
				hasSet = true
			}
		case 2:
			if ye < 0 {
				rise = i + x2
				set = i + x1
			} else {
				rise = i + x1
				set = i + x2
			}
			hasRise = true
			hasSet = true
		}

		if hasRise && hasSet {
			break
		}
		h0 = h2
	}

	result := MoonTimes{
		Rise: Timestamp(math.NaN()),
		Set:  Timestamp(math.NaN()),
	}
	if hasRise {
		result.Rise = Timestamp(hoursLater(start, rise))
	}
	if hasSet {
		result.Set = Timestamp(hoursLater(start, set))
	}
	if !hasRise && !hasSet {
		if ye > 0 {
			result.AlwaysUp = true
		} else {
			result.AlwaysDown = true
		}
	}
	return result
}
