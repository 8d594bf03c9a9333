package suncalc

import "math"

// TimeAngle names the pair of events at which the Sun crosses Angle degrees of
// altitude, once rising and once setting.
type TimeAngle struct {
	Angle    float64
	RiseName string
	SetName  string
}

// Event is a named instant produced by GetCustomTimes.
type Event struct {
	Name string
	Time Timestamp
}

// SunTimes holds the day's light phases. A field is NaN when the Sun does not
// reach the corresponding altitude that day (polar day or night).
type SunTimes struct {
	SolarNoon     Timestamp
	Nadir         Timestamp
	Sunrise       Timestamp
	Sunset        Timestamp
	SunriseEnd    Timestamp
	SunsetStart   Timestamp
	Dawn          Timestamp
	Dusk          Timestamp
	NauticalDawn  Timestamp
	NauticalDusk  Timestamp
	NightEnd      Timestamp
	Night         Timestamp
	GoldenHourEnd Timestamp
	GoldenHour    Timestamp
}

var timeAngles = [...]TimeAngle{
	{-0.833, "sunrise", "sunset"},
	{-0.3, "sunriseEnd", "sunsetStart"},
	{-6, "dawn", "dusk"},
	{-12, "nauticalDawn", "nauticalDusk"},
	{-18, "nightEnd", "night"},
	{6, "goldenHourEnd", "goldenHour"},
}

// DefaultTimeAngles returns a copy of the thresholds used by GetTimes.
func DefaultTimeAngles() []TimeAngle {
	out := make([]TimeAngle, len(timeAngles))
	copy(out, timeAngles[:])
	return out
}

func julianCycle(d, lw float64) float64 {
	return math.Round(d - j0 - lw/(2*math.Pi))
}

func approxTransit(ht, lw, n float64) float64 {
	return j0 + (ht+lw)/(2*math.Pi) + n
}

func solarTransitJ(ds, m, l float64) float64 {
	return j2000 + ds + 0.0053*math.Sin(m) - 0.0069*math.Sin(2*l)
}

func hourAngle(h, phi, d float64) float64 {
	return math.Acos((math.Sin(h) - math.Sin(phi)*math.Sin(d)) / (math.Cos(phi) * math.Cos(d)))
}

// observerAngle is the horizon dip in degrees for an observer height in meters.
func observerAngle(height float64) float64 {
	return -2.076 * math.Sqrt(height) / 60
}

// getSetJ returns the Julian day of the setting crossing of altitude h.
func getSetJ(h, lw, phi, dec, n, m, l float64) float64 {
	w := hourAngle(h, phi, dec)
	a := approxTransit(w, lw, n)
	return solarTransitJ(a, m, l)
}

// solarDay carries the per-day quantities shared by every threshold.
type solarDay struct {
	lw, phi, dh float64
	n, m, l     float64
	dec         float64
	noon        float64
}

func newSolarDay(ms int64, lat, lon, height float64) solarDay {
	lw := rad * -lon
	d := ToDays(ms)
	n := julianCycle(d, lw)
	ds := approxTransit(0, lw, n)
	m := solarMeanAnomaly(ds)
	l := eclipticLongitude(m)

	return solarDay{
		lw:   lw,
		phi:  rad * lat,
		dh:   observerAngle(height),
		n:    n,
		m:    m,
		l:    l,
		dec:  declination(l, 0),
		noon: solarTransitJ(ds, m, l),
	}
}

// crossing returns the rise and set Julian days for a threshold in degrees.
// The rise is the set mirrored around solar noon.
func (sd solarDay) crossing(angle float64) (rise, set float64) {
	h0 := (angle + sd.dh) * rad
	set = getSetJ(h0, sd.lw, sd.phi, sd.dec, sd.n, sd.m, sd.l)
	rise = sd.noon - (set - sd.noon)
	return rise, set
}

// GetTimes calculates the Sun's light phases for the day containing ms at
// lat/lon degrees. height is the observer's height in meters above the horizon
// and adjusts every threshold.
func GetTimes(ms int64, lat, lon, height float64) SunTimes {
	sd := newSolarDay(ms, lat, lon, height)

	var rs [len(timeAngles)][2]Timestamp
	for i, ta := range timeAngles {
		rise, set := sd.crossing(ta.Angle)
		rs[i] = [2]Timestamp{FromJulianDay(rise), FromJulianDay(set)}
	}

	return SunTimes{
		SolarNoon:     FromJulianDay(sd.noon),
		Nadir:         FromJulianDay(sd.noon - 0.5),
		Sunrise:       rs[0][0],
		Sunset:        rs[0][1],
		SunriseEnd:    rs[1][0],
		SunsetStart:   rs[1][1],
		Dawn:          rs[2][0],
		Dusk:          rs[2][1],
		NauticalDawn:  rs[3][0],
		NauticalDusk:  rs[3][1],
		NightEnd:      rs[4][0],
		Night:         rs[4][1],
		GoldenHourEnd: rs[5][0],
		GoldenHour:    rs[5][1],
	}
}

// GetCustomTimes runs the GetTimes solver over caller supplied thresholds.
// The result starts with solarNoon and nadir followed by a rise and set event
// for every angle, in order.
func GetCustomTimes(ms int64, lat, lon, height float64, angles []TimeAngle) []Event {
	sd := newSolarDay(ms, lat, lon, height)

	events := make([]Event, 0, 2+2*len(angles))
	events = append(events,
		Event{Name: "solarNoon", Time: FromJulianDay(sd.noon)},
		Event{Name: "nadir", Time: FromJulianDay(sd.noon - 0.5)},
	)
	for _, ta := range angles {
		rise, set := sd.crossing(ta.Angle)
		events = append(events,
			Event{Name: ta.RiseName, Time: FromJulianDay(rise)},
			Event{Name: ta.SetName, Time: FromJulianDay(set)},
		)
	}
	return events
}
