package suncalc

import "math"

func rightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(e)-math.Tan(b)*math.Sin(e), math.Cos(l))
}

func declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(e) + math.Cos(b)*math.Sin(e)*math.Sin(l))
}

// azimuth is measured from south, westward positive
func azimuth(h, phi, dec float64) float64 {
	return math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

func altitude(h, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h))
}

func siderealTime(d, lw float64) float64 {
	return rad*(280.16+360.9856235*d) - lw
}

// astroRefraction follows formula 16.4 of Astronomical Algorithms (2nd ed.).
// Altitudes below the horizon are clamped to 0 so the formula stays defined.
// Some write-ups give tan(0.0002967/(...)) instead. That form only agrees
// near the horizon and leaves about 0.01° of refraction at the zenith.
func astroRefraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

func parallacticAngle(h, phi, dec float64) float64 {
	return math.Atan2(math.Sin(h), math.Tan(phi)*math.Cos(dec)-math.Sin(dec)*math.Cos(h))
}

// GetPosition returns the Sun's azimuth and altitude for an observer at
// lat/lon degrees at the given epoch milliseconds.
func GetPosition(ms int64, lat, lon float64) Position {
	lw := rad * -lon
	phi := rad * lat
	d := ToDays(ms)

	c := SunCoords(d)
	h := siderealTime(d, lw) - c.RightAscension

	return Position{
		Azimuth:  azimuth(h, phi, c.Declination),
		Altitude: altitude(h, phi, c.Declination),
	}
}

// GetMoonPosition returns the Moon's azimuth, refracted altitude, distance in
// km and parallactic angle for an observer at lat/lon degrees.
func GetMoonPosition(ms int64, lat, lon float64) Position {
	lw := rad * -lon
	phi := rad * lat
	d := ToDays(ms)

	c := MoonCoords(d)
	h := siderealTime(d, lw) - c.RightAscension
	alt := altitude(h, phi, c.Declination)
	alt += astroRefraction(alt)

	return Position{
		Azimuth:          azimuth(h, phi, c.Declination),
		Altitude:         alt,
		Distance:         c.Distance,
		ParallacticAngle: nanToZero(parallacticAngle(h, phi, c.Declination)),
	}
}
