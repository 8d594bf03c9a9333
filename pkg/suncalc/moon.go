package suncalc

import "math"

// Lunar terms from the low-precision theory in Astronomical Algorithms,
// all linear in days since J2000.0.

func lunarEclipticLongitude(d float64) float64 {
	return rad * (218.316 + 13.176396*d)
}

func lunarMeanAnomaly(d float64) float64 {
	return rad * (134.963 + 13.064993*d)
}

func lunarMeanDistance(d float64) float64 {
	return rad * (93.272 + 13.229350*d)
}

// MoonCoords returns the Moon's equatorial coordinates and geocentric distance
// in km for a day count since J2000.0.
func MoonCoords(d float64) Coords {
	m := lunarMeanAnomaly(d)
	f := lunarMeanDistance(d)

	l := lunarEclipticLongitude(d) + rad*6.289*math.Sin(m)
	b := rad * 5.128 * math.Sin(f)
	dt := 385001 - 20905*math.Cos(m)

	return Coords{
		RightAscension: rightAscension(l, b),
		Declination:    declination(l, b),
		Distance:       nanToZero(dt),
	}
}
