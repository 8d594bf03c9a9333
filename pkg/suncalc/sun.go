package suncalc

import "math"

func solarMeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

func equationOfCenter(m float64) float64 {
	return rad * (1.9148*math.Sin(m) + 0.02*math.Sin(2*m) + 0.0003*math.Sin(3*m))
}

func eclipticLongitude(m float64) float64 {
	// perihelion of the Earth
	p := rad * 102.9372
	return m + equationOfCenter(m) + p + math.Pi
}

// SunCoords returns the Sun's equatorial coordinates for a day count since
// J2000.0. Distance is left at zero.
func SunCoords(d float64) Coords {
	l := eclipticLongitude(solarMeanAnomaly(d))

	return Coords{
		RightAscension: rightAscension(l, 0),
		Declination:    declination(l, 0),
	}
}
