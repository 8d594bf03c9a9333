// Package suncalc computes the position of the Sun and Moon, the times of the
// Sun's daily light phases and the Moon's illumination for an observer at a
// given instant. It implements the low-precision formulas popularised by
// Vladimir Agafonkin's SunCalc (Astronomical Algorithms, Jean Meeus) and keeps
// their structure, constants and rounding points so results are comparable
// with other implementations of the same family.
//
// All functions are pure and safe for concurrent use. Angles are radians.
// Azimuth is measured from south and increases westward, which is not a
// compass bearing.
package suncalc

import "math"

const (
	rad = math.Pi / 180

	dayMs = 1000 * 60 * 60 * 24
	j1970 = 2440588
	j2000 = 2451545

	// obliquity of the Earth
	e = rad * 23.4397

	j0 = 0.0009

	// mean Earth-Sun distance in km
	sunDistance = 149598000
)

// Coords holds equatorial coordinates. Distance is in kilometers and is only
// populated for the Moon.
type Coords struct {
	RightAscension float64
	Declination    float64
	Distance       float64
}

// Position is the horizontal position of a body as seen by an observer.
// Distance and ParallacticAngle are zero for the Sun.
type Position struct {
	Azimuth          float64
	Altitude         float64
	Distance         float64
	ParallacticAngle float64
}

// Illumination describes the lit portion of the Moon. Phase runs from 0 (new)
// through 0.5 (full) back to 1. Angle is the midpoint angle of the bright limb;
// it is negative while the Moon is waxing.
type Illumination struct {
	Fraction float64
	Phase    float64
	Angle    float64
}

// Degrees converts radians to degrees.
func Degrees(r float64) float64 {
	return r / rad
}

// nanToZero maps a degenerate NaN (or negative zero) result to 0. It is
// applied only where a missing value is meaningless; sun times keep their NaNs.
func nanToZero(v float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}
