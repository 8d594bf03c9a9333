package suncalc

import "math"

// GetMoonIllumination returns the Moon's illuminated fraction, phase and
// bright limb angle at the given epoch milliseconds. Degenerate geometry
// yields a zero fraction and angle rather than NaN.
func GetMoonIllumination(ms int64) Illumination {
	d := ToDays(ms)
	s := SunCoords(d)
	m := MoonCoords(d)

	phi := math.Acos(math.Sin(s.Declination)*math.Sin(m.Declination) +
		math.Cos(s.Declination)*math.Cos(m.Declination)*math.Cos(s.RightAscension-m.RightAscension))
	inc := math.Atan2(sunDistance*math.Sin(phi), m.Distance-sunDistance*math.Cos(phi))
	angle := nanToZero(math.Atan2(
		math.Cos(s.Declination)*math.Sin(s.RightAscension-m.RightAscension),
		math.Sin(s.Declination)*math.Cos(m.Declination)-
			math.Cos(s.Declination)*math.Sin(m.Declination)*math.Cos(s.RightAscension-m.RightAscension),
	))

	sign := 1.0
	if angle < 0 {
		sign = -1
	}

	return Illumination{
		Fraction: nanToZero((1 + math.Cos(inc)) / 2),
		Phase:    0.5 + 0.5*inc*sign/math.Pi,
		Angle:    angle,
	}
}
