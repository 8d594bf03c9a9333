// Package lunar turns the Moon's illumination into the phase information
// people read off a calendar: a phase name, the Moon's age and whether it is
// waxing. It also orients the bright limb for an observer so an icon can be
// rotated to match the sky.
package lunar

import (
	"math"

	"github.com/chrissnell/suncalc/pkg/suncalc"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Phase        float64 // Phase fraction [0,1]: 0=new, 0.5=full
	Illumination float64 // Illuminated fraction [0,1]: 0=new, 1=full
	AgeDays      float64 // Days since new moon [0,SynodicMonth]
	IsWaxing     bool    // True when moon is waxing (getting fuller)
	PhaseName    string  // Human-readable phase name
}

// Describe derives phase information from an illumination result
func Describe(ill suncalc.Illumination) MoonPhase {
	isWaxing := ill.Phase < 0.5

	return MoonPhase{
		Phase:        ill.Phase,
		Illumination: ill.Fraction,
		AgeDays:      ill.Phase * SynodicMonth,
		IsWaxing:     isWaxing,
		PhaseName:    phaseName(ill.Fraction, isWaxing),
	}
}

// Calculate computes the moon phase for epoch milliseconds
func Calculate(ms int64) MoonPhase {
	return Describe(suncalc.GetMoonIllumination(ms))
}

// phaseName returns the 8-phase name based on illumination percentage and direction
func phaseName(illumination float64, isWaxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if isWaxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if isWaxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if isWaxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

// BrightLimbZenithAngle returns the angle of the Moon's bright limb measured
// from the observer's zenith rather than from celestial north, in radians.
// Rotating a phase icon by this angle matches what the observer sees.
func BrightLimbZenithAngle(ill suncalc.Illumination, pos suncalc.Position) float64 {
	return normalizeRadians(ill.Angle - pos.ParallacticAngle)
}

// normalizeRadians wraps an angle in radians to the range (-π, π]
func normalizeRadians(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
