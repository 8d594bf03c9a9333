package restserver

import (
	"math"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/pkg/lunar"
	"github.com/chrissnell/suncalc/pkg/responseformat"
	"github.com/chrissnell/suncalc/pkg/solar"
	"github.com/chrissnell/suncalc/pkg/suncalc"
)

func formatInstant(t time.Time) string {
	return t.Format(responseformat.EventTimeLayout)
}

func transformPosition(t time.Time, lat, lon float64, pos suncalc.Position, moon bool) PositionResponse {
	r := PositionResponse{
		Time:        formatInstant(t),
		Latitude:    lat,
		Longitude:   lon,
		AzimuthRad:  pos.Azimuth,
		AzimuthDeg:  suncalc.Degrees(pos.Azimuth),
		AltitudeRad: pos.Altitude,
		AltitudeDeg: suncalc.Degrees(pos.Altitude),
	}
	if moon {
		r.DistanceKm = responseformat.Float(pos.Distance)
		r.ParallacticAngleRad = responseformat.Float(pos.ParallacticAngle)
		r.ParallacticAngleDeg = responseformat.Float(suncalc.Degrees(pos.ParallacticAngle))
	}
	return r
}

func transformSunTimes(st suncalc.SunTimes, loc *time.Location) SunTimesResponse {
	ev := func(ts suncalc.Timestamp) *string {
		return responseformat.EventTimeIn(ts, loc)
	}

	r := SunTimesResponse{
		SolarNoon:     ev(st.SolarNoon),
		Nadir:         ev(st.Nadir),
		Sunrise:       ev(st.Sunrise),
		Sunset:        ev(st.Sunset),
		SunriseEnd:    ev(st.SunriseEnd),
		SunsetStart:   ev(st.SunsetStart),
		Dawn:          ev(st.Dawn),
		Dusk:          ev(st.Dusk),
		NauticalDawn:  ev(st.NauticalDawn),
		NauticalDusk:  ev(st.NauticalDusk),
		NightEnd:      ev(st.NightEnd),
		Night:         ev(st.Night),
		GoldenHourEnd: ev(st.GoldenHourEnd),
		GoldenHour:    ev(st.GoldenHour),
	}
	if d, ok := solar.DayLength(st); ok {
		r.DayLengthMinutes = responseformat.Float(d.Minutes())
	}
	return r
}

func transformIllumination(t time.Time, ill suncalc.Illumination) IlluminationResponse {
	phase := lunar.Describe(ill)
	return IlluminationResponse{
		Time:      formatInstant(t),
		Fraction:  ill.Fraction,
		Phase:     ill.Phase,
		AngleRad:  ill.Angle,
		AngleDeg:  suncalc.Degrees(ill.Angle),
		PhaseName: phase.PhaseName,
		AgeDays:   phase.AgeDays,
		IsWaxing:  phase.IsWaxing,
	}
}

func transformMoonTimes(mt suncalc.MoonTimes, loc *time.Location) MoonTimesResponse {
	return MoonTimesResponse{
		Rise:       responseformat.EventTimeIn(mt.Rise, loc),
		Set:        responseformat.EventTimeIn(mt.Set, loc),
		AlwaysUp:   mt.AlwaysUp,
		AlwaysDown: mt.AlwaysDown,
	}
}

func transformObserver(o almanac.Observer) ObserverResponse {
	tz := "UTC"
	if o.Location != nil {
		tz = o.Location.String()
	}
	return ObserverResponse{
		Name:      o.Name,
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		Height:    o.Height,
		Timezone:  tz,
	}
}

func transformSky(o almanac.Observer, t time.Time) SkyResponse {
	loc := o.Location
	if loc == nil {
		loc = time.UTC
	}
	ms := t.UnixMilli()

	sun := suncalc.GetPosition(ms, o.Latitude, o.Longitude)
	moon := suncalc.GetMoonPosition(ms, o.Latitude, o.Longitude)
	ill := suncalc.GetMoonIllumination(ms)
	limb := lunar.BrightLimbZenithAngle(ill, moon)

	return SkyResponse{
		Observer:         transformObserver(o),
		Time:             formatInstant(t.In(loc)),
		Sun:              transformPosition(t.In(loc), o.Latitude, o.Longitude, sun, false),
		Moon:             transformPosition(t.In(loc), o.Latitude, o.Longitude, moon, true),
		Illumination:     transformIllumination(t.In(loc), ill),
		BrightLimbRad:    limb,
		BrightLimbDeg:    suncalc.Degrees(limb),
		SunTimes:         transformSunTimes(suncalc.GetTimes(ms, o.Latitude, o.Longitude, o.Height), loc),
		MoonTimes:        transformMoonTimes(suncalc.GetMoonTimes(ms, o.Latitude, o.Longitude, loc), loc),
		SunAboveHorizon:  solar.IsDaytime(sun),
		MoonAboveHorizon: moon.Altitude > 0,
	}
}

func transformAlmanacDay(d almanac.Day, loc *time.Location) AlmanacDayResponse {
	return AlmanacDayResponse{
		Date:         d.Date,
		SunTimes:     transformSunTimes(d.Times, loc),
		MoonFraction: d.Moon.Fraction,
		MoonPhase:    d.Moon.Phase,
		PhaseName:    d.MoonPhase,
		MoonTimes:    transformMoonTimes(d.MoonTimes, loc),
	}
}

func transformStats(observer, from, to string, st almanac.Stats) StatsResponse {
	return StatsResponse{
		Observer:        observer,
		From:            from,
		To:              to,
		Days:            st.Days,
		PolarDays:       st.PolarDays,
		MeanDayLength:   roundedMinutes(st.MeanDayLength),
		StdDevDayLength: roundedMinutes(st.StdDevDayLength),
		MinDayLength:    roundedMinutes(st.MinDayLength),
		MaxDayLength:    roundedMinutes(st.MaxDayLength),
	}
}

func roundedMinutes(m float64) *float64 {
	return responseformat.Float(math.Round(m*100) / 100)
}
