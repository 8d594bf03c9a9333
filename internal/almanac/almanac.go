// Package almanac builds per-observer daily records (sun phases, moon phase
// and moonrise/moonset) from the suncalc engine.
package almanac

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/suncalc/pkg/lunar"
	"github.com/chrissnell/suncalc/pkg/solar"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"golang.org/x/sync/errgroup"
)

// DateLayout is the calendar date format used for Day.Date
const DateLayout = "2006-01-02"

// Observer is a named location on Earth. Location is the timezone that
// defines the observer's calendar days.
type Observer struct {
	Name      string
	Latitude  float64
	Longitude float64
	Height    float64
	Location  *time.Location
}

func (o Observer) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Day is the almanac entry for one observer and calendar day
type Day struct {
	Observer  string
	Date      string
	Times     suncalc.SunTimes
	DayLength float64 // minutes, NaN during polar day or night
	Moon      suncalc.Illumination
	MoonPhase string
	MoonTimes suncalc.MoonTimes
}

// Compute builds the entry for the observer's calendar day containing date.
// Sun times and illumination are evaluated at local noon.
func Compute(obs Observer, date time.Time) Day {
	loc := obs.location()
	local := date.In(loc)
	noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc).UnixMilli()

	times := suncalc.GetTimes(noon, obs.Latitude, obs.Longitude, obs.Height)
	ill := suncalc.GetMoonIllumination(noon)

	dayLength := math.NaN()
	if d, ok := solar.DayLength(times); ok {
		dayLength = d.Minutes()
	}

	return Day{
		Observer:  obs.Name,
		Date:      local.Format(DateLayout),
		Times:     times,
		DayLength: dayLength,
		Moon:      ill,
		MoonPhase: lunar.Describe(ill).PhaseName,
		MoonTimes: suncalc.GetMoonTimes(noon, obs.Latitude, obs.Longitude, loc),
	}
}

// dates returns every calendar day from..to inclusive in loc
func dates(from, to time.Time, loc *time.Location) ([]time.Time, error) {
	from = from.In(loc)
	to = to.In(loc)
	start := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 12, 0, 0, 0, loc)
	if start.After(end) {
		return nil, fmt.Errorf("range start %s is after end %s", start.Format(DateLayout), end.Format(DateLayout))
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out, nil
}

// Range computes the entries for every day from..to inclusive, spreading the
// work over at most workers goroutines. Results are ordered by date.
func Range(ctx context.Context, obs Observer, from, to time.Time, workers int) ([]Day, error) {
	return rangeWith(ctx, obs, from, to, workers, Compute)
}

func rangeWith(ctx context.Context, obs Observer, from, to time.Time, workers int, compute func(Observer, time.Time) Day) ([]Day, error) {
	days, err := dates(from, to, obs.location())
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]Day, len(days))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range days {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = compute(obs, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
