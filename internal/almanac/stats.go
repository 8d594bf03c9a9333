package almanac

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes day lengths over a set of days. Lengths are in minutes.
// Days without a sunrise or sunset are counted in PolarDays and left out of
// the other figures, which are NaN when no regular day remains.
type Stats struct {
	Days            int
	PolarDays       int
	MeanDayLength   float64
	StdDevDayLength float64
	MinDayLength    float64
	MaxDayLength    float64
}

// Summarize computes day-length statistics for days
func Summarize(days []Day) Stats {
	st := Stats{
		Days:            len(days),
		MeanDayLength:   math.NaN(),
		StdDevDayLength: math.NaN(),
		MinDayLength:    math.NaN(),
		MaxDayLength:    math.NaN(),
	}

	lengths := make([]float64, 0, len(days))
	for _, d := range days {
		if math.IsNaN(d.DayLength) {
			st.PolarDays++
			continue
		}
		lengths = append(lengths, d.DayLength)
	}
	if len(lengths) == 0 {
		return st
	}

	st.MeanDayLength, st.StdDevDayLength = stat.MeanStdDev(lengths, nil)
	if len(lengths) == 1 {
		st.StdDevDayLength = 0
	}
	st.MinDayLength = floats.Min(lengths)
	st.MaxDayLength = floats.Max(lengths)
	return st
}
