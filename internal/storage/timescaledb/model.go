package timescaledb

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/storage"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"github.com/jackc/pgtype"
	"gorm.io/gorm"
)

// DayRecord is the almanac_days row. Sun and moon event times are kept as
// JSONB objects of epoch milliseconds with null for events that do not occur.
type DayRecord struct {
	gorm.Model

	Observer     string       `gorm:"uniqueIndex:idx_observer_date;not null"`
	Date         string       `gorm:"uniqueIndex:idx_observer_date;type:text;not null"`
	SunTimes     pgtype.JSONB `gorm:"type:jsonb;not null"`
	DayLength    *float64
	MoonFraction float64
	MoonPhase    float64
	MoonAngle    float64
	PhaseName    string       `gorm:"type:text"`
	MoonTimes    pgtype.JSONB `gorm:"type:jsonb;not null"`
}

func (DayRecord) TableName() string {
	return "almanac_days"
}

type moonTimesJSON struct {
	Rise       *int64 `json:"rise"`
	Set        *int64 `json:"set"`
	AlwaysUp   bool   `json:"always_up"`
	AlwaysDown bool   `json:"always_down"`
}

func msOrNil(ts suncalc.Timestamp) *int64 {
	ms, ok := ts.Int64()
	if !ok {
		return nil
	}
	return &ms
}

func timestampOrNaN(ms *int64) suncalc.Timestamp {
	if ms == nil {
		return suncalc.Timestamp(math.NaN())
	}
	return suncalc.Timestamp(*ms)
}

func toRecord(d almanac.Day) (DayRecord, error) {
	r := DayRecord{
		Observer:     d.Observer,
		Date:         d.Date,
		MoonFraction: d.Moon.Fraction,
		MoonPhase:    d.Moon.Phase,
		MoonAngle:    d.Moon.Angle,
		PhaseName:    d.MoonPhase,
	}
	if !math.IsNaN(d.DayLength) {
		dl := d.DayLength
		r.DayLength = &dl
	}

	sun := make(map[string]*int64)
	for _, e := range storage.SunEvents(&d.Times) {
		sun[e.Column] = msOrNil(*e.Value)
	}
	if err := r.SunTimes.Set(sun); err != nil {
		return DayRecord{}, fmt.Errorf("encoding sun times: %w", err)
	}

	moon := moonTimesJSON{
		Rise:       msOrNil(d.MoonTimes.Rise),
		Set:        msOrNil(d.MoonTimes.Set),
		AlwaysUp:   d.MoonTimes.AlwaysUp,
		AlwaysDown: d.MoonTimes.AlwaysDown,
	}
	if err := r.MoonTimes.Set(moon); err != nil {
		return DayRecord{}, fmt.Errorf("encoding moon times: %w", err)
	}

	return r, nil
}

func fromRecord(r DayRecord) (almanac.Day, error) {
	d := almanac.Day{
		Observer:  r.Observer,
		Date:      r.Date,
		DayLength: math.NaN(),
		Moon: suncalc.Illumination{
			Fraction: r.MoonFraction,
			Phase:    r.MoonPhase,
			Angle:    r.MoonAngle,
		},
		MoonPhase: r.PhaseName,
	}
	if r.DayLength != nil {
		d.DayLength = *r.DayLength
	}

	var sun map[string]*int64
	if err := json.Unmarshal(r.SunTimes.Bytes, &sun); err != nil {
		return almanac.Day{}, fmt.Errorf("decoding sun times: %w", err)
	}
	for _, e := range storage.SunEvents(&d.Times) {
		*e.Value = timestampOrNaN(sun[e.Column])
	}

	var moon moonTimesJSON
	if err := json.Unmarshal(r.MoonTimes.Bytes, &moon); err != nil {
		return almanac.Day{}, fmt.Errorf("decoding moon times: %w", err)
	}
	d.MoonTimes = suncalc.MoonTimes{
		Rise:       timestampOrNaN(moon.Rise),
		Set:        timestampOrNaN(moon.Set),
		AlwaysUp:   moon.AlwaysUp,
		AlwaysDown: moon.AlwaysDown,
	}

	return d, nil
}
