package timescaledb

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/storage"
)

func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		obs  almanac.Observer
		date time.Time
	}{
		{"mid latitude", almanac.Observer{Name: "kyiv", Latitude: 50.5, Longitude: 30.5}, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"polar day", almanac.Observer{Name: "alert", Latitude: 82.5, Longitude: -62.3}, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := almanac.Compute(tt.obs, tt.date)

			r, err := toRecord(d)
			if err != nil {
				t.Fatalf("toRecord() error = %v", err)
			}
			got, err := fromRecord(r)
			if err != nil {
				t.Fatalf("fromRecord() error = %v", err)
			}

			if got.Observer != d.Observer || got.Date != d.Date || got.Moon != d.Moon || got.MoonPhase != d.MoonPhase {
				t.Errorf("got %+v, want %+v", got, d)
			}
			gotEvents := storage.SunEvents(&got.Times)
			for i, e := range storage.SunEvents(&d.Times) {
				a, b := *gotEvents[i].Value, *e.Value
				if a.Valid() != b.Valid() || (b.Valid() && a != b) {
					t.Errorf("%s = %v, want %v", e.Column, a, b)
				}
			}
			if math.IsNaN(d.DayLength) != math.IsNaN(got.DayLength) || (!math.IsNaN(d.DayLength) && d.DayLength != got.DayLength) {
				t.Errorf("DayLength = %v, want %v", got.DayLength, d.DayLength)
			}
			if got.MoonTimes.AlwaysUp != d.MoonTimes.AlwaysUp || got.MoonTimes.AlwaysDown != d.MoonTimes.AlwaysDown ||
				got.MoonTimes.Rise.Valid() != d.MoonTimes.Rise.Valid() || got.MoonTimes.Set.Valid() != d.MoonTimes.Set.Valid() {
				t.Errorf("MoonTimes = %+v, want %+v", got.MoonTimes, d.MoonTimes)
			}
		})
	}
}

func TestRecordEncodesMissingEventsAsNull(t *testing.T) {
	d := almanac.Compute(almanac.Observer{Name: "alert", Latitude: 82.5, Longitude: -62.3}, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	r, err := toRecord(d)
	if err != nil {
		t.Fatalf("toRecord() error = %v", err)
	}
	if r.DayLength != nil {
		t.Errorf("DayLength = %v, want nil", *r.DayLength)
	}

	var sun map[string]any
	if err := json.Unmarshal(r.SunTimes.Bytes, &sun); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, ok := sun["sunrise"]; !ok || v != nil {
		t.Errorf("sunrise = %v, want null", v)
	}
	if sun["solar_noon"] == nil {
		t.Error("solar_noon should be present during polar day")
	}
}
