package suncalc

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDayRoundTrip(t *testing.T) {
	timestamps := []int64{
		0,
		1,
		-1,
		refDate,
		-86400001,
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		time.Date(2099, 12, 31, 23, 59, 59, 999e6, time.UTC).UnixMilli(),
	}

	for _, ms := range timestamps {
		got, ok := FromJulianDay(ToJulianDay(ms)).Int64()
		if !ok {
			t.Fatalf("round trip of %d produced an invalid timestamp", ms)
		}
		if diff := got - ms; diff < -1 || diff > 1 {
			t.Errorf("round trip of %d = %d (diff %d ms)", ms, got, diff)
		}
	}
}

func TestToJulianDayMatchesMeeus(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 18, 30, 0, 0, time.UTC),
	}
	for _, tm := range times {
		got := ToJulianDay(tm.UnixMilli())
		want := julian.TimeToJD(tm)
		if math.Abs(got-want) > 1e-8 {
			t.Errorf("ToJulianDay(%s) = %.9f, meeus gives %.9f", tm, got, want)
		}
	}
}

func TestToDays(t *testing.T) {
	j2000Noon := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	if d := ToDays(j2000Noon); d != 0 {
		t.Errorf("ToDays(J2000.0) = %f, expected 0", d)
	}
}

func TestFromJulianDayRounding(t *testing.T) {
	// 3/2048 day is exactly 126562.5 ms. Half rounds away from zero, so
	// 126563 and not the even 126562.
	j := float64(j1970) - 0.5 + 3.0/2048
	if got := FromJulianDay(j); got != 126563 {
		t.Errorf("FromJulianDay(epoch + 126562.5ms) = %v, expected 126563", got)
	}

	// and symmetrically before the epoch
	j = float64(j1970) - 0.5 - 3.0/2048
	if got := FromJulianDay(j); got != -126563 {
		t.Errorf("FromJulianDay(epoch - 126562.5ms) = %v, expected -126563", got)
	}

	if got := FromJulianDay(math.NaN()); got.Valid() {
		t.Errorf("FromJulianDay(NaN) = %v, expected NaN", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(refDate)
	if !ts.Valid() {
		t.Fatal("expected timestamp to be valid")
	}
	if !ts.Time().Equal(time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time() = %s", ts.Time())
	}

	missing := Timestamp(math.NaN())
	if missing.Valid() {
		t.Error("NaN timestamp reported as valid")
	}
	if !missing.Time().IsZero() {
		t.Errorf("NaN timestamp Time() = %s, expected zero time", missing.Time())
	}
	if _, ok := missing.Int64(); ok {
		t.Error("NaN timestamp Int64() reported ok")
	}
}
