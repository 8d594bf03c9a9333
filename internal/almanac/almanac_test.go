package almanac

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

var kyiv = Observer{Name: "kyiv", Latitude: 50.5, Longitude: 30.5}

func TestCompute(t *testing.T) {
	day := Compute(kyiv, time.Date(2013, 3, 5, 3, 0, 0, 0, time.UTC))

	if day.Observer != "kyiv" {
		t.Errorf("Observer = %q, expected kyiv", day.Observer)
	}
	if day.Date != "2013-03-05" {
		t.Errorf("Date = %q, expected 2013-03-05", day.Date)
	}
	// sunrise 04:34:56, sunset 15:46:57
	if math.Abs(day.DayLength-672.0) > 1 {
		t.Errorf("DayLength = %.2f minutes, expected ~672", day.DayLength)
	}
	if day.MoonPhase == "" {
		t.Error("MoonPhase is empty")
	}
	if !day.Times.SolarNoon.Valid() {
		t.Error("SolarNoon is not valid")
	}
}

func TestComputeUsesObserverTimezone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	obs := Observer{Name: "tokyo", Latitude: 35.7, Longitude: 139.7, Location: tokyo}

	// 20:00 UTC on the 4th is already the 5th in Tokyo
	day := Compute(obs, time.Date(2013, 3, 4, 20, 0, 0, 0, time.UTC))
	if day.Date != "2013-03-05" {
		t.Errorf("Date = %q, expected 2013-03-05", day.Date)
	}

	noon := day.Times.SolarNoon.Time().In(tokyo)
	if noon.Day() != 5 || noon.Hour() < 11 || noon.Hour() > 12 {
		t.Errorf("solar noon = %s, expected around local noon on the 5th", noon)
	}
}

func TestComputePolar(t *testing.T) {
	obs := Observer{Name: "svalbard", Latitude: 78, Longitude: 15}
	day := Compute(obs, time.Date(2013, 6, 21, 0, 0, 0, 0, time.UTC))

	if !math.IsNaN(day.DayLength) {
		t.Errorf("DayLength = %f, expected NaN during polar day", day.DayLength)
	}
	if day.Times.Night.Valid() {
		t.Error("expected no night at 78N in midsummer")
	}
}

func TestRange(t *testing.T) {
	from := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	days, err := Range(context.Background(), kyiv, from, to, 4)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(days) != 33 {
		t.Fatalf("got %d days, expected 33", len(days))
	}

	for i, d := range days {
		want := from.AddDate(0, 0, i).Format(DateLayout)
		if d.Date != want {
			t.Errorf("day %d: Date = %s, expected %s", i, d.Date, want)
		}
	}
	if days[29].Date != "2024-02-28" || days[30].Date != "2024-02-29" {
		t.Errorf("leap day missing: %s %s", days[29].Date, days[30].Date)
	}
}

func TestRangeSingleDay(t *testing.T) {
	d := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	days, err := Range(context.Background(), kyiv, d, d, 0)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2024-05-01" {
		t.Errorf("got %+v, expected one day on 2024-05-01", days)
	}
}

func TestRangeErrors(t *testing.T) {
	t.Run("inverted range", func(t *testing.T) {
		from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := Range(context.Background(), kyiv, from, from.AddDate(0, 0, -1), 2)
		if err == nil {
			t.Fatal("expected an error for an inverted range")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := Range(ctx, kyiv, from, from.AddDate(0, 1, 0), 2)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, expected context.Canceled", err)
		}
	})
}

func TestRangeWorkerLimit(t *testing.T) {
	var running, peak int32
	compute := func(obs Observer, d time.Time) Day {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return Day{Date: d.Format(DateLayout)}
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := rangeWith(context.Background(), kyiv, from, from.AddDate(0, 0, 40), 3, compute); err != nil {
		t.Fatalf("rangeWith: %v", err)
	}
	if peak > 3 {
		t.Errorf("peak concurrency = %d, expected at most 3", peak)
	}
}
