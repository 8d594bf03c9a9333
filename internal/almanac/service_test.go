package almanac

import (
	"context"
	"testing"
	"time"
)

func TestServiceCaches(t *testing.T) {
	svc, err := NewService(16, 2)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	date := time.Date(2024, 4, 8, 18, 0, 0, 0, time.UTC)
	first := svc.Day(kyiv, date)
	if svc.Len() != 1 {
		t.Fatalf("cache length = %d, expected 1", svc.Len())
	}

	// a different instant on the same day hits the same entry
	second := svc.Day(kyiv, date.Add(-6*time.Hour))
	if svc.Len() != 1 {
		t.Errorf("cache length = %d, expected 1 after a same-day lookup", svc.Len())
	}
	if first.Date != second.Date || first.Times.SolarNoon != second.Times.SolarNoon {
		t.Errorf("cached day differs: %+v vs %+v", first, second)
	}

	// moving the observer is a different entry even with the same name
	moved := kyiv
	moved.Latitude = -kyiv.Latitude
	svc.Day(moved, date)
	if svc.Len() != 2 {
		t.Errorf("cache length = %d, expected 2", svc.Len())
	}
}

func TestServiceRangeEvicts(t *testing.T) {
	svc, err := NewService(10, 4)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days, err := svc.Range(context.Background(), kyiv, from, from.AddDate(0, 0, 19))
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(days) != 20 {
		t.Fatalf("got %d days, expected 20", len(days))
	}
	if svc.Len() != 10 {
		t.Errorf("cache length = %d, expected it capped at 10", svc.Len())
	}
}

func TestNewServiceRejectsBadSize(t *testing.T) {
	if _, err := NewService(0, 1); err == nil {
		t.Error("expected an error for a zero cache size")
	}
}
