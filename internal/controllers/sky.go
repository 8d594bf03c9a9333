package controllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/storage"
)

// ErrUnknownObserver is returned for observer names that are not configured
var ErrUnknownObserver = errors.New("unknown observer")

// MaxAlmanacDays bounds a single almanac request
const MaxAlmanacDays = 366

// ArgumentError reports a malformed request parameter
type ArgumentError struct {
	Param string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Param, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Sky is the backend shared by the transport controllers: the configured
// observers, the almanac service and the optional almanac store.
type Sky struct {
	observers map[string]almanac.Observer
	names     []string
	Almanac   *almanac.Service
	Store     storage.AlmanacReader
	Health    *storage.HealthManager
}

// NewSky builds a Sky. store and health may be nil.
func NewSky(observers []almanac.Observer, svc *almanac.Service, store storage.AlmanacReader, health *storage.HealthManager) *Sky {
	s := &Sky{
		observers: make(map[string]almanac.Observer, len(observers)),
		Almanac:   svc,
		Store:     store,
		Health:    health,
	}
	for _, o := range observers {
		s.observers[o.Name] = o
		s.names = append(s.names, o.Name)
	}
	sort.Strings(s.names)
	return s
}

// Observer returns the named observer or ErrUnknownObserver
func (s *Sky) Observer(name string) (almanac.Observer, error) {
	o, ok := s.observers[name]
	if !ok {
		return almanac.Observer{}, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
	}
	return o, nil
}

// Observers returns every configured observer ordered by name
func (s *Sky) Observers() []almanac.Observer {
	out := make([]almanac.Observer, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.observers[n])
	}
	return out
}

// Days returns the almanac for obs between from and to inclusive. Stored days
// are used when the store holds the whole range; otherwise the days are
// computed.
func (s *Sky) Days(ctx context.Context, obs almanac.Observer, from, to time.Time) ([]almanac.Day, error) {
	loc := obs.Location
	if loc == nil {
		loc = time.UTC
	}
	fromDate := from.In(loc).Format(almanac.DateLayout)
	toDate := to.In(loc).Format(almanac.DateLayout)
	if fromDate > toDate {
		return nil, &ArgumentError{Param: "from", Err: fmt.Errorf("%s is after %s", fromDate, toDate)}
	}

	want := dayCount(from.In(loc), to.In(loc))
	if want > MaxAlmanacDays {
		return nil, &ArgumentError{Param: "to", Err: fmt.Errorf("range of %d days exceeds %d", want, MaxAlmanacDays)}
	}

	if s.Store != nil {
		days, err := s.Store.LoadDays(ctx, obs.Name, fromDate, toDate)
		if err != nil {
			log.Warnf("could not load stored almanac for %s: %v", obs.Name, err)
		} else if len(days) == want {
			return days, nil
		}
	}

	return s.Almanac.Range(ctx, obs, from, to)
}

func dayCount(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}

// ParseTime accepts RFC3339 or integer epoch milliseconds. An empty string
// yields now.
func ParseTime(param, value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &ArgumentError{Param: param, Err: errors.New("expected RFC3339 or epoch milliseconds")}
	}
	return t, nil
}

// ParseDate accepts a calendar date in loc, RFC3339 or epoch milliseconds
func ParseDate(param, value string, loc *time.Location, now time.Time) (time.Time, error) {
	if d, err := time.ParseInLocation(almanac.DateLayout, strings.TrimSpace(value), loc); err == nil {
		return d, nil
	}
	return ParseTime(param, value, now)
}

// ParseFloat parses a required float parameter
func ParseFloat(param, value string) (float64, error) {
	if value == "" {
		return 0, &ArgumentError{Param: param, Err: errors.New("is required")}
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ArgumentError{Param: param, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ArgumentError{Param: param, Err: errors.New("must be finite")}
	}
	return f, nil
}

// ParseOptionalFloat parses a float parameter that defaults to def
func ParseOptionalFloat(param, value string, def float64) (float64, error) {
	if value == "" {
		return def, nil
	}
	return ParseFloat(param, value)
}

// ParseLocation resolves an IANA timezone name, UTC when empty
func ParseLocation(param, value string) (*time.Location, error) {
	if value == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, &ArgumentError{Param: param, Err: err}
	}
	return loc, nil
}
