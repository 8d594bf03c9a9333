package almanac

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Service serves almanac days from an LRU cache, computing misses on demand.
// It is safe for concurrent use.
type Service struct {
	cache   *lru.Cache
	workers int
}

// NewService creates a service caching up to cacheSize days and computing
// ranges with the given number of workers
func NewService(cacheSize, workers int) (*Service, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create almanac cache: %w", err)
	}
	if workers < 1 {
		workers = 1
	}
	return &Service{cache: cache, workers: workers}, nil
}

type cacheKey struct {
	observer  string
	latitude  float64
	longitude float64
	height    float64
	location  string
	date      string
}

func keyFor(obs Observer, date time.Time) cacheKey {
	loc := obs.location()
	return cacheKey{
		observer:  obs.Name,
		latitude:  obs.Latitude,
		longitude: obs.Longitude,
		height:    obs.Height,
		location:  loc.String(),
		date:      date.In(loc).Format(DateLayout),
	}
}

// Day returns the entry for the observer's calendar day containing date
func (s *Service) Day(obs Observer, date time.Time) Day {
	return s.cached(obs, date)
}

func (s *Service) cached(obs Observer, date time.Time) Day {
	key := keyFor(obs, date)
	if v, ok := s.cache.Get(key); ok {
		return v.(Day)
	}
	day := Compute(obs, date)
	s.cache.Add(key, day)
	return day
}

// Range returns the entries for every day from..to inclusive
func (s *Service) Range(ctx context.Context, obs Observer, from, to time.Time) ([]Day, error) {
	return rangeWith(ctx, obs, from, to, s.workers, s.cached)
}

// Len reports how many days are cached
func (s *Service) Len() int {
	return s.cache.Len()
}
