// Package storage defines interfaces and implementations for almanac storage backends.
package storage

import (
	"context"
	"sync"

	"github.com/chrissnell/suncalc/internal/almanac"
)

// StorageEngineInterface is an interface that provides a few standardized
// methods for various storage backends
type StorageEngineInterface interface {
	StartStorageEngine(context.Context, *sync.WaitGroup) chan<- almanac.Day
}

// AlmanacReader is implemented by backends that can serve stored days back.
// from and to are inclusive dates in almanac.DateLayout.
type AlmanacReader interface {
	LoadDays(ctx context.Context, observer, from, to string) ([]almanac.Day, error)
}

// HealthChecker defines the interface for storage backends to implement health checks
type HealthChecker interface {
	CheckHealth(ctx context.Context) *HealthData
}
