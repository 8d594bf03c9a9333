package managers

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/storage"
	"github.com/chrissnell/suncalc/internal/storage/sqlite"
	"github.com/chrissnell/suncalc/internal/storage/timescaledb"
	"github.com/chrissnell/suncalc/pkg/config"
)

// HealthCheckInterval is how often storage backends are checked
const HealthCheckInterval = time.Minute

// StorageManager holds our active storage backends
type StorageManager struct {
	Engines        []StorageEngine
	DayDistributor chan almanac.Day
	Health         *storage.HealthManager
	reader         storage.AlmanacReader
	closers        []io.Closer
}

// StorageEngine holds a backend storage engine's interface as well as
// a channel for passing days to the engine
type StorageEngine struct {
	Name   string
	Engine storage.StorageEngineInterface
	C      chan<- almanac.Day
}

type backend interface {
	storage.StorageEngineInterface
	storage.AlmanacReader
	storage.HealthChecker
	io.Closer
}

// NewStorageManager creates a StorageManager object, populated with all configured StorageEngines
func NewStorageManager(ctx context.Context, wg *sync.WaitGroup, sd *config.StorageData) (*StorageManager, error) {
	s := &StorageManager{
		DayDistributor: make(chan almanac.Day, 20),
		Health:         storage.NewHealthManager(),
	}

	// SQLite comes first so that it serves reads when both are configured
	if sd != nil && sd.SQLite != nil && sd.SQLite.Path != "" {
		engine, err := sqlite.New(ctx, sd.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("could not add SQLite storage backend: %w", err)
		}
		s.AddEngine(ctx, wg, "sqlite", engine)
	}

	if sd != nil && sd.TimescaleDB != nil && sd.TimescaleDB.ConnectionString != "" {
		engine, err := timescaledb.New(ctx, sd.TimescaleDB.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("could not add TimescaleDB storage backend: %w", err)
		}
		s.AddEngine(ctx, wg, "timescaledb", engine)
	}

	// Start our day distributor to distribute computed days to storage
	// backends
	wg.Add(1)
	go s.startDayDistributor(ctx, wg)

	return s, nil
}

// AddEngine starts engine and adds it to the fan-out
func (s *StorageManager) AddEngine(ctx context.Context, wg *sync.WaitGroup, name string, engine backend) {
	s.Engines = append(s.Engines, StorageEngine{
		Name:   name,
		Engine: engine,
		C:      engine.StartStorageEngine(ctx, wg),
	})
	if s.reader == nil {
		s.reader = engine
	}
	s.closers = append(s.closers, engine)
	s.Health.StartHealthMonitor(ctx, name, engine, HealthCheckInterval)
}

// Close releases every backend. Call it after the engines have stopped.
func (s *StorageManager) Close() {
	for i, c := range s.closers {
		if err := c.Close(); err != nil {
			log.Warnf("error closing %s storage: %v", s.Engines[i].Name, err)
		}
	}
}

// Reader returns the backend that serves stored days, or nil when no storage
// is configured
func (s *StorageManager) Reader() storage.AlmanacReader {
	return s.reader
}

// startDayDistributor receives days from the scheduler and fans them out to
// the various storage backends
func (s *StorageManager) startDayDistributor(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case d := <-s.DayDistributor:
			for _, e := range s.Engines {
				select {
				case e.C <- d:
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
