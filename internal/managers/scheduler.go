package managers

import (
	"context"
	"sync"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
)

// AlmanacScheduler precomputes the coming days for every observer and hands
// them to the storage distributor, once at start and then every interval
type AlmanacScheduler struct {
	observers   []almanac.Observer
	service     *almanac.Service
	daysAhead   int
	interval    time.Duration
	distributor chan<- almanac.Day
	now         func() time.Time
}

// NewAlmanacScheduler creates a scheduler
func NewAlmanacScheduler(observers []almanac.Observer, svc *almanac.Service, daysAhead int, interval time.Duration, distributor chan<- almanac.Day) *AlmanacScheduler {
	return &AlmanacScheduler{
		observers:   observers,
		service:     svc,
		daysAhead:   daysAhead,
		interval:    interval,
		distributor: distributor,
		now:         time.Now,
	}
}

// Start runs the scheduler loop until ctx is cancelled
func (a *AlmanacScheduler) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		a.RunOnce(ctx)

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				a.RunOnce(ctx)
			case <-ctx.Done():
				log.Info("cancellation request received. Stopping almanac scheduler")
				return
			}
		}
	}()
}

// RunOnce computes and distributes today plus daysAhead days for every
// observer. It returns the number of days sent.
func (a *AlmanacScheduler) RunOnce(ctx context.Context) int {
	sent := 0
	start := a.now()
	for _, obs := range a.observers {
		days, err := a.service.Range(ctx, obs, start, start.AddDate(0, 0, a.daysAhead))
		if err != nil {
			log.Warnf("could not compute almanac for %s: %v", obs.Name, err)
			continue
		}
		for _, d := range days {
			select {
			case a.distributor <- d:
				sent++
			case <-ctx.Done():
				return sent
			}
		}
	}
	log.Debugf("almanac scheduler distributed %d days in %v", sent, time.Since(start))
	return sent
}
