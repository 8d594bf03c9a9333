package storage

import (
	"context"
	"sync"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
)

// ProcessDays provides a standard pattern for processing days from a channel.
// The caller must have already added this goroutine to wg.
func ProcessDays(ctx context.Context, wg *sync.WaitGroup, dayChan <-chan almanac.Day, processor func(context.Context, almanac.Day) error, name string) {
	defer wg.Done()

	for {
		select {
		case d := <-dayChan:
			if err := processor(ctx, d); err != nil {
				log.Errorf("%s day processor error: %v", name, err)
			}
		case <-ctx.Done():
			log.Infof("cancellation request received. Cancelling %s day processor", name)
			return
		}
	}
}
