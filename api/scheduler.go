/*
scheduler.go - Periodic result cache purge

PURPOSE:
  Memoized responses that default "today" (snowball start date, fasting
  last meal time) are keyed by date, so yesterday's entries can never hit
  again. The scheduler purges the cache on an interval so a long-running
  server, particularly with the sqlite driver on a file, does not keep them.

CONFIGURATION:
  - Interval: How often to purge (cache.purge_interval, 0 disables)

USAGE:
  scheduler := NewPurgeScheduler(cache, 24*time.Hour)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: PurgeCache endpoint (manual purge)
  - engine/cache.go: ResultCache
*/
package api

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tigerkidtools/calc-engine/engine"
)

// PurgeScheduler purges a ResultCache on a fixed interval.
type PurgeScheduler struct {
	Cache    engine.ResultCache
	Interval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	runs   atomic.Int64
}

// NewPurgeScheduler creates a new scheduler. It does nothing until Start.
func NewPurgeScheduler(cache engine.ResultCache, interval time.Duration) *PurgeScheduler {
	return &PurgeScheduler{
		Cache:    cache,
		Interval: interval,
	}
}

// Start begins purging. A non-positive interval leaves the scheduler idle.
func (ps *PurgeScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.Interval <= 0 {
		log.Info().Msg("cache purge scheduler disabled")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.Interval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)
	go ps.run(ps.ticker, ps.stop)

	log.Info().Dur("interval", ps.Interval).Msg("cache purge scheduler started")
}

// Stop stops the scheduler and waits for an in-flight purge.
func (ps *PurgeScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		ps.ticker = nil
		log.Info().Msg("cache purge scheduler stopped")
	}
}

// Runs returns how many purges have completed.
func (ps *PurgeScheduler) Runs() int {
	return int(ps.runs.Load())
}

func (ps *PurgeScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ps.wg.Done()

	for {
		select {
		case <-ticker.C:
			ps.purge()
		case <-stop:
			return
		}
	}
}

func (ps *PurgeScheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ps.Cache.Purge(ctx); err != nil {
		log.Error().Err(err).Msg("scheduled cache purge failed")
		return
	}

	ps.runs.Add(1)
	log.Debug().Msg("scheduled cache purge complete")
}
