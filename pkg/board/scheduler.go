package board

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/fluted/departureboard/pkg/entur"
	"github.com/fluted/departureboard/pkg/transit"
)

// renderPeriod is the fixed cadence at which the cached snapshot is drawn,
// independent of how often it is refetched.
const renderPeriod = time.Second

// Scheduler drives the board: it refetches departures every RefreshInterval
// on a background goroutine and redraws the cached snapshot every second.
// The snapshot hand-off is a whole-value atomic swap, so the renderer never
// sees a partially written state.
type Scheduler struct {
	Querier entur.StopQuerier
	Layout  *Layout

	Stops           []transit.Stop
	Count           int
	RefreshInterval time.Duration
	Zone            *time.Location

	snapshot atomic.Pointer[transit.Snapshot]
}

// Run loops until ctx is cancelled, then exits without a final render or
// fetch. A slow or failing upstream never stalls the render tick; it only
// leaves the previous snapshot on screen.
func (s *Scheduler) Run(ctx context.Context) error {
	s.snapshot.Store(&transit.Snapshot{})

	var fetchers conc.WaitGroup
	defer fetchers.Wait()

	var fetchInFlight atomic.Bool
	startFetch := func() {
		if !fetchInFlight.CompareAndSwap(false, true) {
			log.Debug().Msg("Previous fetch still in flight, skipping cycle")
			return
		}

		fetchers.Go(func() {
			defer fetchInFlight.Store(false)
			s.fetch(ctx)
		})
	}

	startFetch()

	fetchTicker := time.NewTicker(s.RefreshInterval)
	defer fetchTicker.Stop()
	renderTicker := time.NewTicker(renderPeriod)
	defer renderTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fetchTicker.C:
			startFetch()
		case <-renderTicker.C:
			if err := s.Layout.Render(s.snapshot.Load(), time.Now(), s.Zone); err != nil {
				log.Error().Err(err).Msg("Failed to render frame")
			}
		}
	}
}

// RenderOnce performs a single synchronous fetch and draws one frame.
func (s *Scheduler) RenderOnce(ctx context.Context) error {
	s.fetch(ctx)

	snapshot := s.snapshot.Load()
	if snapshot == nil {
		snapshot = &transit.Snapshot{}
	}

	return s.Layout.Render(snapshot, time.Now(), s.Zone)
}

func (s *Scheduler) fetch(ctx context.Context) {
	startTime := time.Now()

	departures, summaries := Aggregate(ctx, s.Querier, s.Stops, s.Count, time.Now().UTC(), s.Zone)

	// A cancelled run must not publish a half-fetched cycle.
	if ctx.Err() != nil {
		return
	}

	s.snapshot.Store(&transit.Snapshot{
		Departures:    departures,
		StopSummaries: summaries,
	})

	log.Info().
		Int("departures", len(departures)).
		Int("stops", len(summaries)).
		Str("duration", time.Since(startTime).String()).
		Msg("Refreshed departure snapshot")
}
