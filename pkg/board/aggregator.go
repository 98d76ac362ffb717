package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/fluted/departureboard/pkg/entur"
	"github.com/fluted/departureboard/pkg/transit"
)

// Aggregate queries every configured stop in order and merges the results
// into one globally time-ordered departure list plus a per-stop summary. A
// stop whose query fails contributes nothing this cycle; the next refresh is
// its retry. Both outputs are freshly allocated.
func Aggregate(ctx context.Context, querier entur.StopQuerier, stops []transit.Stop, count int, now time.Time, zone *time.Location) ([]transit.Departure, []transit.StopSummary) {
	var departures []transit.Departure
	var summaries []transit.StopSummary

	for _, stop := range stops {
		result, err := querier.QueryStop(ctx, stop.ID, count)
		if err != nil {
			if errors.Is(err, entur.ErrStopNotFound) {
				log.Warn().Str("stop", stop.ID).Msg("Stop not found")
			} else {
				log.Error().Err(err).Str("stop", stop.ID).Msg("Failed to query stop")
			}
			continue
		}

		summaries = append(summaries, transit.StopSummary{
			StopName:         result.StopName,
			NextArrivalLabel: nextArrivalLabel(result.Calls, now, zone),
		})

		for _, call := range result.Calls {
			departures = append(departures, deriveDeparture(call, now))
		}
	}

	// Lexicographic order on RFC3339 strings is chronological order, and
	// comparing strings cannot fail; absent timestamps sort first as "".
	slices.SortStableFunc(departures, func(a, b transit.Departure) int {
		return strings.Compare(a.ExpectedArrivalTime, b.ExpectedArrivalTime)
	})

	return departures, summaries
}

// nextArrivalLabel builds the "<minutes>m <HH:MM>" fragment for the earliest
// call at a stop. A malformed earliest timestamp degrades to an empty label
// so the stop still appears by name.
func nextArrivalLabel(calls []transit.EstimatedCall, now time.Time, zone *time.Location) string {
	if len(calls) == 0 {
		return ""
	}

	earliest := calls[0].ExpectedArrivalTime
	for _, call := range calls[1:] {
		if call.ExpectedArrivalTime < earliest {
			earliest = call.ExpectedArrivalTime
		}
	}

	minutes, ok := MinutesUntil(earliest, now)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%dm %s", minutes, LocalTimeLabel(earliest, zone))
}

// deriveDeparture computes the minute fields for one call against a single
// wall-clock snapshot. When only one of the two timestamps parses, the other
// side takes its value: a row never shows one side blank.
func deriveDeparture(call transit.EstimatedCall, now time.Time) transit.Departure {
	scheduledMinutes, scheduledOK := MinutesUntil(call.AimedArrivalTime, now)
	updatedMinutes, updatedOK := MinutesUntil(call.ExpectedArrivalTime, now)

	if !updatedOK && scheduledOK {
		updatedMinutes = scheduledMinutes
	}
	if !scheduledOK && updatedOK {
		scheduledMinutes = updatedMinutes
	}

	return transit.Departure{
		LineCode:        call.LineCode,
		DestinationText: call.DestinationText,
		TransportMode:   call.TransportMode,
		Realtime:        call.Realtime,

		ScheduledMinutes: scheduledMinutes,
		UpdatedMinutes:   updatedMinutes,

		IsDelayed: IsDelayed(call.AimedArrivalTime, call.ExpectedArrivalTime),

		ExpectedArrivalTime: call.ExpectedArrivalTime,
	}
}
