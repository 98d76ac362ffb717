package board_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluted/departureboard/pkg/board"
	"github.com/fluted/departureboard/pkg/entur"
	"github.com/fluted/departureboard/pkg/transit"
)

func newTestScheduler(querier entur.StopQuerier, canvas *recorderCanvas) *board.Scheduler {
	return &board.Scheduler{
		Querier: querier,
		Layout:  newLayout(canvas, 3),

		Stops:           twoStops()[:1],
		Count:           3,
		RefreshInterval: time.Hour,
		Zone:            time.UTC,
	}
}

func TestScheduler_RenderOnce(t *testing.T) {
	canvas := &recorderCanvas{}
	querier := &mockQuerier{
		queryStop: func(_ context.Context, _ string, _ int) (entur.StopResult, error) {
			return entur.StopResult{
				StopName: "Solheimsviken",
				Calls: []transit.EstimatedCall{
					call(time.Now().UTC().Add(5*time.Minute).Format(time.RFC3339), "", "1"),
				},
			}, nil
		},
	}

	require.NoError(t, newTestScheduler(querier, canvas).RenderOnce(context.Background()))

	assert.Equal(t, 1, canvas.committed)
	header, ok := canvas.textAt(5, 5)
	require.True(t, ok)
	assert.Contains(t, header.Text, "Solheimsviken")
}

func TestScheduler_RenderOnceSurvivesFailingUpstream(t *testing.T) {
	canvas := &recorderCanvas{}
	querier := &mockQuerier{
		queryStop: func(_ context.Context, stopID string, _ int) (entur.StopResult, error) {
			return entur.StopResult{}, &entur.TransportError{StopID: stopID, Err: context.DeadlineExceeded}
		},
	}

	require.NoError(t, newTestScheduler(querier, canvas).RenderOnce(context.Background()))

	// An unreachable upstream still yields a committed (empty) frame.
	assert.Equal(t, 1, canvas.committed)
	header, ok := canvas.textAt(5, 5)
	require.True(t, ok)
	assert.Equal(t, "Departure Board", header.Text)
}

func TestScheduler_RunExitsOnCancel(t *testing.T) {
	canvas := &recorderCanvas{}
	var queries atomic.Int32
	querier := &mockQuerier{
		queryStop: func(_ context.Context, _ string, _ int) (entur.StopResult, error) {
			queries.Add(1)
			return entur.StopResult{StopName: "Solheimsviken"}, nil
		},
	}

	scheduler := newTestScheduler(querier, canvas)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scheduler.Run(ctx)
	}()

	// Give the immediate first fetch a moment, then interrupt.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not exit on cancellation")
	}

	assert.Equal(t, int32(1), queries.Load(), "exactly the startup fetch ran")
}
