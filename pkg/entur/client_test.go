package entur_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluted/departureboard/pkg/entur"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *entur.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return entur.NewClient(server.URL, "test-board")
}

func TestQueryStop_FiltersCallsWithoutExpectedTime(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-board", r.Header.Get("ET-Client-Name"))

		w.Write([]byte(`{"data": {"stopPlace": {
			"name": "Solheimsviken",
			"estimatedCalls": [
				{
					"expectedArrivalTime": "2024-01-01T10:05:00Z",
					"aimedArrivalTime": "2024-01-01T10:00:00Z",
					"realtime": true,
					"destinationDisplay": {"frontText": "Sentrum"},
					"serviceJourney": {"line": {"publicCode": "1", "transportMode": "tram"}}
				},
				{
					"aimedArrivalTime": "2024-01-01T10:10:00Z",
					"realtime": false,
					"destinationDisplay": {"frontText": "Flesland"},
					"serviceJourney": {"line": {"publicCode": "2", "transportMode": "tram"}}
				}
			]
		}}}`))
	})

	result, err := client.QueryStop(context.Background(), "NSR:StopPlace:1", 3)

	require.NoError(t, err)
	assert.Equal(t, "Solheimsviken", result.StopName)
	// The call without an expectedArrivalTime can never be scheduled on the
	// board and is dropped at the boundary.
	require.Len(t, result.Calls, 1)
	assert.Equal(t, "1", result.Calls[0].LineCode)
	assert.Equal(t, "tram", result.Calls[0].TransportMode)
	assert.Equal(t, "Sentrum", result.Calls[0].DestinationText)
	assert.True(t, result.Calls[0].Realtime)
}

func TestQueryStop_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": {"stopPlace": null}}`))
	})

	_, err := client.QueryStop(context.Background(), "NSR:StopPlace:404", 3)

	assert.ErrorIs(t, err, entur.ErrStopNotFound)
}

func TestQueryStop_GraphQLErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "rate limited"}]}`))
	})

	_, err := client.QueryStop(context.Background(), "NSR:StopPlace:1", 3)

	var transportErr *entur.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Error(), "rate limited")
}

func TestQueryStop_BadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.QueryStop(context.Background(), "NSR:StopPlace:1", 3)

	var transportErr *entur.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestQueryStop_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	})

	_, err := client.QueryStop(context.Background(), "NSR:StopPlace:1", 3)

	// Malformed upstream payloads convert to a transport failure, never a
	// panic or a raw decode error.
	var transportErr *entur.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestQueryStop_NetworkError(t *testing.T) {
	client := entur.NewClient("http://127.0.0.1:1", "test-board")

	_, err := client.QueryStop(context.Background(), "NSR:StopPlace:1", 3)

	var transportErr *entur.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.False(t, errors.Is(err, entur.ErrStopNotFound))
}
