package entur

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fluted/departureboard/pkg/transit"
)

// ErrStopNotFound means the journey planner has no stop place for the
// queried identifier.
var ErrStopNotFound = errors.New("stop place not found")

// TransportError covers every upstream failure other than a missing stop:
// network errors, bad status codes, malformed payloads and GraphQL errors.
type TransportError struct {
	StopID string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("query stop %s: %s", e.StopID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StopResult is one stop's answer: its display name and the estimated calls
// that carry an expected arrival time.
type StopResult struct {
	StopName string
	Calls    []transit.EstimatedCall
}

// StopQuerier is the stop query capability the aggregator consumes.
type StopQuerier interface {
	QueryStop(ctx context.Context, stopID string, count int) (StopResult, error)
}

// Client queries the Entur journey planner GraphQL API.
type Client struct {
	BaseURL    string
	ClientName string

	httpClient *http.Client
}

func NewClient(baseURL string, clientName string) *Client {
	return &Client{
		BaseURL:    baseURL,
		ClientName: clientName,

		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

const estimatedCallsQuery = `{
	stopPlace(id: %q) {
		name
		estimatedCalls(numberOfDepartures: %d) {
			expectedArrivalTime
			aimedArrivalTime
			realtime
			destinationDisplay { frontText }
			serviceJourney { line { publicCode transportMode } }
		}
	}
}`

// QueryStop fetches up to count estimated calls for one stop place. Calls
// without an expected arrival time are filtered out here as they can never
// be placed on the board. Failures map to ErrStopNotFound or a
// *TransportError; malformed upstream payloads never panic.
func (c *Client) QueryStop(ctx context.Context, stopID string, count int) (StopResult, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: fmt.Sprintf(estimatedCallsQuery, stopID, count),
	})
	if err != nil {
		return StopResult{}, &TransportError{StopID: stopID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return StopResult{}, &TransportError{StopID: stopID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("ET-Client-Name", c.ClientName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StopResult{}, &TransportError{StopID: stopID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return StopResult{}, &TransportError{StopID: stopID, Err: fmt.Errorf("status %s", resp.Status)}
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return StopResult{}, &TransportError{StopID: stopID, Err: err}
	}

	var decoded graphqlResponse
	if err := json.Unmarshal(jsonBytes, &decoded); err != nil {
		return StopResult{}, &TransportError{StopID: stopID, Err: err}
	}

	if len(decoded.Errors) > 0 {
		log.Debug().Str("stop", stopID).Str("message", decoded.Errors[0].Message).Msg("GraphQL error")
		return StopResult{}, &TransportError{StopID: stopID, Err: fmt.Errorf("graphql: %s", decoded.Errors[0].Message)}
	}

	if decoded.Data.StopPlace == nil {
		return StopResult{}, ErrStopNotFound
	}

	result := StopResult{StopName: decoded.Data.StopPlace.Name}
	for _, call := range decoded.Data.StopPlace.EstimatedCalls {
		if call.ExpectedArrivalTime == "" {
			continue
		}

		result.Calls = append(result.Calls, transit.EstimatedCall{
			ExpectedArrivalTime: call.ExpectedArrivalTime,
			AimedArrivalTime:    call.AimedArrivalTime,
			Realtime:            call.Realtime,
			LineCode:            call.ServiceJourney.Line.PublicCode,
			TransportMode:       call.ServiceJourney.Line.TransportMode,
			DestinationText:     call.DestinationDisplay.FrontText,
		})
	}

	return result, nil
}
