package transit

// Stop is one configured stop place, immutable for the process lifetime.
type Stop struct {
	ID   string
	Name string
	Mode TransportType
}

// EstimatedCall is one predicted stop visit as returned by the journey
// planner. Arrival times are RFC3339 strings straight off the wire; an empty
// string means the upstream omitted the field.
type EstimatedCall struct {
	ExpectedArrivalTime string
	AimedArrivalTime    string
	Realtime            bool
	LineCode            string
	TransportMode       string
	DestinationText     string
}

// Departure is one renderable board row, derived from an EstimatedCall
// against a single wall-clock snapshot. Never mutated after derivation.
type Departure struct {
	LineCode        string
	DestinationText string
	TransportMode   string
	Realtime        bool

	// Minutes from now until the aimed/expected arrival, clamped at 0. When
	// only one timestamp parses the other side takes its value, so both are
	// always populated together.
	ScheduledMinutes int
	UpdatedMinutes   int

	IsDelayed bool

	// ExpectedArrivalTime is kept verbatim as the global sort key.
	ExpectedArrivalTime string
}

// StopSummary is the per-stop header fragment. NextArrivalLabel is either
// empty or "<minutes>m <HH:MM>" for the earliest call at that stop.
type StopSummary struct {
	StopName         string
	NextArrivalLabel string
}

// HeaderText is the fragment this stop contributes to the board header.
func (s StopSummary) HeaderText() string {
	if s.NextArrivalLabel == "" {
		return s.StopName
	}

	return s.StopName + " " + s.NextArrivalLabel
}

// Snapshot is the renderable state of one fetch cycle. It is published
// wholesale and read-only afterwards; the renderer may consume the same
// snapshot many times before the next fetch replaces it.
type Snapshot struct {
	Departures    []Departure
	StopSummaries []StopSummary
}
