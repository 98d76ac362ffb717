package transit

import "strings"

type TransportType string

const (
	TransportTypeTram    TransportType = "tram"
	TransportTypeBus     TransportType = "bus"
	TransportTypeUnknown TransportType = "unknown"
)

// ParseTransportType normalises an upstream transport mode string. Anything
// that isn't a tram or a bus is Unknown.
func ParseTransportType(mode string) TransportType {
	switch strings.ToLower(mode) {
	case "tram":
		return TransportTypeTram
	case "bus":
		return TransportTypeBus
	default:
		return TransportTypeUnknown
	}
}
