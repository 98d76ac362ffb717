package display

import (
	"fmt"
	"os"
)

// Panel dimensions of the SSD1322 the board targets.
const (
	PanelWidth  = 256
	PanelHeight = 64
)

// New selects a Canvas implementation. Real hardware drivers would register
// here as further kinds; selection belongs to the bootstrap, never to the
// rendering code.
func New(kind string, framePath string) (Canvas, error) {
	switch kind {
	case "png":
		return NewPNGCanvas(PanelWidth, PanelHeight, framePath), nil
	case "terminal":
		return NewTerminalCanvas(PanelWidth, PanelHeight, os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown display kind %q", kind)
	}
}
