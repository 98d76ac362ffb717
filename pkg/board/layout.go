package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluted/departureboard/pkg/display"
	"github.com/fluted/departureboard/pkg/transit"
	"github.com/fluted/departureboard/pkg/util"
)

// Grid layout columns.
const (
	colModeX = 5
	colLineX = 35
	colDestX = 65
	colTimeX = 200

	rowHeight = 15

	headerMaxChars      = 40
	destinationMaxChars = 18
)

const (
	iconTram = "🚊"
	iconBus  = "🚌"
)

// Layout turns a snapshot into draw calls against a Canvas. It never
// mutates the snapshot; its only side effects are on the canvas.
type Layout struct {
	Canvas display.Canvas

	// MaxRows caps the number of departure rows drawn per frame.
	MaxRows int
}

// Render draws one full frame and commits it. A commit failure is fatal to
// the frame only.
func (l *Layout) Render(snapshot *transit.Snapshot, now time.Time, zone *time.Location) error {
	canvas := l.Canvas

	canvas.Clear()

	// Current local wall clock, right-aligned 5px from the edge.
	clock := now.In(clockZone(zone)).Format("15:04:05")
	clockBox := canvas.MeasureText(clock, display.FontText)
	canvas.DrawText(canvas.Width()-clockBox.Width()-5, 5, clock, display.FontText)

	canvas.DrawText(5, 5, headerText(snapshot.StopSummaries), display.FontText)

	y := 20
	delayedCodes := delayedLineCodes(snapshot.Departures)
	if len(delayedCodes) > 0 {
		canvas.DrawText(5, y, "Delays: "+strings.Join(delayedCodes, ", "), display.FontText)
		y = 32
	} else {
		y = 25
	}

	for i, departure := range snapshot.Departures {
		if i >= l.MaxRows {
			break
		}

		l.drawDepartureRow(departure, y)
		y += rowHeight
	}

	return canvas.Commit()
}

func (l *Layout) drawDepartureRow(departure transit.Departure, y int) {
	canvas := l.Canvas

	icon := iconBus
	if transit.ParseTransportType(departure.TransportMode) == transit.TransportTypeTram {
		icon = iconTram
	}

	canvas.DrawText(colModeX, y, icon, display.FontIcon)
	canvas.DrawText(colLineX, y, departure.LineCode, display.FontText)
	canvas.DrawText(colDestX, y, util.TrimString(departure.DestinationText, destinationMaxChars), display.FontText)

	// A realtime update that changed the minute count shows the scheduled
	// value struck through with the live value beside it.
	if departure.Realtime && departure.ScheduledMinutes != departure.UpdatedMinutes {
		scheduledText := fmt.Sprintf("%2dm", departure.ScheduledMinutes)
		scheduledBox := canvas.MeasureText(scheduledText, display.FontText)

		canvas.DrawText(colTimeX, y, scheduledText, display.FontText)

		midY := y + scheduledBox.Height()/2
		canvas.DrawLine(colTimeX, midY, colTimeX+scheduledBox.Width(), midY)

		canvas.DrawText(colTimeX+scheduledBox.Width()+4, y, fmt.Sprintf("%2dm", departure.UpdatedMinutes), display.FontText)
		return
	}

	canvas.DrawText(colTimeX, y, fmt.Sprintf("%2dm", departure.UpdatedMinutes), display.FontText)
}

// headerText joins every stop's header fragment, hard-cut to fit the row.
func headerText(summaries []transit.StopSummary) string {
	if len(summaries) == 0 {
		return "Departure Board"
	}

	fragments := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		fragments = append(fragments, summary.HeaderText())
	}

	return util.TrimString(strings.Join(fragments, " / "), headerMaxChars)
}

// delayedLineCodes returns the sorted distinct line codes of delayed
// departures.
func delayedLineCodes(departures []transit.Departure) []string {
	var codes []string
	for _, departure := range departures {
		if departure.IsDelayed {
			codes = append(codes, departure.LineCode)
		}
	}

	return util.UniqueSortedStrings(codes)
}

func clockZone(zone *time.Location) *time.Location {
	if zone == nil {
		return time.UTC
	}

	return zone
}
