package display

// Font selects one of the two text styles a board surface can render.
type Font int

const (
	FontText Font = iota
	FontIcon
)

// Box is a text bounding box relative to the draw origin.
type Box struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

func (b Box) Width() int {
	return b.MaxX - b.MinX
}

func (b Box) Height() int {
	return b.MaxY - b.MinY
}

// Canvas is the pixel surface the board renders onto. Implementations wrap
// real display hardware or an emulator; the rendering code never touches
// hardware directly.
type Canvas interface {
	Width() int
	Height() int
	Mode() string

	Clear()
	DrawText(x int, y int, text string, font Font)
	MeasureText(text string, font Font) Box
	DrawLine(x1 int, y1 int, x2 int, y2 int)

	// Commit pushes the current buffer to the display.
	Commit() error
}
