package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// framebuffer implements the drawing half of Canvas on an in-memory
// greyscale image, sized to the SSD1322 panel by default (256x64). Glyphs
// come from the fixed 7x13 pixel face; runes outside its coverage (the mode
// icons) advance nothing and draw nothing, which keeps measurement
// deterministic.
type framebuffer struct {
	width  int
	height int
	img    *image.Gray
}

func newFramebuffer(width int, height int) framebuffer {
	return framebuffer{
		width:  width,
		height: height,
		img:    image.NewGray(image.Rect(0, 0, width, height)),
	}
}

func (f *framebuffer) Width() int {
	return f.width
}

func (f *framebuffer) Height() int {
	return f.height
}

func (f *framebuffer) Mode() string {
	return "1"
}

func (f *framebuffer) Clear() {
	for i := range f.img.Pix {
		f.img.Pix[i] = 0
	}
}

func (f *framebuffer) face(_ Font) font.Face {
	// Both text styles share the one bitmap face; the real panel uses a
	// larger size for icons but the emulator has no scalable font.
	return basicfont.Face7x13
}

func (f *framebuffer) DrawText(x int, y int, text string, fnt Font) {
	face := f.face(fnt)
	metrics := face.Metrics()

	drawer := font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(color.Gray{Y: 255}),
		Face: face,
		// y is the top of the text row, Dot wants the baseline.
		Dot: fixed.P(x, y+metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)
}

func (f *framebuffer) MeasureText(text string, fnt Font) Box {
	face := f.face(fnt)
	advance := font.MeasureString(face, text)
	metrics := face.Metrics()

	return Box{
		MinX: 0,
		MinY: 0,
		MaxX: advance.Ceil(),
		MaxY: metrics.Height.Ceil(),
	}
}

func (f *framebuffer) DrawLine(x1 int, y1 int, x2 int, y2 int) {
	// Horizontal and vertical lines are all the board layout draws; anything
	// else falls back to the horizontal case along y1.
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	white := color.Gray{Y: 255}
	if x1 == x2 {
		for y := y1; y <= y2; y++ {
			f.img.SetGray(x1, y, white)
		}
		return
	}

	for x := x1; x <= x2; x++ {
		f.img.SetGray(x, y1, white)
	}
}
