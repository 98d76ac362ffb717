package display

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// PNGCanvas is the development stand-in for the real panel: every commit
// rewrites a PNG frame on disk so the board can be watched with any image
// viewer.
type PNGCanvas struct {
	framebuffer

	FramePath string
}

func NewPNGCanvas(width int, height int, framePath string) *PNGCanvas {
	return &PNGCanvas{
		framebuffer: newFramebuffer(width, height),
		FramePath:   framePath,
	}
}

func (c *PNGCanvas) Commit() error {
	file, err := os.Create(c.FramePath)
	if err != nil {
		return fmt.Errorf("commit frame: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, c.img); err != nil {
		return fmt.Errorf("commit frame: %w", err)
	}

	return nil
}

// TerminalCanvas renders each committed frame as ASCII rows, one character
// per 2x4 pixel block.
type TerminalCanvas struct {
	framebuffer

	Out io.Writer
}

func NewTerminalCanvas(width int, height int, out io.Writer) *TerminalCanvas {
	return &TerminalCanvas{
		framebuffer: newFramebuffer(width, height),
		Out:         out,
	}
}

func (c *TerminalCanvas) Commit() error {
	const cellWidth, cellHeight = 2, 4

	rows := make([]byte, 0, (c.width/cellWidth+1)*(c.height/cellHeight))
	for blockY := 0; blockY < c.height; blockY += cellHeight {
		for blockX := 0; blockX < c.width; blockX += cellWidth {
			lit := false
			for y := blockY; y < blockY+cellHeight && y < c.height; y++ {
				for x := blockX; x < blockX+cellWidth && x < c.width; x++ {
					if c.img.GrayAt(x, y).Y > 0 {
						lit = true
					}
				}
			}

			if lit {
				rows = append(rows, '#')
			} else {
				rows = append(rows, ' ')
			}
		}
		rows = append(rows, '\n')
	}

	if _, err := c.Out.Write(rows); err != nil {
		return fmt.Errorf("commit frame: %w", err)
	}

	return nil
}
