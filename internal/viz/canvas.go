package viz

import "strings"

// brailleBase is U+2800; adding a dot mask selects the pattern. The
// dot bits for a 2x4 cell, indexed by (y%4)*2 + x%2:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
var dotBits = [8]uint8{0x01, 0x08, 0x02, 0x10, 0x04, 0x20, 0x40, 0x80}

const brailleBase = 0x2800

// Canvas accumulates sub-pixel dots for the sky-plane view and renders
// them as braille cells. The drawable resolution is (Width*2) x
// (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	dots          []uint8 // row-major cell masks
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, dots: make([]uint8, w*h)}
}

// Set lights the sub-pixel at (x, y); out-of-frame dots are dropped.
func (c *Canvas) Set(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.dots[row*c.Width+col] |= dotBits[(y%4)*2+x%2]
}

func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width + 1))
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteRune(rune(brailleBase + int(c.dots[row*c.Width+col])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
