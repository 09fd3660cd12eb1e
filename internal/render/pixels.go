package render

import (
	"image/color"
	"iter"
)

// Palette holds the two cell colours.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
}

// DefaultPalette matches the classic light-on-dark look.
var DefaultPalette = Palette{
	Alive: color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
	Dead:  color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF},
}

// fillBinaryRGBA converts a row-major cell sequence into RGBA pixels in buf.
// It stops when either the sequence or the buffer runs out and returns the
// number of cells written.
func fillBinaryRGBA(buf []byte, cells iter.Seq[bool], p Palette) int {
	n := 0
	for alive := range cells {
		base := n * 4
		if base+4 > len(buf) {
			break
		}
		c := p.Dead
		if alive {
			c = p.Alive
		}
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
		n++
	}
	return n
}
