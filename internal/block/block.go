// Package block provides an 8×8 cell store packed into a single machine word.
package block

import (
	"fmt"
	"math/bits"
)

// Size is the width and height of a Block in cells.
const Size = 8

// Block holds 64 cells. Cell (x, y) lives at bit (7-x) + (7-y)*8, so the
// top-left cell is the most significant bit.
type Block uint64

func bit(x, y int) uint64 {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		panic(fmt.Sprintf("block: cell (%d,%d) outside [0,%d)×[0,%d)", x, y, Size, Size))
	}
	return 1 << ((Size - 1 - x) + (Size-1-y)*Size)
}

// Get reports whether cell (x, y) is alive. It panics outside [0,8)×[0,8).
func (b Block) Get(x, y int) bool {
	return uint64(b)&bit(x, y) != 0
}

// Set stores alive at (x, y). It panics outside [0,8)×[0,8).
func (b *Block) Set(x, y int, alive bool) {
	m := bit(x, y)
	if alive {
		*b |= Block(m)
		return
	}
	*b &^= Block(m)
}

// Count returns the number of live cells.
func (b Block) Count() int { return bits.OnesCount64(uint64(b)) }

// Empty reports whether every cell is dead.
func (b Block) Empty() bool { return b == 0 }
