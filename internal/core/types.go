package core

import (
	"fmt"
	"iter"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Contains reports whether (x, y) lies inside [0,W)×[0,H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

// Area returns the number of cells covered by the size.
func (s Size) Area() int { return s.W * s.H }

// Reader is the uniform cell accessor every storage representation offers.
// Reads outside the representation's bounds return false.
type Reader interface {
	Get(x, y int) bool
}

// Writer mutates single cells.
type Writer interface {
	Set(x, y int, alive bool)
}

// Store is a mutable cell container usable as a generation buffer.
type Store interface {
	Reader
	Writer
	Clear()
}

// RowParallel marks stores whose Set is safe to call concurrently for
// distinct rows.
type RowParallel interface {
	RowParallel() bool
}

// Sequencer is implemented by stores that can produce their own row-major
// cell sequence faster than repeated Get calls.
type Sequencer interface {
	All() iter.Seq[bool]
}

// Cells returns the row-major sequence of cells of r within size, read
// through Get.
func Cells(r Reader, size Size) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for y := 0; y < size.H; y++ {
			for x := 0; x < size.W; x++ {
				if !yield(r.Get(x, y)) {
					return
				}
			}
		}
	}
}

// Population counts the live cells of r within size.
func Population(r Reader, size Size) int {
	n := 0
	for alive := range Cells(r, size) {
		if alive {
			n++
		}
	}
	return n
}

// Factory constructs a Store covering at least the provided size.
type Factory func(size Size) Store

var stores = map[string]Factory{}

// Register adds a storage factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	stores[name] = f
}

// Stores exposes the registry of available storage factories.
func Stores() map[string]Factory {
	return stores
}

// StoreNames returns the registered storage names in sorted order.
func StoreNames() []string {
	names := make([]string, 0, len(stores))
	for name := range stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStore builds a store by registry name.
func NewStore(name string, size Size) (Store, error) {
	f, ok := stores[name]
	if !ok {
		return nil, fmt.Errorf("unknown store %q (have %v)", name, StoreNames())
	}
	return f(size), nil
}
