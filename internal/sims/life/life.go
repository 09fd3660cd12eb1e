// Package life computes generations of outer-totalistic automata such as
// Conway's Game of Life over any core cell store.
package life

import (
	"runtime"
	"sync"

	"lifesim/internal/core"
)

// Engine advances a generation from one buffer into another.
type Engine struct {
	rule    Rule
	workers int
}

// New returns an engine applying rule. workers <= 0 uses one worker per CPU.
func New(rule Rule, workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{rule: rule, workers: workers}
}

// Rule returns the rule the engine applies.
func (e *Engine) Rule() Rule { return e.rule }

// Workers returns the configured worker count.
func (e *Engine) Workers() int { return e.workers }

// Tick writes the successor of cur into next for every cell within size.
// Cells outside size count as dead. cur is only read; next must be a
// different buffer.
func (e *Engine) Tick(cur core.Reader, next core.Writer, size core.Size) {
	if any(cur) == any(next) {
		panic("life: tick into the buffer being read")
	}
	if e.workers > 1 && size.H > 1 {
		if rp, ok := next.(core.RowParallel); ok && rp.RowParallel() {
			e.tickBands(cur, next, size)
			return
		}
	}
	e.tickRows(cur, next, size.W, 0, size.H)
}

func (e *Engine) tickBands(cur core.Reader, next core.Writer, size core.Size) {
	workers := min(e.workers, size.H)
	rows := (size.H + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < size.H; start += rows {
		end := min(start+rows, size.H)
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.tickRows(cur, next, size.W, start, end)
		}()
	}
	wg.Wait()
}

func (e *Engine) tickRows(cur core.Reader, next core.Writer, w, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			next.Set(x, y, e.rule.Next(cur.Get(x, y), Neighbours(cur, x, y)))
		}
	}
}

// Neighbours returns the number of live cells among the eight cells around
// (x, y).
func Neighbours(r core.Reader, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if r.Get(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}
