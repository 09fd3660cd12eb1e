// Package generation owns the two cell buffers shared by the simulation and
// render loops and publishes finished generations between them.
//
// One goroutine, the simulation loop, is the only writer. It computes into a
// private "next" buffer while holding shared access to "current", then swaps
// the two under exclusive access. Readers only ever see "current" while
// holding shared access, so a reader observes exactly one whole generation.
package generation

import (
	"errors"
	"iter"
	"sync"
	"sync/atomic"

	"lifesim/internal/core"
)

var (
	// ErrNilBuffer is returned when a buffer is missing.
	ErrNilBuffer = errors.New("generation: nil buffer")
	// ErrAliased is returned when current and next are the same buffer.
	ErrAliased = errors.New("generation: current and next are the same buffer")
)

// Snapshot is a read-only view of the current generation. It is valid only
// inside the View callback that produced it.
type Snapshot struct {
	Generation uint64
	Size       core.Size
	Cells      core.Reader
}

// All yields the snapshot cells in row-major order.
func (s Snapshot) All() iter.Seq[bool] {
	if seq, ok := s.Cells.(core.Sequencer); ok {
		if sz, ok := s.Cells.(interface{ Size() core.Size }); ok && sz.Size() == s.Size {
			return seq.All()
		}
	}
	return core.Cells(s.Cells, s.Size)
}

// Store is a double-buffered generation store.
type Store struct {
	size core.Size

	mu   sync.RWMutex
	cur  core.Store
	next core.Store

	// step serialises Step calls so one compute/publish pair runs at a time.
	step sync.Mutex
	gen  atomic.Uint64
}

// New returns a store over two distinct buffers of the given size.
func New(size core.Size, cur, next core.Store) (*Store, error) {
	if cur == nil || next == nil {
		return nil, ErrNilBuffer
	}
	if cur == next {
		return nil, ErrAliased
	}
	return &Store{size: size, cur: cur, next: next}, nil
}

// NewNamed builds both buffers from the core store registry.
func NewNamed(name string, size core.Size) (*Store, error) {
	cur, err := core.NewStore(name, size)
	if err != nil {
		return nil, err
	}
	next, err := core.NewStore(name, size)
	if err != nil {
		return nil, err
	}
	return New(size, cur, next)
}

// Size returns the simulated region.
func (s *Store) Size() core.Size { return s.size }

// Generation returns the number of generations published so far.
func (s *Store) Generation() uint64 { return s.gen.Load() }

// View calls fn with the current generation. Publish waits for fn to return.
// fn must not retain the snapshot or call back into the store's writers.
func (s *Store) View(fn func(Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(Snapshot{Generation: s.gen.Load(), Size: s.size, Cells: s.cur})
}

// Compute runs fn with shared access to the current generation and exclusive
// use of the next buffer. It does not publish. Only the simulation loop may
// call it, and each Compute must be followed by Publish before the next one.
func (s *Store) Compute(fn func(cur core.Reader, next core.Writer, size core.Size)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.cur, s.next, s.size)
}

// Publish swaps current and next and bumps the generation counter. Readers
// inside View finish before the swap; readers after it see the new buffer.
func (s *Store) Publish() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur, s.next = s.next, s.cur
	return s.gen.Add(1)
}

// Step computes and publishes one generation.
func (s *Store) Step(fn func(cur core.Reader, next core.Writer, size core.Size)) uint64 {
	s.step.Lock()
	defer s.step.Unlock()
	s.Compute(fn)
	return s.Publish()
}

// Edit sets one cell of the current generation. Coordinates outside the
// simulated region are rejected. An edit made while a generation is being
// computed is overwritten when that generation is published.
func (s *Store) Edit(x, y int, alive bool) bool {
	if !s.size.Contains(x, y) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Set(x, y, alive)
	return true
}

// Toggle flips one cell of the current generation and returns its new value.
func (s *Store) Toggle(x, y int) (alive, ok bool) {
	if !s.size.Contains(x, y) {
		return false, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	alive = !s.cur.Get(x, y)
	s.cur.Set(x, y, alive)
	return alive, true
}

// Randomize replaces the current generation with live cells at the given
// density.
func (s *Store) Randomize(seed int64, density float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Clear()
	core.NewRNG(seed).Fill(s.cur, s.size, density)
}

// Clear kills every cell of the current generation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Clear()
}

// Population counts the live cells of the current generation.
func (s *Store) Population() int {
	n := 0
	s.View(func(snap Snapshot) {
		if p, ok := snap.Cells.(interface{ Population() int }); ok {
			n = p.Population()
			return
		}
		n = core.Population(snap.Cells, snap.Size)
	})
	return n
}
