// Package control holds the run/pause/speed state shared by the simulation
// and render loops, plus the pointer state used for editing and panning.
package control

import (
	"fmt"
	"image"
	"sync"
	"time"
)

// Mode enumerates the speed policies.
type Mode int

const (
	// Unlimited publishes generations back to back.
	Unlimited Mode = iota
	// Lockstep publishes one generation per rendered frame.
	Lockstep
	// Limited sleeps a fixed delay after every generation.
	Limited
)

func (m Mode) String() string {
	switch m {
	case Unlimited:
		return "unlimited"
	case Lockstep:
		return "lockstep"
	case Limited:
		return "limited"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Speed is a speed policy. Delay is only meaningful for Limited.
type Speed struct {
	Mode  Mode
	Delay time.Duration
}

// LimitedTo returns a Limited speed with the given delay.
func LimitedTo(d time.Duration) Speed { return Speed{Mode: Limited, Delay: d} }

func (s Speed) String() string {
	if s.Mode == Limited {
		return fmt.Sprintf("limited(%v)", s.Delay)
	}
	return s.Mode.String()
}

// Levels lists the selectable speeds from fastest to slowest.
var Levels = []Speed{
	{Mode: Unlimited},
	{Mode: Lockstep},
	LimitedTo(100 * time.Millisecond),
	LimitedTo(500 * time.Millisecond),
	LimitedTo(time.Second),
	LimitedTo(5 * time.Second),
}

// Command is a discrete control request.
type Command int

const (
	Quit Command = iota
	TogglePause
	SpeedUp
	SpeedDown
)

func (c Command) String() string {
	switch c {
	case Quit:
		return "quit"
	case TogglePause:
		return "toggle-pause"
	case SpeedUp:
		return "speed-up"
	case SpeedDown:
		return "speed-down"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Pointer is the transient mouse state.
type Pointer struct {
	Cursor    image.Point
	Panning   bool
	Drawing   bool
	DrawValue bool
}

// Snapshot is a copy of the control state.
type Snapshot struct {
	Running bool
	Paused  bool
	Level   int
	Speed   Speed
	Pointer Pointer
}

// State is the mutex-guarded control state.
type State struct {
	mu      sync.Mutex
	running bool
	paused  bool
	level   int
	pointer Pointer
	changed chan struct{}
}

// New returns a running, unpaused state at the given speed level.
func New(level int) *State {
	return &State{
		running: true,
		level:   clampLevel(level),
		changed: make(chan struct{}),
	}
}

func clampLevel(level int) int {
	return max(0, min(level, len(Levels)-1))
}

// LevelOf returns the index of speed in Levels, or -1.
func LevelOf(speed Speed) int {
	for i, s := range Levels {
		if s == speed {
			return i
		}
	}
	return -1
}

// Snapshot returns a consistent copy of every field.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Watch returns a snapshot together with the channel that will be closed on
// the first change after it was taken.
func (s *State) Watch() (Snapshot, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), s.changed
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Running: s.running,
		Paused:  s.paused,
		Level:   s.level,
		Speed:   Levels[s.level],
		Pointer: s.pointer,
	}
}

// Running reports whether the loops should keep going.
func (s *State) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Changed returns a channel closed on the next change to running, paused or
// speed. Pointer updates do not signal it.
func (s *State) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

func (s *State) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Apply executes cmd and returns the resulting state. Quit is terminal: once
// stopped, the state never runs again.
func (s *State) Apply(cmd Command) Snapshot {
	s.mu.Lock()
	switch cmd {
	case Quit:
		if s.running {
			s.running = false
			s.notifyLocked()
		}
	case TogglePause:
		s.paused = !s.paused
		s.notifyLocked()
	case SpeedUp:
		if s.level > 0 {
			s.level--
			s.notifyLocked()
		}
	case SpeedDown:
		if s.level < len(Levels)-1 {
			s.level++
			s.notifyLocked()
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap
}

// SetLevel selects a speed level, clamped to Levels.
func (s *State) SetLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level = clampLevel(level)
	if level != s.level {
		s.level = level
		s.notifyLocked()
	}
}

// SetPaused sets the paused flag.
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if paused != s.paused {
		s.paused = paused
		s.notifyLocked()
	}
}

// UpdatePointer mutates the pointer state under the lock and returns the
// previous and new values.
func (s *State) UpdatePointer(fn func(p *Pointer)) (before, after Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.pointer
	fn(&s.pointer)
	return before, s.pointer
}
