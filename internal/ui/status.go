package ui

import (
	"fmt"
	"time"

	"lifesim/internal/control"
	"lifesim/internal/sched"
)

// Status is everything the HUD shows for one frame.
type Status struct {
	Controls   control.Snapshot
	Stats      sched.Stats
	Population int
	Zoom       float64
	Store      string
}

// Lines formats the status as HUD text lines.
func (s Status) Lines() []string {
	state := "running"
	switch {
	case !s.Controls.Running:
		state = "stopped"
	case s.Controls.Paused:
		state = "paused"
	}
	return []string{
		fmt.Sprintf("gen %d  pop %d", s.Stats.Generation, s.Population),
		fmt.Sprintf("%s  speed %v", state, s.Controls.Speed),
		fmt.Sprintf("tick %v  zoom %.2f", s.Stats.LastTick.Round(time.Microsecond), s.Zoom),
		fmt.Sprintf("store %s", s.Store),
	}
}
