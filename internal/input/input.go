// Package input applies decoded user events to the control state, the
// current generation and the camera.
package input

import (
	"fmt"
	"image"
	"log"

	"lifesim/internal/control"
	"lifesim/internal/generation"
	"lifesim/internal/render"
)

// Kind enumerates the event kinds.
type Kind int

const (
	Quit Kind = iota
	Resize
	PauseToggle
	SpeedUp
	SpeedDown
	Zoom
	Pan
	ButtonDown
	ButtonUp
	Motion
)

var kindNames = [...]string{"quit", "resize", "pause-toggle", "speed-up", "speed-down", "zoom", "pan", "button-down", "button-up", "motion"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Event is one decoded input event.
//
//	Resize:     X, Y = new viewport width and height
//	Zoom:       Delta = wheel steps, positive zooms in
//	Pan:        DX, DY = screen pixels to move the view by
//	ButtonDown, ButtonUp, Motion: X, Y = cursor position
type Event struct {
	Kind   Kind
	X, Y   int
	DX, DY float64
	Delta  float64
	Button Button
}

// Handler routes events. It must only be used from the render/input loop,
// which owns the camera.
type Handler struct {
	controls *control.State
	store    *generation.Store
	camera   *render.Camera
	logger   *log.Logger
}

// NewHandler returns a handler. A nil logger uses log.Default().
func NewHandler(controls *control.State, store *generation.Store, camera *render.Camera, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{controls: controls, store: store, camera: camera, logger: logger}
}

// Handle applies events in order.
func (h *Handler) Handle(events ...Event) {
	for _, e := range events {
		h.handle(e)
	}
}

func (h *Handler) handle(e Event) {
	switch e.Kind {
	case Quit:
		h.controls.Apply(control.Quit)
		h.logger.Print("quit requested")
	case Resize:
		h.camera.Resize(e.X, e.Y)
	case PauseToggle:
		if h.controls.Apply(control.TogglePause).Paused {
			h.logger.Print("paused")
		} else {
			h.logger.Print("resumed")
		}
	case SpeedUp:
		h.logger.Printf("speed %v", h.controls.Apply(control.SpeedUp).Speed)
	case SpeedDown:
		h.logger.Printf("speed %v", h.controls.Apply(control.SpeedDown).Speed)
	case Zoom:
		h.camera.ScrollZoom(h.controls.Snapshot().Pointer.Cursor, e.Delta)
	case Pan:
		h.camera.Pan(e.DX, e.DY)
	case ButtonDown:
		h.buttonDown(e)
	case ButtonUp:
		h.controls.UpdatePointer(func(p *control.Pointer) {
			p.Cursor = image.Pt(e.X, e.Y)
			switch e.Button {
			case ButtonLeft:
				p.Drawing = false
			case ButtonRight:
				p.Panning = false
			}
		})
	case Motion:
		h.motion(e)
	}
}

func (h *Handler) buttonDown(e Event) {
	pos := image.Pt(e.X, e.Y)
	switch e.Button {
	case ButtonLeft:
		cell := h.camera.ScreenToCell(pos)
		alive, ok := h.store.Toggle(cell.X, cell.Y)
		h.controls.UpdatePointer(func(p *control.Pointer) {
			p.Cursor = pos
			p.Drawing = ok
			p.DrawValue = alive
		})
	case ButtonRight:
		h.controls.UpdatePointer(func(p *control.Pointer) {
			p.Cursor = pos
			p.Panning = true
		})
	}
}

func (h *Handler) motion(e Event) {
	before, after := h.controls.UpdatePointer(func(p *control.Pointer) {
		p.Cursor = image.Pt(e.X, e.Y)
	})
	if after.Panning {
		d := after.Cursor.Sub(before.Cursor)
		h.camera.Pan(-float64(d.X), -float64(d.Y))
	}
	if after.Drawing {
		from := h.camera.ScreenToCell(before.Cursor)
		to := h.camera.ScreenToCell(after.Cursor)
		for _, c := range line(from, to) {
			h.store.Edit(c.X, c.Y, after.DrawValue)
		}
	}
}

// line returns the cells on the segment from a to b, both included.
func line(a, b image.Point) []image.Point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	pts := []image.Point{a}
	for a != b {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
		pts = append(pts, a)
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
