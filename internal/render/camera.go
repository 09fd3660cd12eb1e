package render

import (
	"image"
	"math"
)

// CellPitch is the on-screen size of one cell at zoom 1, in pixels.
const CellPitch = 10

const (
	minZoom  = 0.05
	maxZoom  = 8
	zoomStep = 1.1
)

// Camera maps grid cells to screen pixels. X and Y are the world position
// (in unzoomed pixels) shown at the top-left corner of the view.
type Camera struct {
	X, Y  float64
	Zoom  float64
	ViewW int
	ViewH int
}

// NewCamera returns a camera at the origin with zoom 1.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{Zoom: 1, ViewW: viewW, ViewH: viewH}
}

// Resize records a new viewport size.
func (c *Camera) Resize(w, h int) {
	c.ViewW, c.ViewH = w, h
}

// Offset moves the camera by a world-space delta.
func (c *Camera) Offset(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// Pan moves the camera by a screen-space delta, so dragging by n pixels
// moves the world by n pixels at any zoom.
func (c *Camera) Pan(dx, dy float64) {
	c.Offset(dx/c.Zoom, dy/c.Zoom)
}

// ScrollZoom zooms by zoomStep^delta keeping the world point under the
// screen position anchor fixed.
func (c *Camera) ScrollZoom(anchor image.Point, delta float64) {
	if delta == 0 {
		return
	}
	wx, wy := c.ScreenToWorld(float64(anchor.X), float64(anchor.Y))
	c.Zoom = math.Max(minZoom, math.Min(maxZoom, c.Zoom*math.Pow(zoomStep, delta)))
	c.X = wx - float64(anchor.X)/c.Zoom
	c.Y = wy - float64(anchor.Y)/c.Zoom
}

// ScreenToWorld converts a screen position to world pixels.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return c.X + sx/c.Zoom, c.Y + sy/c.Zoom
}

// ScreenToCell returns the grid cell under a screen position.
func (c *Camera) ScreenToCell(p image.Point) image.Point {
	wx, wy := c.ScreenToWorld(float64(p.X), float64(p.Y))
	return image.Pt(int(math.Floor(wx/CellPitch)), int(math.Floor(wy/CellPitch)))
}

// CellToScreen returns the screen position of a cell's top-left corner.
func (c *Camera) CellToScreen(cell image.Point) (float64, float64) {
	return (float64(cell.X)*CellPitch - c.X) * c.Zoom, (float64(cell.Y)*CellPitch - c.Y) * c.Zoom
}

// VisibleCells returns the range of cells intersecting the viewport.
func (c *Camera) VisibleCells() image.Rectangle {
	lo := c.ScreenToCell(image.Pt(0, 0))
	hi := c.ScreenToCell(image.Pt(c.ViewW, c.ViewH))
	return image.Rectangle{Min: lo, Max: hi.Add(image.Pt(1, 1))}
}
