//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"lifesim/internal/core"
	"lifesim/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

// minGridZoom is the zoom below which grid lines would be denser than the
// cells themselves and are skipped.
const minGridZoom = 0.8

// Overlay draws the hovered cell and optional grid lines over the board.
type Overlay struct {
	size     core.Size
	showGrid bool
	pixel    *ebiten.Image
}

// NewOverlay constructs an overlay for a board of the given size.
func NewOverlay(size core.Size) *Overlay {
	o := &Overlay{size: size}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// ToggleGrid shows or hides the grid lines.
func (o *Overlay) ToggleGrid() { o.showGrid = !o.showGrid }

// Draw renders the overlay for the given camera and cursor position.
func (o *Overlay) Draw(screen *ebiten.Image, cam *render.Camera, cursor image.Point) {
	if o.showGrid && cam.Zoom >= minGridZoom {
		o.drawGrid(screen, cam)
	}
	cell := cam.ScreenToCell(cursor)
	if !o.size.Contains(cell.X, cell.Y) {
		return
	}
	x, y := cam.CellToScreen(cell)
	side := render.CellPitch * cam.Zoom
	o.drawRect(screen, x, y, side, 1, color.RGBA{R: 255, G: 200, B: 40, A: 255})
	o.drawRect(screen, x, y+side-1, side, 1, color.RGBA{R: 255, G: 200, B: 40, A: 255})
	o.drawRect(screen, x, y, 1, side, color.RGBA{R: 255, G: 200, B: 40, A: 255})
	o.drawRect(screen, x+side-1, y, 1, side, color.RGBA{R: 255, G: 200, B: 40, A: 255})
}

func (o *Overlay) drawGrid(screen *ebiten.Image, cam *render.Camera) {
	vis := cam.VisibleCells().Intersect(image.Rect(0, 0, o.size.W, o.size.H))
	if vis.Empty() {
		return
	}
	line := color.RGBA{R: 40, G: 40, B: 48, A: 255}
	x0, y0 := cam.CellToScreen(vis.Min)
	x1, y1 := cam.CellToScreen(vis.Max)
	for cx := vis.Min.X; cx <= vis.Max.X; cx++ {
		x, _ := cam.CellToScreen(image.Pt(cx, 0))
		o.drawRect(screen, x, y0, 1, y1-y0, line)
	}
	for cy := vis.Min.Y; cy <= vis.Max.Y; cy++ {
		_, y := cam.CellToScreen(image.Pt(0, cy))
		o.drawRect(screen, x0, y, x1-x0, 1, line)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
