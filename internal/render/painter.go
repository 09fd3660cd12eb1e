//go:build ebiten

package render

import (
	"image/color"

	"lifesim/internal/generation"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads generation snapshots into a single image and draws it
// through a camera.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
	drawn   uint64
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, p Palette) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: p}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Upload copies the current generation into the painter image and returns
// its generation number. The store lock is held only while reading cells.
func (gp *GridPainter) Upload(store *generation.Store) uint64 {
	store.View(func(snap generation.Snapshot) {
		if snap.Size.W != gp.w || snap.Size.H != gp.h {
			return
		}
		fillBinaryRGBA(gp.buf, snap.All(), gp.palette)
		gp.drawn = snap.Generation
	})
	gp.img.WritePixels(gp.buf)
	return gp.drawn
}

// Draw renders the last uploaded generation onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, cam *Camera) {
	dst.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cam.X/CellPitch, -cam.Y/CellPitch)
	op.GeoM.Scale(CellPitch*cam.Zoom, CellPitch*cam.Zoom)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
