//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
	panelWidth   = 230
)

// HUD renders a small status panel in the top-left corner of the screen.
type HUD struct {
	panel   *ebiten.Image
	visible bool
}

// NewHUD constructs a visible HUD.
func NewHUD() *HUD {
	return &HUD{visible: true}
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Draw paints the status lines.
func (h *HUD) Draw(screen *ebiten.Image, st Status) {
	if h == nil || !h.visible {
		return
	}
	lines := st.Lines()
	height := 2*panelPadding + len(lines)*lineHeight
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(panelWidth, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	face := basicfont.Face7x13
	for i, line := range lines {
		y := panelPadding + (i+1)*lineHeight - 4
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	screen.DrawImage(h.panel, &ebiten.DrawImageOptions{})
}
