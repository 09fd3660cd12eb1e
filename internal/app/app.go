//go:build ebiten

package app

import (
	"context"
	"image"
	"log"

	"lifesim/internal/control"
	"lifesim/internal/generation"
	"lifesim/internal/input"
	"lifesim/internal/render"
	"lifesim/internal/sched"
	"lifesim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// panStep is how far the arrow keys pan per frame, in screen pixels.
const panStep = 8

// Game adapts a running scheduler to the ebiten.Game interface. Update turns
// ebiten input into events, Draw shows the current generation and ends the
// frame on the scheduler.
type Game struct {
	ctx      context.Context
	sched    *sched.Scheduler
	store    *generation.Store
	controls *control.State
	handler  *input.Handler
	camera   *render.Camera
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	logger   *log.Logger

	cfg    *Config
	cursor image.Point
	err    error
}

// New constructs a Game for a scheduler whose simulation loop runs under ctx.
func New(ctx context.Context, s *sched.Scheduler, store *generation.Store, controls *control.State, cfg *Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	w, h := WindowSize(cfg)
	cam := render.NewCamera(w, h)
	size := store.Size()
	return &Game{
		ctx:      ctx,
		sched:    s,
		store:    store,
		controls: controls,
		handler:  input.NewHandler(controls, store, cam, logger),
		camera:   cam,
		painter:  render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		hud:      ui.NewHUD(),
		overlay:  ui.NewOverlay(size),
		logger:   logger,
		cfg:      cfg,
	}
}

// WindowSize returns the initial window size for a configuration.
func WindowSize(cfg *Config) (int, int) {
	w := min(cfg.Width*render.CellPitch, 1280)
	h := min(cfg.Height*render.CellPitch, 800)
	return w, h
}

// Update decodes input and reports termination once the controls stop.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	g.handler.Handle(g.events()...)

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.overlay.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.store.Randomize(g.cfg.Seed, g.cfg.Density)
		g.logger.Printf("randomized with seed %d", g.cfg.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.store.Clear()
		g.logger.Print("cleared")
	}

	if !g.controls.Running() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) events() []input.Event {
	var evs []input.Event
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		evs = append(evs, input.Event{Kind: input.Quit})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		evs = append(evs, input.Event{Kind: input.PauseToggle})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		evs = append(evs, input.Event{Kind: input.SpeedUp})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		evs = append(evs, input.Event{Kind: input.SpeedDown})
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panStep
	}
	if dx != 0 || dy != 0 {
		evs = append(evs, input.Event{Kind: input.Pan, DX: dx, DY: dy})
	}

	x, y := ebiten.CursorPosition()
	if pos := image.Pt(x, y); pos != g.cursor {
		g.cursor = pos
		evs = append(evs, input.Event{Kind: input.Motion, X: x, Y: y})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		evs = append(evs, input.Event{Kind: input.Zoom, Delta: wy})
	}

	buttons := []struct {
		eb ebiten.MouseButton
		b  input.Button
	}{
		{ebiten.MouseButtonLeft, input.ButtonLeft},
		{ebiten.MouseButtonRight, input.ButtonRight},
	}
	for _, btn := range buttons {
		if inpututil.IsMouseButtonJustPressed(btn.eb) {
			evs = append(evs, input.Event{Kind: input.ButtonDown, Button: btn.b, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(btn.eb) {
			evs = append(evs, input.Event{Kind: input.ButtonUp, Button: btn.b, X: x, Y: y})
		}
	}
	return evs
}

// Draw renders the current generation, then ends the frame on the scheduler.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Upload(g.store)
	g.painter.Draw(screen, g.camera)
	g.overlay.Draw(screen, g.camera, g.cursor)
	g.hud.Draw(screen, ui.Status{
		Controls:   g.controls.Snapshot(),
		Stats:      g.sched.Stats(),
		Population: g.store.Population(),
		Zoom:       g.camera.Zoom,
		Store:      g.cfg.Store,
	})
	if err := g.sched.FrameDone(g.ctx); err != nil && g.err == nil && g.ctx.Err() == nil {
		g.err = err
	}
}

// Layout tracks the window size so the camera always covers it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.camera.ViewW || outsideHeight != g.camera.ViewH {
		g.handler.Handle(input.Event{Kind: input.Resize, X: outsideWidth, Y: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
