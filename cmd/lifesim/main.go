//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"lifesim/internal/app"
	"lifesim/internal/control"
	"lifesim/internal/generation"
	_ "lifesim/internal/grid"
	_ "lifesim/internal/quadtree"
	"lifesim/internal/sched"
	"lifesim/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	rule, err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	store, err := generation.NewNamed(cfg.Store, cfg.Size())
	if err != nil {
		log.Fatal(err)
	}
	store.Randomize(cfg.Seed, cfg.Density)

	logger := log.Default()
	controls := control.New(cfg.Level)
	s := sched.New(store, controls, life.New(rule, cfg.Workers), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.RunSimulation(ctx) }()

	game := app.New(ctx, s, store, controls, cfg, logger)
	w, h := app.WindowSize(cfg)
	ebiten.SetWindowTitle("lifesim - " + rule.String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)
	controls.Apply(control.Quit)
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("simulation: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
