// Package sched runs the simulation loop and coordinates it with a render
// loop according to the current speed policy.
package sched

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"lifesim/internal/control"
	"lifesim/internal/core"
	"lifesim/internal/generation"
	"lifesim/internal/sims/life"
)

// Stats summarises simulation progress.
type Stats struct {
	Generation uint64
	Computed   uint64
	LastTick   time.Duration
}

// Scheduler drives one simulation loop over a generation store.
//
// Under Unlimited and Limited the simulation loop publishes on its own and
// the render loop draws whatever generation is current. Under Lockstep both
// loops meet once per generation and the publish happens inside the meeting,
// so the render loop draws every generation exactly once.
type Scheduler struct {
	store    *generation.Store
	controls *control.State
	engine   *life.Engine
	meet     *Rendezvous
	logger   *log.Logger

	computed atomic.Uint64
	lastTick atomic.Int64
}

// New returns a scheduler. A nil logger uses log.Default().
func New(store *generation.Store, controls *control.State, engine *life.Engine, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		store:    store,
		controls: controls,
		engine:   engine,
		meet:     NewRendezvous(2),
		logger:   logger,
	}
}

// Stats returns the current progress counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Generation: s.store.Generation(),
		Computed:   s.computed.Load(),
		LastTick:   time.Duration(s.lastTick.Load()),
	}
}

func (s *Scheduler) compute() {
	start := time.Now()
	s.store.Compute(func(cur core.Reader, next core.Writer, size core.Size) {
		s.engine.Tick(cur, next, size)
	})
	s.lastTick.Store(int64(time.Since(start)))
	s.computed.Add(1)
}

func (s *Scheduler) publish() { s.store.Publish() }

// RunSimulation computes and publishes generations until the controls stop
// running or ctx is done. It never starts a tick after observing a stop.
func (s *Scheduler) RunSimulation(ctx context.Context) error {
	s.logger.Printf("simulation loop started: %dx%d, rule %v, %d workers",
		s.store.Size().W, s.store.Size().H, s.engine.Rule(), s.engine.Workers())
	defer func() {
		st := s.Stats()
		s.logger.Printf("simulation loop stopped at generation %d", st.Generation)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap, changed := s.controls.Watch()
		if !snap.Running {
			return nil
		}

		computed := false
		if !snap.Paused {
			s.compute()
			computed = true
		}

		switch snap.Speed.Mode {
		case control.Lockstep:
			if err := s.lockstep(ctx, changed, computed); err != nil {
				return err
			}
		case control.Limited:
			if computed {
				s.publish()
			}
			if err := wait(ctx, changed, snap.Speed.Delay); err != nil {
				return err
			}
		default:
			if computed {
				s.publish()
				continue
			}
			if err := wait(ctx, changed, 0); err != nil {
				return err
			}
		}
	}
}

// lockstep meets the render loop once. A computed generation is published
// inside the meeting. When a control change aborts the meeting and the policy
// is still Lockstep, the meeting is retried so the render loop does not miss
// the generation; otherwise it is published without meeting.
func (s *Scheduler) lockstep(ctx context.Context, changed <-chan struct{}, computed bool) error {
	var action func()
	if computed {
		action = s.publish
	}
	for {
		err := s.meet.Meet(ctx, changed, action)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrAborted) {
			if computed {
				s.publish()
			}
			return err
		}
		if !computed {
			return nil
		}
		var snap control.Snapshot
		snap, changed = s.controls.Watch()
		if !snap.Running || snap.Speed.Mode != control.Lockstep {
			s.publish()
			return nil
		}
	}
}

// wait blocks for d, or until the controls change when d is zero. A control
// change or ctx cancellation cuts the wait short.
func wait(ctx context.Context, changed <-chan struct{}, d time.Duration) error {
	var timeout <-chan time.Time
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-changed:
	case <-timeout:
	}
	return nil
}

// FrameDone is called by the render loop after it has drawn a frame. Under
// Lockstep it blocks until the simulation loop has published the next
// generation; otherwise it returns at once.
func (s *Scheduler) FrameDone(ctx context.Context) error {
	snap, changed := s.controls.Watch()
	if !snap.Running || snap.Speed.Mode != control.Lockstep {
		return nil
	}
	err := s.meet.Meet(ctx, changed, nil)
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

// Run runs the simulation loop and a render loop built from frame until the
// controls stop running, ctx is done, or either loop fails.
func (s *Scheduler) Run(ctx context.Context, frame func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.RunSimulation(ctx)
	})
	g.Go(func() error {
		for s.controls.Running() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := frame(ctx); err != nil {
				return err
			}
			if err := s.FrameDone(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}
