package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"lifesim/internal/app"
	"lifesim/internal/control"
	"lifesim/internal/core"
	"lifesim/internal/generation"
	_ "lifesim/internal/grid"
	_ "lifesim/internal/quadtree"
	"lifesim/internal/sched"
	"lifesim/internal/sims/life"
)

type scenario struct {
	store string
	level int
}

func (s scenario) String() string {
	return fmt.Sprintf("store=%s speed=%v", s.store, control.Levels[s.level])
}

type scenarioResult struct {
	scenario   scenario
	elapsed    time.Duration
	generation uint64
	frames     int
	drawnMax   uint64
	population int
	lastTick   time.Duration
}

func (r scenarioResult) gensPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.generation) / r.elapsed.Seconds()
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	duration := flag.Duration("duration", 2*time.Second, "run time per scenario")
	parallel := flag.Int("parallel", 1, "scenarios run at once")
	stores := flag.String("stores", strings.Join(core.StoreNames(), ","), "comma separated stores to sweep")
	levels := flag.Int("levels", 3, "sweep speed levels 0..levels-1")
	verbose := flag.Bool("v", false, "log scheduler events")
	flag.Parse()

	rule, err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}
	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.Default()
	}

	var sets []scenario
	for _, name := range strings.Split(*stores, ",") {
		name = strings.TrimSpace(name)
		if _, ok := core.Stores()[name]; !ok {
			log.Fatalf("unknown store %q (have %v)", name, core.StoreNames())
		}
		for level := 0; level < *levels && level < len(control.Levels); level++ {
			sets = append(sets, scenario{store: name, level: level})
		}
	}

	fmt.Printf("Sweeping %d scenarios on a %dx%d grid (%d at a time, %v each, %d workers, rule %v, %d cpus)\n",
		len(sets), cfg.Width, cfg.Height, *parallel, *duration, cfg.Workers, rule, runtime.NumCPU())

	var (
		mu  sync.Mutex
		all []scenarioResult
	)
	g := new(errgroup.Group)
	g.SetLimit(max(*parallel, 1))
	for _, sc := range sets {
		g.Go(func() error {
			res, err := runScenario(cfg, rule, sc, *duration, logger)
			if err != nil {
				return fmt.Errorf("%v: %w", sc, err)
			}
			fmt.Printf("%v: %d generations, %d frames, %.1f gen/s\n", sc, res.generation, res.frames, res.gensPerSec())
			mu.Lock()
			all = append(all, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].gensPerSec() > all[j].gensPerSec() })
	fmt.Printf("\nResults:\n")
	for i, res := range all {
		fmt.Printf("%2d) %-40v gen=%d frames=%d lastDrawn=%d pop=%d lastTick=%v gen/s=%.1f\n",
			i+1, res.scenario, res.generation, res.frames, res.drawnMax, res.population,
			res.lastTick.Round(time.Microsecond), res.gensPerSec())
	}
}

// runScenario runs the scheduler headless against a paced render loop that
// reads every frame the way the GUI painter does.
func runScenario(cfg *app.Config, rule life.Rule, sc scenario, d time.Duration, logger *log.Logger) (scenarioResult, error) {
	store, err := generation.NewNamed(sc.store, cfg.Size())
	if err != nil {
		return scenarioResult{}, err
	}
	store.Randomize(cfg.Seed, cfg.Density)
	controls := control.New(sc.level)
	s := sched.New(store, controls, life.New(rule, cfg.Workers), logger)

	res := scenarioResult{scenario: sc}
	pace := core.NewFixedStep(cfg.TPS)
	frame := func(ctx context.Context) error {
		if wait := pace.Until(); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		pace.ShouldStep()
		store.View(func(snap generation.Snapshot) {
			n := 0
			for alive := range snap.All() {
				if alive {
					n++
				}
			}
			res.population = n
			res.drawnMax = snap.Generation
		})
		res.frames++
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	start := time.Now()
	err = s.Run(ctx, frame)
	res.elapsed = time.Since(start)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return res, err
	}
	st := s.Stats()
	res.generation = st.Generation
	res.lastTick = st.LastTick
	return res, nil
}
