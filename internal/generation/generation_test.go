package generation

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"lifesim/internal/core"
	"lifesim/internal/grid"
	_ "lifesim/internal/quadtree"
	"lifesim/internal/sims/life"
)

func tick(e *life.Engine) func(core.Reader, core.Writer, core.Size) {
	return func(cur core.Reader, next core.Writer, size core.Size) { e.Tick(cur, next, size) }
}

func liveCells(s *Store) [][2]int {
	var live [][2]int
	s.View(func(snap Snapshot) {
		i := 0
		for alive := range snap.All() {
			if alive {
				live = append(live, [2]int{i % snap.Size.W, i / snap.Size.W})
			}
			i++
		}
	})
	return live
}

func TestVerticalBlinker(t *testing.T) {
	for _, name := range []string{"grid", "quadtree"} {
		t.Run(name, func(t *testing.T) {
			s, err := NewNamed(name, core.Size{W: 3, H: 3})
			if err != nil {
				t.Fatal(err)
			}
			s.Edit(1, 0, true)
			s.Edit(1, 1, true)
			s.Edit(1, 2, true)

			e := life.New(life.Conway, 1)
			if gen := s.Step(tick(e)); gen != 1 {
				t.Fatalf("first step published generation %d", gen)
			}
			if got, want := liveCells(s), [][2]int{{0, 1}, {1, 1}, {2, 1}}; !slices.Equal(got, want) {
				t.Fatalf("after one step live cells = %v, expected %v", got, want)
			}

			s.Step(tick(e))
			if got, want := liveCells(s), [][2]int{{1, 0}, {1, 1}, {1, 2}}; !slices.Equal(got, want) {
				t.Fatalf("after two steps live cells = %v, expected %v", got, want)
			}
			if s.Generation() != 2 {
				t.Fatalf("generation = %d, expected 2", s.Generation())
			}
		})
	}
}

func TestNewRejectsBadBuffers(t *testing.T) {
	g := grid.New(2, 2)
	if _, err := New(g.Size(), g, g); !errors.Is(err, ErrAliased) {
		t.Fatalf("aliased buffers err = %v", err)
	}
	if _, err := New(g.Size(), g, nil); !errors.Is(err, ErrNilBuffer) {
		t.Fatalf("nil buffer err = %v", err)
	}
	if _, err := NewNamed("nope", g.Size()); err == nil {
		t.Fatal("unknown store name accepted")
	}
}

func TestEditValidatesBounds(t *testing.T) {
	s, err := NewNamed("grid", core.Size{W: 4, H: 4})
	if err != nil {
		t.Fatal(err)
	}
	if s.Edit(4, 0, true) || s.Edit(-1, 2, true) {
		t.Fatal("out-of-range edit accepted")
	}
	if !s.Edit(3, 3, true) {
		t.Fatal("in-range edit rejected")
	}
	if alive, ok := s.Toggle(3, 3); !ok || alive {
		t.Fatalf("toggle = %v,%v, expected dead,ok", alive, ok)
	}
	if _, ok := s.Toggle(9, 9); ok {
		t.Fatal("out-of-range toggle accepted")
	}
}

func TestRandomizeIsDeterministic(t *testing.T) {
	a, _ := NewNamed("grid", core.Size{W: 32, H: 32})
	b, _ := NewNamed("quadtree", core.Size{W: 32, H: 32})
	a.Randomize(5, 0.5)
	b.Randomize(5, 0.5)
	if !slices.Equal(liveCells(a), liveCells(b)) {
		t.Fatal("same seed produced different boards")
	}
	if a.Population() == 0 || a.Population() != b.Population() {
		t.Fatalf("populations %d and %d", a.Population(), b.Population())
	}
	a.Clear()
	if a.Population() != 0 {
		t.Fatal("Clear left live cells")
	}
}

// Readers racing the simulation loop must always see one whole generation:
// the board they observe equals the precomputed board for the generation
// number reported with it.
func TestReadersNeverSeeMixedGenerations(t *testing.T) {
	const gens = 60
	size := core.Size{W: 48, H: 48}
	e := life.New(life.Conway, 4)

	ref := make([][]bool, gens+1)
	a, b := grid.New(size.W, size.H), grid.New(size.W, size.H)
	core.NewRNG(3).Fill(a, size, 0.35)
	for g := 0; g <= gens; g++ {
		ref[g] = slices.Collect(a.All())
		e.Tick(a, b, size)
		a, b = b, a
	}

	s, err := NewNamed("grid", size)
	if err != nil {
		t.Fatal(err)
	}
	s.Randomize(3, 0.35)

	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				s.View(func(snap Snapshot) {
					got := slices.Collect(snap.All())
					if !slices.Equal(got, ref[snap.Generation]) {
						select {
						case errs <- "mixed generation observed":
						default:
						}
					}
				})
			}
		}()
	}

	for g := 0; g < gens; g++ {
		s.Step(tick(e))
		time.Sleep(100 * time.Microsecond)
	}
	close(done)
	wg.Wait()

	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
	if s.Generation() != gens {
		t.Fatalf("generation = %d, expected %d", s.Generation(), gens)
	}
}
