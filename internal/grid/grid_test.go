package grid

import (
	"testing"

	"lifesim/internal/core"
)

func TestCreateEmpty(t *testing.T) {
	g := New(8, 8)
	if g.Get(0, 0) || g.Get(7, 6) {
		t.Fatal("new grid must be dead")
	}
}

func TestSetAndGet(t *testing.T) {
	g := New(8, 8)
	g.Set(0, 0, true)
	g.Set(6, 7, true)

	if !g.Get(0, 0) || !g.Get(6, 7) {
		t.Fatal("written cells must read alive")
	}
	if g.Get(7, 6) {
		t.Fatal("transposed cell must stay dead")
	}
}

func TestOutOfBoundsReadsAreDead(t *testing.T) {
	sizes := []core.Size{{W: 1, H: 1}, {W: 3, H: 2}, {W: 8, H: 8}, {W: 17, H: 5}}
	for _, s := range sizes {
		g := New(s.W, s.H)
		for y := 0; y < s.H; y++ {
			for x := 0; x < s.W; x++ {
				g.Set(x, y, true)
			}
		}
		for _, c := range [][2]int{
			{-1, 0}, {0, -1}, {s.W, 0}, {0, s.H}, {-1, -1}, {s.W, s.H}, {s.W + 10, 1}, {1, -10},
		} {
			if g.Get(c[0], c[1]) {
				t.Fatalf("%dx%d: Get(%d,%d) outside bounds returned alive", s.W, s.H, c[0], c[1])
			}
		}
	}
}

func TestRowEndDoesNotWrap(t *testing.T) {
	g := New(4, 4)
	g.Set(0, 1, true)
	if g.Get(4, 0) {
		t.Fatal("x past the row end must not read the next row")
	}
}

func TestAllIsRowMajorAndRestartable(t *testing.T) {
	g := New(8, 8)
	g.Set(1, 2, true)
	g.Set(3, 4, true)
	g.Set(5, 6, true)

	for pass := 0; pass < 2; pass++ {
		live := []int{}
		i := 0
		for alive := range g.All() {
			if alive {
				live = append(live, i)
			}
			i++
		}
		if i != 64 {
			t.Fatalf("pass %d: yielded %d cells, expected 64", pass, i)
		}
		want := []int{g.Index(1, 2), g.Index(3, 4), g.Index(5, 6)}
		if len(live) != len(want) {
			t.Fatalf("pass %d: live indices %v, expected %v", pass, live, want)
		}
		for j := range want {
			if live[j] != want[j] {
				t.Fatalf("pass %d: live indices %v, expected %v", pass, live, want)
			}
		}
	}
	if g.Population() != 3 {
		t.Fatalf("population = %d, expected 3", g.Population())
	}
}

func TestSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Set outside the grid did not panic")
		}
	}()
	New(2, 2).Set(2, 0, true)
}

func TestRegistered(t *testing.T) {
	s, err := core.NewStore("grid", core.Size{W: 3, H: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*Grid); !ok {
		t.Fatalf("registry returned %T", s)
	}
}
