package core

import (
	"slices"
	"testing"
)

type mapStore map[[2]int]bool

func (m mapStore) Get(x, y int) bool        { return m[[2]int{x, y}] }
func (m mapStore) Set(x, y int, alive bool) { m[[2]int{x, y}] = alive }
func (m mapStore) Clear()                   { clear(m) }

func TestSizeContains(t *testing.T) {
	s := Size{W: 3, H: 2}
	if !s.Contains(0, 0) || !s.Contains(2, 1) {
		t.Fatal("corners should be inside")
	}
	if s.Contains(3, 0) || s.Contains(0, 2) || s.Contains(-1, 0) {
		t.Fatal("points past the edges should be outside")
	}
	if s.Area() != 6 {
		t.Fatalf("area = %d", s.Area())
	}
}

func TestCellsRowMajor(t *testing.T) {
	m := mapStore{}
	m.Set(1, 0, true)
	m.Set(0, 1, true)
	got := slices.Collect(Cells(m, Size{W: 2, H: 2}))
	if !slices.Equal(got, []bool{false, true, true, false}) {
		t.Fatalf("cells = %v", got)
	}
	if Population(m, Size{W: 2, H: 2}) != 2 {
		t.Fatal("population mismatch")
	}
	if Population(m, Size{W: 1, H: 1}) != 0 {
		t.Fatal("population should only count cells within size")
	}
}

func TestCellsStopsEarly(t *testing.T) {
	n := 0
	for range Cells(mapStore{}, Size{W: 10, H: 10}) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("visited %d cells", n)
	}
}

func TestRegistry(t *testing.T) {
	Register("test-map", func(Size) Store { return mapStore{} })
	Register("", func(Size) Store { return mapStore{} })
	Register("nil", nil)
	defer delete(stores, "test-map")

	if !slices.Contains(StoreNames(), "test-map") {
		t.Fatalf("names = %v", StoreNames())
	}
	if slices.Contains(StoreNames(), "") || slices.Contains(StoreNames(), "nil") {
		t.Fatal("invalid registrations accepted")
	}
	if _, err := NewStore("test-map", Size{W: 1, H: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore("missing", Size{W: 1, H: 1}); err == nil {
		t.Fatal("unknown store accepted")
	}
}

func TestRNGFillDeterministic(t *testing.T) {
	size := Size{W: 8, H: 8}
	a, b := mapStore{}, mapStore{}
	NewRNG(7).Fill(a, size, 0.5)
	NewRNG(7).Fill(b, size, 0.5)
	if !slices.Equal(slices.Collect(Cells(a, size)), slices.Collect(Cells(b, size))) {
		t.Fatal("same seed produced different fills")
	}
	full := mapStore{}
	NewRNG(1).Fill(full, size, 1)
	if Population(full, size) != size.Area() {
		t.Fatal("density 1 should fill every cell")
	}
}
