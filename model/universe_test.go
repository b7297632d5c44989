package model

import (
	"math"
	"sort"
	"testing"

	"github.com/pkg/errors"
)

func newEmpty(t *testing.T, width, height int) *Universe {
	t.Helper()
	u, err := NewEmptyUniverse(width, height)
	if err != nil {
		t.Fatalf("NewEmptyUniverse(%d, %d): %v", width, height, err)
	}
	return u
}

func liveCoords(u *Universe) []Coord {
	var coords []Coord
	for row := range u.Height() {
		for column := range u.Width() {
			if c, _ := u.Cell(row, column); c == Alive {
				coords = append(coords, Coord{row, column})
			}
		}
	}
	return coords
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Column < coords[j].Column
	})
}

func sameCoords(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	sortCoords(a)
	sortCoords(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewUniverse(t *testing.T) {
	u, err := NewUniverse(DefaultWidth, DefaultHeight, NewRand(7))
	if err != nil {
		t.Fatal(err)
	}
	if u.Width() != DefaultWidth || u.Height() != DefaultHeight {
		t.Fatalf("got %dx%d, want %dx%d", u.Width(), u.Height(), DefaultWidth, DefaultHeight)
	}
	if len(u.Cells()) != DefaultWidth*DefaultHeight {
		t.Fatalf("len(cells) = %d", len(u.Cells()))
	}
	for i, c := range u.Cells() {
		if c != Dead && c != Alive {
			t.Fatalf("cell %d has invalid state %d", i, c)
		}
	}
	ratio := float64(u.CountLiving()) / float64(len(u.Cells()))
	if ratio < 0.45 || ratio > 0.55 {
		t.Fatalf("live ratio %.3f is far from 0.5", ratio)
	}
}

func TestNewDefaultUniverse(t *testing.T) {
	u := NewDefaultUniverse()
	if u.Width() != 128 || u.Height() != 128 || len(u.Cells()) != 128*128 {
		t.Fatalf("unexpected default universe %dx%d with %d cells", u.Width(), u.Height(), len(u.Cells()))
	}
}

func TestInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative width", -1, 4},
		{"both zero", 0, 0},
		{"product overflows int", math.MaxInt/2 + 1, 4},
		{"above cell cap", MaxCells, 2},
		{"huge width", math.MaxInt, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEmptyUniverse(tt.width, tt.height); !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("NewEmptyUniverse err = %v, want ErrInvalidDimension", err)
			}
			if _, err := NewUniverse(tt.width, tt.height, NewRand(1)); !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("NewUniverse err = %v, want ErrInvalidDimension", err)
			}
		})
	}

	u := newEmpty(t, 4, 3)
	_ = u.ToggleCell(1, 1)
	before := u.Hash()
	if err := u.SetWidth(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetWidth(0) err = %v", err)
	}
	if err := u.SetHeight(-2); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetHeight(-2) err = %v", err)
	}
	if err := u.SetWidth(MaxCells); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetWidth(MaxCells) err = %v", err)
	}
	if err := u.SetHeight(math.MaxInt); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("SetHeight(MaxInt) err = %v", err)
	}
	if u.Hash() != before || u.Width() != 4 || u.Height() != 3 || len(u.Cells()) != 12 {
		t.Fatal("failed resize mutated the universe")
	}
}

func TestLiveNeighborCountWrapsCorners(t *testing.T) {
	u := newEmpty(t, 8, 8)
	neighbors := []Coord{{7, 7}, {7, 0}, {7, 1}, {0, 7}, {0, 1}, {1, 7}, {1, 0}, {1, 1}}

	for i, c := range neighbors {
		if err := u.SetCells([]Coord{c}); err != nil {
			t.Fatal(err)
		}
		if got := u.LiveNeighborCount(0, 0); got != uint8(i+1) {
			t.Fatalf("after setting %v count = %d, want %d", c, got, i+1)
		}
	}

	u.Clear()
	_ = u.SetCells([]Coord{{0, 0}})
	for _, corner := range []Coord{{0, 7}, {7, 0}, {7, 7}} {
		if got := u.LiveNeighborCount(corner.Row, corner.Column); got != 1 {
			t.Fatalf("corner %v count = %d, want 1", corner, got)
		}
	}
}

func TestLiveNeighborCountTransposeSymmetry(t *testing.T) {
	u, err := NewUniverse(7, 5, NewRand(99))
	if err != nil {
		t.Fatal(err)
	}
	tr := u.Transpose()
	if tr.Width() != 5 || tr.Height() != 7 {
		t.Fatalf("transpose is %dx%d", tr.Width(), tr.Height())
	}
	for row := range u.Height() {
		for column := range u.Width() {
			if a, b := u.LiveNeighborCount(row, column), tr.LiveNeighborCount(column, row); a != b {
				t.Fatalf("count(%d,%d) = %d but transposed count = %d", row, column, a, b)
			}
		}
	}
}

func TestTickRules(t *testing.T) {
	tests := []struct {
		name      string
		alive     []Coord
		target    Coord
		neighbors uint8
		want      Cell
	}{
		{"lonely cell dies", []Coord{{3, 3}}, Coord{3, 3}, 0, Dead},
		{"two neighbors survives", []Coord{{3, 2}, {3, 3}, {3, 4}}, Coord{3, 3}, 2, Alive},
		{"three neighbors survives", []Coord{{3, 3}, {3, 4}, {4, 3}, {4, 4}}, Coord{3, 3}, 3, Alive},
		{"four neighbors dies", []Coord{{3, 3}, {2, 2}, {2, 4}, {4, 2}, {4, 4}}, Coord{3, 3}, 4, Dead},
		{"dead with three is born", []Coord{{2, 2}, {2, 3}, {2, 4}}, Coord{3, 3}, 3, Alive},
		{"dead with two stays dead", []Coord{{2, 2}, {2, 4}}, Coord{3, 3}, 2, Dead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newEmpty(t, 8, 8)
			if err := u.SetCells(tt.alive); err != nil {
				t.Fatal(err)
			}
			if got := u.LiveNeighborCount(tt.target.Row, tt.target.Column); got != tt.neighbors {
				t.Fatalf("neighbors = %d, want %d", got, tt.neighbors)
			}
			u.Tick()
			if got, _ := u.Cell(tt.target.Row, tt.target.Column); got != tt.want {
				t.Fatalf("next state = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGliderTranslates(t *testing.T) {
	u := newEmpty(t, 8, 8)
	glider := []Coord{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	if err := u.SetCells(glider); err != nil {
		t.Fatal(err)
	}

	for range 4 {
		u.Tick()
	}

	want := make([]Coord, len(glider))
	for i, c := range glider {
		want[i] = Coord{c.Row + 1, c.Column + 1}
	}
	if got := liveCoords(u); !sameCoords(got, want) {
		t.Fatalf("after 4 ticks got %v, want %v", got, want)
	}
	if u.Generation() != 4 {
		t.Fatalf("generation = %d, want 4", u.Generation())
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	u := newEmpty(t, 8, 8)
	glider, _ := LookupPattern("glider")
	if err := u.Place(glider, Coord{0, 0}); err != nil {
		t.Fatal(err)
	}
	start := liveCoords(u)

	// 8 translations of (1,1) bring it back home on an 8x8 torus
	for range 32 {
		u.Tick()
	}
	if got := liveCoords(u); !sameCoords(got, start) {
		t.Fatalf("after 32 ticks got %v, want %v", got, start)
	}
}

func TestDeterminism(t *testing.T) {
	a, _ := NewUniverse(16, 12, NewRand(42))
	b, _ := NewUniverse(16, 12, NewRand(42))
	for gen := range 25 {
		if a.Hash() != b.Hash() {
			t.Fatalf("universes diverged at generation %d", gen)
		}
		a.Tick()
		b.Tick()
	}
}

func TestBlinkerOscillates(t *testing.T) {
	u := newEmpty(t, 5, 5)
	vertical := []Coord{{1, 2}, {2, 2}, {3, 2}}
	horizontal := []Coord{{2, 1}, {2, 2}, {2, 3}}
	_ = u.SetCells(vertical)

	u.Tick()
	if got := liveCoords(u); !sameCoords(got, horizontal) {
		t.Fatalf("first tick got %v, want %v", got, horizontal)
	}
	u.Tick()
	if got := liveCoords(u); !sameCoords(got, vertical) {
		t.Fatalf("second tick got %v, want %v", got, vertical)
	}
}

func TestToggleCell(t *testing.T) {
	u := newEmpty(t, 4, 3)
	if err := u.ToggleCell(2, 3); err != nil {
		t.Fatal(err)
	}
	if c, _ := u.Cell(2, 3); c != Alive {
		t.Fatal("toggle did not revive cell")
	}
	if u.Cells()[2*4+3] != Alive {
		t.Fatal("row-major index mismatch")
	}
	if err := u.ToggleCell(2, 3); err != nil {
		t.Fatal(err)
	}
	if u.CountLiving() != 0 {
		t.Fatal("second toggle did not kill cell")
	}

	for _, c := range []Coord{{3, 0}, {0, 4}, {-1, 0}, {0, -1}} {
		if err := u.ToggleCell(c.Row, c.Column); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("ToggleCell(%v) err = %v, want ErrOutOfRange", c, err)
		}
	}
	if _, err := u.Cell(3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Cell(3, 0) err = %v", err)
	}
}

func TestSetCellsIsAllOrNothing(t *testing.T) {
	u := newEmpty(t, 4, 4)
	err := u.SetCells([]Coord{{0, 0}, {1, 1}, {4, 0}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if u.CountLiving() != 0 {
		t.Fatal("partial write on failed SetCells")
	}

	if err = u.SetCells([]Coord{{0, 0}, {0, 0}, {3, 3}}); err != nil {
		t.Fatal(err)
	}
	if u.CountLiving() != 2 {
		t.Fatalf("living = %d, want 2", u.CountLiving())
	}
}

func TestResizeClearsState(t *testing.T) {
	u, _ := NewUniverse(6, 6, NewRand(3))
	_ = u.SetCells([]Coord{{0, 0}})
	u.Tick()

	if err := u.SetWidth(10); err != nil {
		t.Fatal(err)
	}
	if u.Width() != 10 || u.Height() != 6 || len(u.Cells()) != 60 {
		t.Fatalf("after SetWidth got %dx%d with %d cells", u.Width(), u.Height(), len(u.Cells()))
	}
	if u.CountLiving() != 0 || u.Generation() != 0 {
		t.Fatal("SetWidth kept state")
	}

	_ = u.SetCells([]Coord{{5, 9}})
	if err := u.SetHeight(3); err != nil {
		t.Fatal(err)
	}
	if u.Width() != 10 || u.Height() != 3 || len(u.Cells()) != 30 {
		t.Fatalf("after SetHeight got %dx%d with %d cells", u.Width(), u.Height(), len(u.Cells()))
	}
	if u.CountLiving() != 0 {
		t.Fatal("SetHeight kept state")
	}
}

func TestConservationOfSize(t *testing.T) {
	u, _ := NewUniverse(9, 4, NewRand(5))
	check := func(op string) {
		t.Helper()
		if len(u.Cells()) != u.Width()*u.Height() {
			t.Fatalf("after %s len(cells) = %d, want %d", op, len(u.Cells()), u.Width()*u.Height())
		}
	}
	u.Tick()
	check("Tick")
	_ = u.ToggleCell(0, 0)
	check("ToggleCell")
	_ = u.SetCells([]Coord{{3, 8}})
	check("SetCells")
	u.Clear()
	check("Clear")
	_ = u.SetWidth(2)
	check("SetWidth")
	_ = u.SetHeight(11)
	check("SetHeight")
	u.Tick()
	check("Tick after resize")
}

func TestClear(t *testing.T) {
	u, _ := NewUniverse(5, 5, NewRand(11))
	u.Tick()
	u.Clear()
	if u.CountLiving() != 0 || u.Generation() != 0 {
		t.Fatalf("living = %d generation = %d after Clear", u.CountLiving(), u.Generation())
	}
	u.Tick()
	if u.CountLiving() != 0 {
		t.Fatal("empty universe came to life")
	}
}

func TestSingleCellUniverse(t *testing.T) {
	u := newEmpty(t, 1, 1)
	_ = u.ToggleCell(0, 0)
	// the lone cell is its own neighbor in all eight directions
	if got := u.LiveNeighborCount(0, 0); got != 8 {
		t.Fatalf("count = %d, want 8", got)
	}
	u.Tick()
	if u.CountLiving() != 0 {
		t.Fatal("overcrowded cell survived")
	}
}
