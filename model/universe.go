package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/go-life/rules"
)

const (
	DefaultWidth  = 128
	DefaultHeight = 128

	// MaxCells caps width*height so the row-major index never overflows
	MaxCells = 1 << 28

	defaultDensity = 0.5
)

// Universe is a toroidal Game of Life grid stored as a flat row-major buffer
type Universe struct {
	width      int
	height     int
	cells      []Cell
	generation int
	pool       *BufferPool
}

// NewUniverse creates a universe where every cell is independently Alive with
// probability 0.5. A nil rng is replaced by a time-seeded source.
func NewUniverse(width, height int, rng *rand.Rand) (*Universe, error) {
	u, err := NewEmptyUniverse(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(0)
	}
	u.Randomize(rng, defaultDensity)
	return u, nil
}

// NewEmptyUniverse creates a universe with every cell Dead
func NewEmptyUniverse(width, height int) (*Universe, error) {
	if err := checkDimensions("NewEmptyUniverse", width, height); err != nil {
		return nil, err
	}
	pool := NewBufferPool()
	return &Universe{
		width:  width,
		height: height,
		cells:  pool.GetCleared(width * height),
		pool:   pool,
	}, nil
}

// NewDefaultUniverse creates a randomly seeded 128x128 universe
func NewDefaultUniverse() *Universe {
	u, _ := NewUniverse(DefaultWidth, DefaultHeight, nil)
	return u
}

// NewRand returns a PCG-backed source. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Width returns the number of columns
func (u *Universe) Width() int {
	return u.width
}

// Height returns the number of rows
func (u *Universe) Height() int {
	return u.height
}

// Generation returns the number of ticks since construction, the last clear or the last resize
func (u *Universe) Generation() int {
	return u.generation
}

// Cells exposes the live cell buffer without copying. The slice is only
// valid until the next Tick or resize.
func (u *Universe) Cells() []Cell {
	return u.cells
}

// Cell returns the state at (row, column)
func (u *Universe) Cell(row, column int) (Cell, error) {
	if !u.inBounds(row, column) {
		return Dead, outOfRange("Cell", row, column, u.width, u.height)
	}
	return u.cells[u.index(row, column)], nil
}

func (u *Universe) index(row, column int) int {
	return row*u.width + column
}

func (u *Universe) inBounds(row, column int) bool {
	return row >= 0 && row < u.height && column >= 0 && column < u.width
}

// prior steps one position back on a ring of the given size
func prior(x, limit int) int {
	if x == 0 {
		return limit - 1
	}
	return x - 1
}

// next steps one position forward on a ring of the given size
func next(x, limit int) int {
	if x == limit-1 {
		return 0
	}
	return x + 1
}

// LiveNeighborCount sums the eight Moore neighbors of (row, column), wrapping
// around the grid edges. The coordinate must be in range.
func (u *Universe) LiveNeighborCount(row, column int) uint8 {
	var (
		north = prior(row, u.height)
		south = next(row, u.height)
		west  = prior(column, u.width)
		east  = next(column, u.width)
	)

	return uint8(u.cells[u.index(north, west)] +
		u.cells[u.index(north, column)] +
		u.cells[u.index(north, east)] +
		u.cells[u.index(row, west)] +
		u.cells[u.index(row, east)] +
		u.cells[u.index(south, west)] +
		u.cells[u.index(south, column)] +
		u.cells[u.index(south, east)])
}

// Tick advances the universe by one generation. Every next state is computed
// from the previous generation into a separate buffer which then replaces
// the current one.
func (u *Universe) Tick() {
	nextGen := u.pool.Get(len(u.cells))

	for row := range u.height {
		for column := range u.width {
			idx := u.index(row, column)
			alive := u.cells[idx].IsAlive()
			if rules.ApplyConwayRules(u.LiveNeighborCount(row, column), alive) {
				nextGen[idx] = Alive
			} else {
				nextGen[idx] = Dead
			}
		}
	}

	u.pool.Put(u.cells)
	u.cells = nextGen
	u.generation++
}

// ToggleCell flips the cell at (row, column)
func (u *Universe) ToggleCell(row, column int) error {
	if !u.inBounds(row, column) {
		return outOfRange("ToggleCell", row, column, u.width, u.height)
	}
	u.cells[u.index(row, column)].Toggle()
	return nil
}

// SetCells marks every listed coordinate Alive. Nothing is written unless
// all coordinates are in range.
func (u *Universe) SetCells(coords []Coord) error {
	for _, c := range coords {
		if !u.inBounds(c.Row, c.Column) {
			return outOfRange("SetCells", c.Row, c.Column, u.width, u.height)
		}
	}
	for _, c := range coords {
		u.cells[u.index(c.Row, c.Column)] = Alive
	}
	return nil
}

// Clear kills every cell and resets the generation counter
func (u *Universe) Clear() {
	clear(u.cells)
	u.generation = 0
}

// SetWidth resizes the universe to the given width. All cells become Dead.
func (u *Universe) SetWidth(width int) error {
	return u.resize("SetWidth", width, u.height)
}

// SetHeight resizes the universe to the given height. All cells become Dead.
func (u *Universe) SetHeight(height int) error {
	return u.resize("SetHeight", u.width, height)
}

func (u *Universe) resize(fn string, width, height int) error {
	if err := checkDimensions(fn, width, height); err != nil {
		return err
	}
	u.pool.Put(u.cells)
	u.width = width
	u.height = height
	u.cells = u.pool.GetCleared(width * height)
	u.generation = 0
	return nil
}

// Randomize sets every cell Alive with the given probability
func (u *Universe) Randomize(rng *rand.Rand, density float64) {
	for i := range u.cells {
		if rng.Float64() < density {
			u.cells[i] = Alive
		} else {
			u.cells[i] = Dead
		}
	}
}

// CountLiving returns the total number of living cells
func (u *Universe) CountLiving() (count int) {
	for _, c := range u.cells {
		count += int(c)
	}
	return
}

// Hash returns an MD5 digest of the dimensions and cell buffer
func (u *Universe) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", u.width, u.height)
	buf := make([]byte, len(u.cells))
	for i, c := range u.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Transpose returns a copy with rows and columns swapped
func (u *Universe) Transpose() *Universe {
	t, _ := NewEmptyUniverse(u.height, u.width)
	for row := range u.height {
		for column := range u.width {
			t.cells[t.index(column, row)] = u.cells[u.index(row, column)]
		}
	}
	return t
}
