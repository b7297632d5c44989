package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a named set of live cells relative to a top-left anchor
type Pattern struct {
	Name  string
	Descr string
	Cells []Coord
}

var patterns = map[string]Pattern{
	"glider": {
		Name:  "glider",
		Descr: "the smallest spaceship, travels one cell diagonally every 4 generations",
		Cells: []Coord{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
	"blinker": {
		Name:  "blinker",
		Descr: "period 2 oscillator",
		Cells: []Coord{{0, 0}, {0, 1}, {0, 2}},
	},
	"block": {
		Name:  "block",
		Descr: "2x2 still life",
		Cells: []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	"toad": {
		Name:  "toad",
		Descr: "period 2 oscillator",
		Cells: []Coord{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// LookupPattern returns the registered pattern with the given name
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists the registered patterns in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the pattern cells shifted to the given anchor, wrapped onto the grid
func (p Pattern) At(anchor Coord, width, height int) []Coord {
	coords := make([]Coord, len(p.Cells))
	for i, c := range p.Cells {
		coords[i] = Coord{
			Row:    wrap(anchor.Row+c.Row, height),
			Column: wrap(anchor.Column+c.Column, width),
		}
	}
	return coords
}

// Place seeds the pattern into the universe at the given anchor
func (u *Universe) Place(p Pattern, anchor Coord) error {
	if !u.inBounds(anchor.Row, anchor.Column) {
		return outOfRange("Place", anchor.Row, anchor.Column, u.width, u.height)
	}
	if err := u.SetCells(p.At(anchor, u.width, u.height)); err != nil {
		return errors.Wrapf(err, "[Place] failed to place pattern: %s", p.Name)
	}
	return nil
}

func wrap(x, limit int) int {
	return (x%limit + limit) % limit
}
