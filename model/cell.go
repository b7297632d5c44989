package model

// Cell is the state of a single grid position. It is stored as a byte so the
// raw buffer can be summed directly as a neighbor count and handed to a
// renderer without conversion.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Toggle flips the cell between Dead and Alive
func (c *Cell) Toggle() {
	if *c == Alive {
		*c = Dead
		return
	}
	*c = Alive
}

// IsAlive reports whether the cell is Alive
func (c Cell) IsAlive() bool {
	return c == Alive
}

// Coord addresses a cell by row and column
type Coord struct {
	Row    int
	Column int
}
