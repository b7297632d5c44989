package model

import "strings"

const (
	GlyphDead  = '◻'
	GlyphAlive = '◼'
)

// Glyph returns the printable symbol for a cell
func (c Cell) Glyph() rune {
	if c == Alive {
		return GlyphAlive
	}
	return GlyphDead
}

// Render draws the universe one glyph per cell with every row terminated by a newline
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(u.height * (u.width*3 + 1))
	for row := range u.height {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			b.WriteRune(c.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String implements fmt.Stringer
func (u *Universe) String() string {
	return u.Render()
}
