package model

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned by direct-index operations given a coordinate outside the grid
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidDimension is returned when a width or height is not positive
	ErrInvalidDimension = errors.New("invalid dimension")
)

func outOfRange(fn string, row, column, width, height int) error {
	return errors.Wrapf(ErrOutOfRange, "[%s] (%d, %d) outside %dx%d grid", fn, row, column, width, height)
}

func invalidDimension(fn, name string, value int) error {
	return errors.Wrapf(ErrInvalidDimension, "[%s] %s must be positive, got %d", fn, name, value)
}

// checkDimensions rejects non-positive sizes and grids above MaxCells
func checkDimensions(fn string, width, height int) error {
	if width <= 0 {
		return invalidDimension(fn, "width", width)
	}
	if height <= 0 {
		return invalidDimension(fn, "height", height)
	}
	if width > MaxCells/height {
		return errors.Wrapf(ErrInvalidDimension, "[%s] %dx%d exceeds %d cells", fn, width, height, MaxCells)
	}
	return nil
}
