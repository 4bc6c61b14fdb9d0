package sim

import "fmt"

// Position is a grid coordinate pair.
//
// A Position is only meaningful relative to a planet's Size. Positions
// produced by this package are always in [0, width) × [0, height).
type Position struct {
	X int
	Y int
}

// String returns the "x:y" form used in reports and traces.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Size is the extent of a toroidal grid. Both dimensions are positive;
// 1×1 is the smallest valid (degenerate) grid.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are at least 1.
func (s Size) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

// String returns the "wxh" form, e.g. "5x4".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Wrap reduces a single coordinate onto [0, size).
//
// Go's % truncates toward zero, so -1 % 5 is -1. Adding size before the
// second reduction guarantees a non-negative result for any coordinate
// and any size >= 1.
func Wrap(coord, size int) int {
	return ((coord % size) + size) % size
}

// Translate returns the position displaced by (dx, dy) and wrapped onto
// the grid bounded by s.
func (p Position) Translate(dx, dy int, s Size) Position {
	return Position{
		X: Wrap(p.X+dx, s.Width),
		Y: Wrap(p.Y+dy, s.Height),
	}
}
