package sim

import "fmt"

// Direction is a cardinal heading on the planet grid.
//
// The constants are declared in clockwise order so that 90° turns are
// modular arithmetic on the underlying value.
type Direction int

const (
	// North faces positive Y.
	North Direction = iota
	// East faces positive X.
	East
	// South faces negative Y.
	South
	// West faces negative X.
	West
)

const directionCount = 4

// TurnRight returns the heading after a 90° clockwise turn:
// North → East → South → West → North.
func (d Direction) TurnRight() Direction {
	return (d + 1) % directionCount
}

// TurnLeft returns the heading after a 90° counter-clockwise turn.
// It is the exact inverse of TurnRight.
func (d Direction) TurnLeft() Direction {
	return (d + directionCount - 1) % directionCount
}

// Opposite returns the heading after a 180° turn.
// Used for backward moves, which displace the rover behind itself
// without changing its facing.
func (d Direction) Opposite() Direction {
	return (d + 2) % directionCount
}

// Delta returns the unit displacement for one forward step in this heading.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		// Direction is a closed set; an out-of-range value is a programming
		// error, not a recoverable condition.
		panic(fmt.Sprintf("sim: invalid direction %d", int(d)))
	}
}

// String returns the single-letter heading used in reports, e.g. "N".
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
