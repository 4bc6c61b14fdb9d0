// Package parse decodes the textual mission descriptions into domain values.
//
// The grammar is the external contract of the two-line mission sources:
//
//	planet source:  "<width>x<height>"            e.g. "5x4"
//	                "<x>,<y> <x>,<y> ..."         obstacle list, may be empty
//	rover source:   "<x>,<y>"                     start position
//	                "N" | "E" | "S" | "W"         start direction
//	commands line:  "FFRFFB..."                   one letter per command
//
// Every failure is reported as a typed core.Error carrying the raw value and
// a stable reason tag; raw faults never escape this package. Command parsing
// is total: unrecognized letters become the inert unknown command.
package parse

import (
	"strconv"
	"strings"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/sim"
)

// Reason tags attached to parse errors.
const (
	ReasonInvalidSize      = "InvalidSize"
	ReasonInvalidPosition  = "InvalidPosition"
	ReasonInvalidDirection = "InvalidDirection"
)

// Planet decodes the two lines of a planet source: the grid size and the
// obstacle list.
func Planet(sizeLine, obstaclesLine string) (sim.Planet, *core.Error) {
	size, perr := Size(sizeLine)
	if perr != nil {
		return sim.Planet{}, perr
	}

	obstacles, perr := Obstacles(obstaclesLine)
	if perr != nil {
		return sim.Planet{}, perr
	}

	return sim.NewPlanet(size, obstacles), nil
}

// Size decodes a "<width>x<height>" pair. Both dimensions must be positive.
func Size(raw string) (sim.Size, *core.Error) {
	trimmed := strings.TrimSpace(raw)

	w, h, ok := splitPair(trimmed, "x")
	if !ok {
		return sim.Size{}, core.NewInvalidPlanetError(trimmed, ReasonInvalidSize)
	}

	size := sim.Size{Width: w, Height: h}
	if !size.Valid() {
		return sim.Size{}, core.NewInvalidPlanetError(trimmed, ReasonInvalidSize)
	}
	return size, nil
}

// Obstacles decodes a whitespace-separated list of "<x>,<y>" pairs.
// An empty or blank line is a valid empty list.
func Obstacles(raw string) ([]sim.Obstacle, *core.Error) {
	fields := strings.Fields(raw)
	obstacles := make([]sim.Obstacle, 0, len(fields))

	for _, field := range fields {
		x, y, ok := splitPair(field, ",")
		if !ok {
			return nil, core.NewInvalidObstacleError(field, ReasonInvalidPosition)
		}
		obstacles = append(obstacles, sim.Obstacle{
			Position: sim.Position{X: x, Y: y},
		})
	}
	return obstacles, nil
}

// Rover decodes the two lines of a rover source: the start position and the
// start direction.
func Rover(positionLine, directionLine string) (sim.Rover, *core.Error) {
	posRaw := strings.TrimSpace(positionLine)
	x, y, ok := splitPair(posRaw, ",")
	if !ok {
		return sim.Rover{}, core.NewInvalidRoverError(posRaw, ReasonInvalidPosition)
	}

	dir, perr := Direction(directionLine)
	if perr != nil {
		return sim.Rover{}, perr
	}

	return sim.Rover{
		Position:  sim.Position{X: x, Y: y},
		Direction: dir,
	}, nil
}

// Direction decodes a single direction letter, case-insensitively.
func Direction(raw string) (sim.Direction, *core.Error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "N":
		return sim.North, nil
	case "E":
		return sim.East, nil
	case "S":
		return sim.South, nil
	case "W":
		return sim.West, nil
	default:
		return 0, core.NewInvalidRoverError(strings.TrimSpace(raw), ReasonInvalidDirection)
	}
}

// Commands decodes a line of command letters, case-insensitively.
// Parsing never fails: any unrecognized letter maps to the inert unknown
// command, which the engine applies as a no-op.
func Commands(line string) []sim.Command {
	trimmed := strings.TrimSpace(line)
	cmds := make([]sim.Command, 0, len(trimmed))

	for _, r := range trimmed {
		switch r {
		case 'F', 'f':
			cmds = append(cmds, sim.CommandMoveForward)
		case 'B', 'b':
			cmds = append(cmds, sim.CommandMoveBackward)
		case 'R', 'r':
			cmds = append(cmds, sim.CommandTurnRight)
		case 'L', 'l':
			cmds = append(cmds, sim.CommandTurnLeft)
		default:
			cmds = append(cmds, sim.CommandUnknown)
		}
	}
	return cmds
}

// splitPair splits "a<sep>b" into two integers.
func splitPair(raw, sep string) (int, int, bool) {
	first, second, found := strings.Cut(raw, sep)
	if !found {
		return 0, 0, false
	}

	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
