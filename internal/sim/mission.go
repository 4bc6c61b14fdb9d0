package sim

import "fmt"

// Rover is the moving part of a mission: a position plus a facing.
type Rover struct {
	Position  Position
	Direction Direction
}

// String returns the "x:y:D" pose form used in run reports, e.g. "2:2:E".
func (r Rover) String() string {
	return fmt.Sprintf("%s:%s", r.Position, r.Direction)
}

// Mission pairs the immutable planet with the current rover snapshot.
// Every applied command yields a fresh Mission value; missions are never
// mutated in place.
type Mission struct {
	Planet Planet
	Rover  Rover
}

// ApplyCommands folds a command sequence over the mission, left to right,
// stopping at the first command that cannot be applied.
//
// hit reports whether an obstacle stopped the run. When hit is true the
// returned mission is the state after the last successfully applied command:
// the colliding command is discarded, not partially applied, and the rover
// still holds its pre-collision pose. When hit is false every command was
// applied and the returned mission is the final state.
func ApplyCommands(m Mission, cmds []Command) (Mission, bool) {
	for _, cmd := range cmds {
		next, ok := ApplyCommand(m, cmd)
		if !ok {
			return m, true
		}
		m = next
	}
	return m, false
}

// ApplyCommand applies a single command.
//
// ok is false exactly when a move would land on an obstacle; the mission is
// then returned unchanged. Turns and the unknown command never fail.
func ApplyCommand(m Mission, cmd Command) (Mission, bool) {
	switch cmd {
	case CommandMoveForward:
		return move(m, m.Rover.Direction)
	case CommandMoveBackward:
		return move(m, m.Rover.Direction.Opposite())
	case CommandTurnRight:
		m.Rover.Direction = m.Rover.Direction.TurnRight()
		return m, true
	case CommandTurnLeft:
		m.Rover.Direction = m.Rover.Direction.TurnLeft()
		return m, true
	default:
		// CommandUnknown and any future variant: pure no-op pass-through.
		return m, true
	}
}

// move displaces the rover one cell along heading, wrapping at the planet
// edges. The candidate cell is rejected iff it holds an obstacle.
func move(m Mission, heading Direction) (Mission, bool) {
	dx, dy := heading.Delta()
	next := m.Rover.Position.Translate(dx, dy, m.Planet.Size())
	if m.Planet.HasObstacleAt(next) {
		return m, false
	}
	m.Rover.Position = next
	return m, true
}
