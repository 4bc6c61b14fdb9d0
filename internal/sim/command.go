package sim

import "fmt"

// Command is one instruction for the rover.
type Command int

const (
	// CommandUnknown is the inert variant produced for unrecognized input.
	// Applying it always succeeds and changes nothing.
	CommandUnknown Command = iota
	// CommandMoveForward moves one cell in the facing direction.
	CommandMoveForward
	// CommandMoveBackward moves one cell opposite the facing direction
	// without changing the facing.
	CommandMoveBackward
	// CommandTurnRight rotates the rover 90° clockwise in place.
	CommandTurnRight
	// CommandTurnLeft rotates the rover 90° counter-clockwise in place.
	CommandTurnLeft
)

// String returns the command letter used in mission input, or "?" for
// the unknown variant.
func (c Command) String() string {
	switch c {
	case CommandMoveForward:
		return "F"
	case CommandMoveBackward:
		return "B"
	case CommandTurnRight:
		return "R"
	case CommandTurnLeft:
		return "L"
	case CommandUnknown:
		return "?"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}
