package core

import (
	"fmt"

	"github.com/marsbound/rover/internal/sim"
)

// Update is the decision function: it maps the current state and an incoming
// event to the next state and the single effect to perform.
//
// Transition table:
//
//	Loading  × LoadMissionSuccessful → Ready(mission),  AskCommands
//	Loading  × LoadMissionFailed     → Failed,          Ko(err)
//	Ready(m) × CommandsReceived      → Ready(m'),       ReportObstacleHit(m'.rover)            (engine stopped at an obstacle)
//	Ready(m) × CommandsReceived      → Ready(m'),       ReportCommandSequenceCompleted(m'.rover) (batch fully applied)
//	anything else                    → Failed,          Ko(Generic)
//
// The fallback row makes the function total: no (state, event) combination
// is undefined or silently dropped.
func Update(state AppState, event Event) (AppState, Effect) {
	switch {
	case state.Kind == StateLoading && event.Kind == EventLoadMissionSuccessful:
		return Ready(event.Mission), AskCommands()

	case state.Kind == StateLoading && event.Kind == EventLoadMissionFailed:
		return Failed(), Ko(event.Err)

	case state.Kind == StateReady && event.Kind == EventCommandsReceived:
		next, hit := sim.ApplyCommands(state.Mission, event.Commands)
		if hit {
			return Ready(next), ReportObstacleHit(next.Rover)
		}
		return Ready(next), ReportCommandSequenceCompleted(next.Rover)

	default:
		return Failed(), Ko(NewTransitionError(state, event))
	}
}

// NewTransitionError builds the typed error for an unhandled (state, event)
// combination. Both names are embedded in the message and kept as structured
// details so tests and tooling can recover them without parsing free text.
func NewTransitionError(state AppState, event Event) *Error {
	err := NewGenericError(fmt.Sprintf("Cannot handle %s event in %s state.", event, state))
	err.Details = map[string]string{
		"state": state.String(),
		"event": event.String(),
	}
	return err
}
