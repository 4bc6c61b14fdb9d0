package core

import (
	"fmt"

	"github.com/marsbound/rover/internal/sim"
)

// EventKind distinguishes the closed set of events the core can receive.
type EventKind int

const (
	// EventLoadMissionSuccessful carries a freshly loaded mission.
	EventLoadMissionSuccessful EventKind = iota
	// EventLoadMissionFailed carries the typed error of a failed load.
	EventLoadMissionFailed
	// EventCommandsReceived carries one parsed command batch.
	EventCommandsReceived
)

// String returns the event name used in fallback error messages and traces.
func (k EventKind) String() string {
	switch k {
	case EventLoadMissionSuccessful:
		return "LoadMissionSuccessful"
	case EventLoadMissionFailed:
		return "LoadMissionFailed"
	case EventCommandsReceived:
		return "CommandsReceived"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one input to the decision function. Exactly the payload field
// matching Kind is set.
type Event struct {
	Kind     EventKind
	Mission  sim.Mission   // EventLoadMissionSuccessful
	Err      *Error        // EventLoadMissionFailed
	Commands []sim.Command // EventCommandsReceived
}

// LoadMissionSuccessful builds the event for a completed mission load.
func LoadMissionSuccessful(m sim.Mission) Event {
	return Event{Kind: EventLoadMissionSuccessful, Mission: m}
}

// LoadMissionFailed builds the event for a failed mission load.
func LoadMissionFailed(err *Error) Event {
	return Event{Kind: EventLoadMissionFailed, Err: err}
}

// CommandsReceived builds the event for a parsed command batch.
func CommandsReceived(cmds []sim.Command) Event {
	return Event{Kind: EventCommandsReceived, Commands: cmds}
}

// String returns the event name.
func (e Event) String() string {
	return e.Kind.String()
}
