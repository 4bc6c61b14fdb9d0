package core

import (
	"fmt"

	"github.com/marsbound/rover/internal/sim"
)

// StateKind distinguishes the application lifecycle phases.
type StateKind int

const (
	// StateLoading is the initial phase, before the mission is available.
	StateLoading StateKind = iota
	// StateReady holds a loaded mission and accepts command batches.
	StateReady
	// StateFailed is terminal; it is entered on load errors and on any
	// unhandled transition.
	StateFailed
)

// String returns the phase name used in fallback error messages and traces.
func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("StateKind(%d)", int(k))
	}
}

// AppState is the top-level application state.
//
// Mission is meaningful only when Kind is StateReady. AppState values are
// immutable snapshots; Update returns a fresh one on every transition.
type AppState struct {
	Kind    StateKind
	Mission sim.Mission
}

// Loading returns the initial state.
func Loading() AppState {
	return AppState{Kind: StateLoading}
}

// Ready returns the state holding a loaded mission.
func Ready(m sim.Mission) AppState {
	return AppState{Kind: StateReady, Mission: m}
}

// Failed returns the terminal failure state.
func Failed() AppState {
	return AppState{Kind: StateFailed}
}

// String returns the phase name; the mission payload is deliberately not
// rendered so the representation stays stable for error messages.
func (s AppState) String() string {
	return s.Kind.String()
}
