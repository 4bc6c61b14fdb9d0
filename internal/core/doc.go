// Package core implements the pure mission decision function.
//
// The core is a finite-state machine over AppState × Event. Update maps a
// state and an incoming event to the next state plus exactly one effect to
// perform. It never performs I/O and never mutates its inputs; all side
// effects live in the shell interpreter, all state computation lives here.
//
// The machine is total: every (state, event) pair outside the explicit
// transition rows degrades to the Failed state with a typed generic error
// carrying both the state and the event. Unhandled combinations fail loudly
// instead of being silently ignored.
package core
