// Package sim implements the pure rover simulation engine.
//
// The engine computes the result of applying movement and turn commands to a
// rover on a toroidal planet. It performs no I/O and holds no mutable state:
// every operation takes a Mission value and returns a new Mission value.
//
// CRITICAL PATTERNS:
//
// Value Replacement:
// Mission, Rover and Position are plain value types. "Updating" a mission
// means returning a copy with one field replaced. The pre-collision mission
// therefore remains an untouched, independently valid value, which is what
// makes the stop-at-obstacle semantics of ApplyCommands correct.
//
// Toroidal Wrap:
// Coordinates are always reduced with ((v mod size) + size) mod size, which
// yields a value in [0, size) regardless of Go's truncated-division modulo
// sign convention. Positions outside the grid never escape this package.
//
// Collision Is Not An Error:
// A move onto an obstacle is a normal terminal simulation outcome. The engine
// reports it with a boolean, never with an error value.
package sim
