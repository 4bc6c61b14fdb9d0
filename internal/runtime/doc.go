// Package runtime implements the generic reactive driver loop.
//
// The loop is parameterized over an arbitrary (State, Event, Effect) triple
// and two functions: a pure transition function and an effect interpreter.
// Starting from an initial state/effect pair it interprets the current
// effect; if the interpreter resolves to an event, the transition function
// computes the next pair and the loop continues; if it resolves to no event,
// the run terminates.
//
// The loop is strictly sequential. Each iteration's state/effect pair is an
// immutable snapshot handed to the next iteration; there is no shared
// mutable state, no retry and no backoff. Termination is solely event
// driven. Every iteration is stamped with a monotonic seq from a logical
// clock so observers and journals see a deterministic ordering.
package runtime
