// Package shell is the effectful side of the simulator: it interprets the
// effects emitted by the pure core and resolves them to follow-up events.
//
// The interpreter owns all I/O collaborators - the two-line source loader,
// the console line reader and the report sinks. Expected failures (missing
// files, malformed text) are converted into typed events and absorbed by the
// state machine; only a failing console read aborts the loop, because the
// machine has no transition that could absorb it.
//
// The three report effects are terminal: interpreting them emits exactly one
// report line and yields no event, which ends the run.
package shell
