// Package trace defines the run trace model shared by the journal store,
// the replay verifier and the golden-file harness.
//
// A trace is the ordered list of steps one reactive run produced: for every
// loop iteration the event that was consumed, the state it led to and the
// effect that was emitted, stamped with the run token and the logical step
// seq. Step payloads are flat string fields in the textual mission grammar,
// so a recorded event can be parsed back into a live core event and re-fed
// through the decision function.
//
// Serialization is canonical: object keys sorted, strings NFC normalized,
// no HTML escaping. Two equal traces always produce byte-identical JSON,
// which is what golden files and determinism checks compare.
package trace
