// Package harness provides conformance testing for rover missions.
//
// The harness loads YAML scenario files, drives the real decision function
// and reactive loop with scripted I/O, and checks outcomes, report lines,
// and golden trace snapshots.
//
// # Scenario format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario checks"
//	planet:
//	  size: "5x4"
//	  obstacles: "2,0 0,3"
//	rover:
//	  position: "0,0"
//	  direction: "N"
//	commands: "FFRFF"
//	expect:
//	  outcome: completed
//	  reports:
//	    - "2:2:E"
//	run_token: scenario-name
//
// Field values use the same textual grammar as the two-line sources, so a
// scenario exercises the full parse path, not just the engine.
//
// # Deterministic execution
//
// Every scenario runs with a fixed run token, a scripted console, and an
// in-memory step recorder. Identical scenarios produce byte-identical
// canonical traces, which is what golden comparison relies on:
//
//	go test ./internal/harness -update
//
// regenerates the golden files under testdata/golden/.
package harness
