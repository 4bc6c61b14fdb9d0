// Package store provides the SQLite run journal.
//
// The journal is write-only telemetry during a run: the reactive loop never
// reads it back, so a live run stays single-run and stateless. The read side
// serves the replay and trace CLI commands, which inspect finished runs.
//
// SQLite is configured for a single writer (one connection, WAL mode, busy
// timeout) because the sequential loop is the only producer. Step payloads
// are stored as canonical JSON text, so byte comparison of two journaled
// traces is meaningful.
package store
