package trace

import "context"

// Record is one event or effect occurrence: a variant name plus flat string
// fields in the textual mission grammar.
type Record struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Step is one completed loop iteration.
type Step struct {
	RunToken string `json:"run_token"`
	Seq      int64  `json:"seq"`
	Event    Record `json:"event"`
	State    string `json:"state"`
	Effect   Record `json:"effect"`
}

// Run identifies one journaled run.
type Run struct {
	Token     string `json:"token"`
	PlanetRef string `json:"planet_ref"`
	RoverRef  string `json:"rover_ref"`
	Outcome   string `json:"outcome,omitempty"`
}

// Run outcome values.
const (
	OutcomeCompleted   = "completed"
	OutcomeObstacleHit = "obstacle_hit"
	OutcomeError       = "error"
)

// Recorder journals run metadata and steps.
//
// Recording is telemetry: implementations must not influence the run, and
// callers treat recording failures as log-worthy but non-fatal.
type Recorder interface {
	BeginRun(ctx context.Context, run Run) error
	RecordStep(ctx context.Context, step Step) error
	FinishRun(ctx context.Context, token, outcome string) error
}

// Discard is a Recorder that drops everything. Used when no journal is
// configured.
type Discard struct{}

func (Discard) BeginRun(context.Context, Run) error            { return nil }
func (Discard) RecordStep(context.Context, Step) error         { return nil }
func (Discard) FinishRun(context.Context, string, string) error { return nil }
