package testutil

import (
	"context"
	"sync"

	"github.com/marsbound/rover/internal/trace"
)

// MemoryRecorder is an in-memory trace.Recorder for tests.
type MemoryRecorder struct {
	mu       sync.Mutex
	Runs     []trace.Run
	Steps    []trace.Step
	Outcomes map[string]string
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{Outcomes: make(map[string]string)}
}

func (r *MemoryRecorder) BeginRun(_ context.Context, run trace.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Runs = append(r.Runs, run)
	return nil
}

func (r *MemoryRecorder) RecordStep(_ context.Context, step trace.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Steps = append(r.Steps, step)
	return nil
}

func (r *MemoryRecorder) FinishRun(_ context.Context, token, outcome string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outcomes[token] = outcome
	return nil
}
