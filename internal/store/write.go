package store

import (
	"context"
	"fmt"

	"github.com/marsbound/rover/internal/trace"
)

// Store implements trace.Recorder.
var _ trace.Recorder = (*Store)(nil)

// BeginRun inserts the run row. Idempotent via ON CONFLICT DO NOTHING so a
// retried token never fails the run.
func (s *Store) BeginRun(ctx context.Context, run trace.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (token, planet_ref, rover_ref, outcome)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, run.Token, run.PlanetRef, run.RoverRef, run.Outcome)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", run.Token, err)
	}
	return nil
}

// RecordStep inserts one journaled transition. Payload field maps are stored
// as canonical JSON. Idempotent per (run_token, seq).
func (s *Store) RecordStep(ctx context.Context, step trace.Step) error {
	eventFields, err := trace.MarshalFields(step.Event.Fields)
	if err != nil {
		return fmt.Errorf("record step %d: %w", step.Seq, err)
	}
	effectFields, err := trace.MarshalFields(step.Effect.Fields)
	if err != nil {
		return fmt.Errorf("record step %d: %w", step.Seq, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO steps
		(run_token, seq, event_kind, event_fields, state, effect_kind, effect_fields)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`,
		step.RunToken,
		step.Seq,
		step.Event.Kind,
		eventFields,
		step.State,
		step.Effect.Kind,
		effectFields,
	)
	if err != nil {
		return fmt.Errorf("record step %d of run %s: %w", step.Seq, step.RunToken, err)
	}
	return nil
}

// FinishRun stamps the run's outcome.
func (s *Store) FinishRun(ctx context.Context, token, outcome string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET outcome = ? WHERE token = ?`, outcome, token)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run %s: unknown run token", token)
	}
	return nil
}
