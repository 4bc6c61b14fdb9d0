package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marsbound/rover/internal/trace"
)

// ErrRunNotFound is returned when no run exists for a token.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run row for a token.
func (s *Store) ReadRun(ctx context.Context, token string) (trace.Run, error) {
	var run trace.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT token, planet_ref, rover_ref, outcome
		FROM runs
		WHERE token = ?
	`, token).Scan(&run.Token, &run.PlanetRef, &run.RoverRef, &run.Outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return trace.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, token)
	}
	if err != nil {
		return trace.Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return run, nil
}

// ListRuns returns all journaled runs, oldest first. UUIDv7 tokens sort by
// creation time, so token order is creation order.
func (s *Store) ListRuns(ctx context.Context) ([]trace.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, planet_ref, rover_ref, outcome
		FROM runs
		ORDER BY token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []trace.Run{}
	for rows.Next() {
		var run trace.Run
		if err := rows.Scan(&run.Token, &run.PlanetRef, &run.RoverRef, &run.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadSteps returns a run's steps in deterministic seq order.
func (s *Store) ReadSteps(ctx context.Context, token string) ([]trace.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, seq, event_kind, event_fields, state, effect_kind, effect_fields
		FROM steps
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("read steps of %s: %w", token, err)
	}
	defer rows.Close()

	steps := []trace.Step{}
	for rows.Next() {
		var step trace.Step
		var eventFields, effectFields string
		err := rows.Scan(
			&step.RunToken,
			&step.Seq,
			&step.Event.Kind,
			&eventFields,
			&step.State,
			&step.Effect.Kind,
			&effectFields,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if step.Event.Fields, err = trace.UnmarshalFields(eventFields); err != nil {
			return nil, fmt.Errorf("step %d event fields: %w", step.Seq, err)
		}
		if step.Effect.Fields, err = trace.UnmarshalFields(effectFields); err != nil {
			return nil, fmt.Errorf("step %d effect fields: %w", step.Seq, err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps of %s: %w", token, err)
	}
	return steps, nil
}
