package shell

import (
	"context"
	"log/slog"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/runtime"
	"github.com/marsbound/rover/internal/trace"
)

// MissionConfig carries everything one mission run needs.
type MissionConfig struct {
	PlanetRef string
	RoverRef  string

	Interpreter *Interpreter
	Recorder    trace.Recorder           // nil disables journaling
	Tokens      runtime.RunTokenGenerator // nil defaults to UUIDv7
	Logger      *slog.Logger             // nil defaults to slog.Default()
}

// MissionResult summarizes one completed run.
type MissionResult struct {
	RunToken   string
	FinalState core.AppState
	Outcome    string // trace.OutcomeCompleted, OutcomeObstacleHit or OutcomeError
	Steps      int64
}

// RunMission drives one full mission: it seeds the reactive loop with the
// Loading state and the LoadMission effect, journals every transition, and
// runs until a terminal effect ends the run.
//
// Journaling is telemetry only. Recording failures are logged and never
// alter the run outcome.
func RunMission(ctx context.Context, cfg MissionConfig) (MissionResult, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = trace.Discard{}
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = runtime.UUIDv7Generator{}
	}

	token := tokens.Generate()
	logger.Info("mission starting",
		"run_token", token,
		"planet_ref", cfg.PlanetRef,
		"rover_ref", cfg.RoverRef,
	)

	if err := recorder.BeginRun(ctx, trace.Run{
		Token:     token,
		PlanetRef: cfg.PlanetRef,
		RoverRef:  cfg.RoverRef,
	}); err != nil {
		logger.Warn("run journaling unavailable", "run_token", token, "error", err)
		recorder = trace.Discard{}
	}

	var lastEffect core.Effect
	var steps int64

	loop := runtime.New(core.Update, cfg.Interpreter.Interpret,
		runtime.WithObserver[core.AppState, core.Event, core.Effect](
			func(seq int64, event core.Event, state core.AppState, effect core.Effect) {
				lastEffect = effect
				steps = seq
				step := trace.Step{
					RunToken: token,
					Seq:      seq,
					Event:    trace.FromEvent(event),
					State:    state.String(),
					Effect:   trace.FromEffect(effect),
				}
				if err := recorder.RecordStep(ctx, step); err != nil {
					logger.Warn("step journaling failed", "run_token", token, "seq", seq, "error", err)
				}
			},
		),
	)

	final, err := loop.Run(ctx, core.Loading(), core.LoadMission(cfg.PlanetRef, cfg.RoverRef))

	outcome := outcomeFor(lastEffect, err)
	if ferr := recorder.FinishRun(ctx, token, outcome); ferr != nil {
		logger.Warn("run journaling incomplete", "run_token", token, "error", ferr)
	}

	logger.Info("mission finished",
		"run_token", token,
		"outcome", outcome,
		"steps", steps,
		"state", final.String(),
	)

	return MissionResult{
		RunToken:   token,
		FinalState: final,
		Outcome:    outcome,
		Steps:      steps,
	}, err
}

// outcomeFor classifies the run by its last emitted effect.
func outcomeFor(last core.Effect, err error) string {
	if err != nil {
		return trace.OutcomeError
	}
	switch last.Kind {
	case core.EffectReportSequenceCompleted:
		return trace.OutcomeCompleted
	case core.EffectReportObstacleHit:
		return trace.OutcomeObstacleHit
	default:
		return trace.OutcomeError
	}
}
