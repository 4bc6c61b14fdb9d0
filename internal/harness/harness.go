package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/marsbound/rover/internal/runtime"
	"github.com/marsbound/rover/internal/shell"
	"github.com/marsbound/rover/internal/testutil"
	"github.com/marsbound/rover/internal/trace"
)

// Source references the harness hands to the mission runner.
const (
	planetRef = "scenario:planet"
	roverRef  = "scenario:rover"
)

// Result is the outcome of one scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool

	// Outcome is the actual run outcome.
	Outcome string

	// Reports are the report lines seen on the success stream.
	Reports []string

	// ErrReports are the report lines seen on the error stream.
	ErrReports []string

	// Steps is the recorded step trace, in order.
	Steps []trace.Step

	// Errors lists every expectation that did not hold. Empty when Pass.
	Errors []string
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes one scenario against the real decision function and loop,
// with scripted console input and an in-memory step recorder.
func Run(scenario *Scenario) (*Result, error) {
	loader := testutil.MapLoader{Sources: map[string]testutil.TwoLines{
		planetRef: {First: scenario.Planet.Size, Second: scenario.Planet.Obstacles},
		roverRef:  {First: scenario.Rover.Position, Second: scenario.Rover.Direction},
	}}
	console := testutil.NewScriptConsole(scenario.Commands)
	sink := &testutil.CaptureSink{}
	recorder := testutil.NewMemoryRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mission, err := shell.RunMission(context.Background(), shell.MissionConfig{
		PlanetRef:   planetRef,
		RoverRef:    roverRef,
		Interpreter: shell.NewInterpreter(loader, console, sink, logger),
		Recorder:    recorder,
		Tokens:      runtime.NewFixedGenerator(scenario.RunToken),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		Pass:       true,
		Outcome:    mission.Outcome,
		Reports:    sink.InfoLines,
		ErrReports: sink.ErrLines,
		Steps:      recorder.Steps,
	}
	checkExpectations(scenario, result)
	return result, nil
}

// checkExpectations compares the actual run against the expect clause.
func checkExpectations(scenario *Scenario, result *Result) {
	expect := scenario.Expect

	if result.Outcome != expect.Outcome {
		result.AddError("outcome: want %s, got %s", expect.Outcome, result.Outcome)
	}

	if len(expect.Reports) > 0 {
		if len(result.Reports) != len(expect.Reports) {
			result.AddError("reports: want %d line(s), got %d: %v",
				len(expect.Reports), len(result.Reports), result.Reports)
		} else {
			for i, want := range expect.Reports {
				if result.Reports[i] != want {
					result.AddError("reports[%d]: want %q, got %q", i, want, result.Reports[i])
				}
			}
		}
	}

	if len(expect.ErrorContains) > 0 {
		if len(result.ErrReports) != 1 {
			result.AddError("error report: want exactly one line, got %d: %v",
				len(result.ErrReports), result.ErrReports)
		} else {
			for _, want := range expect.ErrorContains {
				if !strings.Contains(result.ErrReports[0], want) {
					result.AddError("error report: %q missing from %q", want, result.ErrReports[0])
				}
			}
		}
	}
}
