package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsbound/rover/internal/trace"
)

func completedScenario() *Scenario {
	return &Scenario{
		Name:        "inline_completed",
		Description: "runs a batch to completion",
		Planet:      PlanetSource{Size: "5x4", Obstacles: "2,0 0,3"},
		Rover:       RoverSource{Position: "0,0", Direction: "N"},
		Commands:    "FFRFF",
		RunToken:    "inline-completed",
		Expect: ExpectClause{
			Outcome: trace.OutcomeCompleted,
			Reports: []string{"2:2:E"},
		},
	}
}

func TestRunCompletedScenario(t *testing.T) {
	result, err := Run(completedScenario())
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, trace.OutcomeCompleted, result.Outcome)
	assert.Equal(t, []string{"2:2:E"}, result.Reports)
	assert.Empty(t, result.ErrReports)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "inline-completed", result.Steps[0].RunToken)
	assert.Equal(t, int64(1), result.Steps[0].Seq)
	assert.Equal(t, int64(2), result.Steps[1].Seq)
}

func TestRunObstacleScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_obstacle",
		Description: "stops at an obstacle",
		Planet:      PlanetSource{Size: "5x4", Obstacles: "0,1"},
		Rover:       RoverSource{Position: "0,0", Direction: "N"},
		Commands:    "F",
		RunToken:    "inline-obstacle",
		Expect: ExpectClause{
			Outcome: trace.OutcomeObstacleHit,
			Reports: []string{"O:0:0:N"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunErrorScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_error",
		Description: "load failure ends the run",
		Planet:      PlanetSource{Size: "ax4"},
		Rover:       RoverSource{Position: "0,0", Direction: "N"},
		RunToken:    "inline-error",
		Expect: ExpectClause{
			Outcome:       trace.OutcomeError,
			ErrorContains: []string{"INVALID_PLANET", "ax4", "InvalidSize"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Reports)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "Failed", result.Steps[0].State)
}

func TestRunReportsWrongOutcome(t *testing.T) {
	scenario := completedScenario()
	scenario.Expect.Outcome = trace.OutcomeObstacleHit

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "outcome")
}

func TestRunReportsWrongReportLine(t *testing.T) {
	scenario := completedScenario()
	scenario.Expect.Reports = []string{"9:9:W"}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "9:9:W")
}

func TestRunTraceReplaysDeterministically(t *testing.T) {
	result, err := Run(completedScenario())
	require.NoError(t, err)

	v := trace.VerifySteps(result.Steps)
	assert.True(t, v.Deterministic, "diffs: %v", v.Diffs)
	assert.Equal(t, 2, v.Steps)
}
