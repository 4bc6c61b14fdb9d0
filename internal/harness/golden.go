package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/marsbound/rover/internal/trace"
)

// TraceSnapshot captures the full step trace of a scenario execution.
// It serializes through canonical JSON, so equal runs produce byte-identical
// snapshots.
type TraceSnapshot struct {
	ScenarioName string
	RunToken     string
	Steps        []trace.Step
}

func (s *TraceSnapshot) canonicalMap() map[string]any {
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"run_token":     s.RunToken,
		"steps":         s.Steps,
	}
}

// RunWithGolden executes a scenario and compares its step trace against the
// golden file testdata/golden/<name>.golden. Regenerate with
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		RunToken:     scenario.RunToken,
		Steps:        result.Steps,
	}
	data, err := trace.MarshalCanonical(snapshot.canonicalMap())
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
