package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marsbound/rover/internal/trace"
)

// Scenario defines one conformance scenario: a mission, an optional command
// batch, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Planet is the planet source in the textual grammar.
	Planet PlanetSource `yaml:"planet"`

	// Rover is the rover source in the textual grammar.
	Rover RoverSource `yaml:"rover"`

	// Commands is the scripted command batch. Left empty for scenarios
	// that fail before commands are asked for.
	Commands string `yaml:"commands,omitempty"`

	// Expect specifies the expected run outcome.
	Expect ExpectClause `yaml:"expect"`

	// RunToken is an optional fixed run token. Defaults to
	// "scenario-<name>" so golden traces stay stable.
	RunToken string `yaml:"run_token,omitempty"`
}

// PlanetSource mirrors the two planet source lines.
type PlanetSource struct {
	Size      string `yaml:"size"`
	Obstacles string `yaml:"obstacles,omitempty"`
}

// RoverSource mirrors the two rover source lines.
type RoverSource struct {
	Position  string `yaml:"position"`
	Direction string `yaml:"direction"`
}

// ExpectClause specifies the expected run result.
type ExpectClause struct {
	// Outcome is "completed", "obstacle_hit" or "error".
	Outcome string `yaml:"outcome"`

	// Reports are the exact report lines expected on the success stream.
	Reports []string `yaml:"reports,omitempty"`

	// ErrorContains are substrings expected in the error report line.
	ErrorContains []string `yaml:"error_contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected, which catches typos like "expects:" before they silently skip
// an assertion.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	if scenario.RunToken == "" {
		scenario.RunToken = "scenario-" + scenario.Name
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and coherent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Planet.Size == "" {
		return fmt.Errorf("planet.size is required")
	}
	if s.Rover.Position == "" {
		return fmt.Errorf("rover.position is required")
	}
	if s.Rover.Direction == "" {
		return fmt.Errorf("rover.direction is required")
	}

	switch s.Expect.Outcome {
	case trace.OutcomeCompleted, trace.OutcomeObstacleHit:
		if len(s.Expect.Reports) == 0 {
			return fmt.Errorf("expect.reports is required for outcome %s", s.Expect.Outcome)
		}
	case trace.OutcomeError:
		if len(s.Expect.ErrorContains) == 0 {
			return fmt.Errorf("expect.error_contains is required for outcome error")
		}
	case "":
		return fmt.Errorf("expect.outcome is required")
	default:
		return fmt.Errorf("unknown expect.outcome %q", s.Expect.Outcome)
	}

	return nil
}
