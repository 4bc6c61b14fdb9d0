package core

import (
	"fmt"

	"github.com/marsbound/rover/internal/sim"
)

// EffectKind distinguishes the closed set of effects the core can emit.
type EffectKind int

const (
	// EffectLoadMission asks the shell to load and parse the two mission
	// sources.
	EffectLoadMission EffectKind = iota
	// EffectAskCommands asks the shell to prompt for one line of commands.
	EffectAskCommands
	// EffectReportObstacleHit reports the pre-collision rover pose.
	// Terminal: interpreting it yields no follow-up event.
	EffectReportObstacleHit
	// EffectReportSequenceCompleted reports the final rover pose after a
	// fully applied command batch. Terminal.
	EffectReportSequenceCompleted
	// EffectKo reports a fatal error. Terminal.
	EffectKo
)

// String returns the effect name used in traces.
func (k EffectKind) String() string {
	switch k {
	case EffectLoadMission:
		return "LoadMission"
	case EffectAskCommands:
		return "AskCommands"
	case EffectReportObstacleHit:
		return "ReportObstacleHit"
	case EffectReportSequenceCompleted:
		return "ReportCommandSequenceCompleted"
	case EffectKo:
		return "Ko"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// Effect is one instruction for the shell interpreter. Exactly the payload
// fields matching Kind are set.
type Effect struct {
	Kind      EffectKind
	PlanetRef string    // EffectLoadMission
	RoverRef  string    // EffectLoadMission
	Rover     sim.Rover // report effects
	Err       *Error    // EffectKo
}

// LoadMission builds the effect that starts a run: load the planet and rover
// sources identified by the two opaque references.
func LoadMission(planetRef, roverRef string) Effect {
	return Effect{Kind: EffectLoadMission, PlanetRef: planetRef, RoverRef: roverRef}
}

// AskCommands builds the effect that prompts for the next command batch.
func AskCommands() Effect {
	return Effect{Kind: EffectAskCommands}
}

// ReportObstacleHit builds the terminal effect reporting a collision stop.
func ReportObstacleHit(r sim.Rover) Effect {
	return Effect{Kind: EffectReportObstacleHit, Rover: r}
}

// ReportCommandSequenceCompleted builds the terminal effect reporting a
// fully executed command batch.
func ReportCommandSequenceCompleted(r sim.Rover) Effect {
	return Effect{Kind: EffectReportSequenceCompleted, Rover: r}
}

// Ko builds the terminal effect reporting a fatal error.
func Ko(err *Error) Effect {
	return Effect{Kind: EffectKo, Err: err}
}

// Terminal reports whether interpreting this effect ends the run.
func (e Effect) Terminal() bool {
	switch e.Kind {
	case EffectReportObstacleHit, EffectReportSequenceCompleted, EffectKo:
		return true
	default:
		return false
	}
}

// String returns the effect name.
func (e Effect) String() string {
	return e.Kind.String()
}
