package shell

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/parse"
	"github.com/marsbound/rover/internal/sim"
)

// CommandPrompt is shown before each command batch is read.
const CommandPrompt = "Waiting commands... "

// ObstacleReportPrefix distinguishes the obstacle-hit pose report from the
// completed pose report.
const ObstacleReportPrefix = "O:"

// Interpreter executes one effect at a time and resolves it to at most one
// follow-up event. A nil event signals a terminal effect.
type Interpreter struct {
	loader  SourceLoader
	console LineReader
	sink    ReportSink
	logger  *slog.Logger
}

// NewInterpreter wires the interpreter's collaborators.
// A nil logger falls back to slog.Default().
func NewInterpreter(loader SourceLoader, console LineReader, sink ReportSink, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{loader: loader, console: console, sink: sink, logger: logger}
}

// Interpret executes a single effect.
//
// Load and parse failures never surface as errors: they become
// LoadMissionFailed events with a typed payload. The only error path is a
// failing console read, which the state machine has no transition for.
func (i *Interpreter) Interpret(ctx context.Context, seq int64, effect core.Effect) (*core.Event, error) {
	i.logger.Debug("interpreting effect", "seq", seq, "effect", effect.Kind.String())

	switch effect.Kind {
	case core.EffectLoadMission:
		ev := i.loadMission(effect.PlanetRef, effect.RoverRef)
		return &ev, nil

	case core.EffectAskCommands:
		line, err := i.console.PromptAndRead(CommandPrompt)
		if err != nil {
			return nil, fmt.Errorf("ask commands: %w", err)
		}
		ev := core.CommandsReceived(parse.Commands(line))
		return &ev, nil

	case core.EffectReportObstacleHit:
		i.sink.Info(ObstacleReportPrefix + effect.Rover.String())
		return nil, nil

	case core.EffectReportSequenceCompleted:
		i.sink.Info(effect.Rover.String())
		return nil, nil

	case core.EffectKo:
		i.sink.Error(effect.Err.Error())
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown effect kind %q", effect.Kind.String())
	}
}

// loadMission loads and parses the two mission sources. Every failure is
// absorbed into a LoadMissionFailed event.
func (i *Interpreter) loadMission(planetRef, roverRef string) core.Event {
	sizeLine, obstaclesLine, err := i.loader.Load(planetRef)
	if err != nil {
		i.logger.Debug("planet source load failed", "ref", planetRef, "error", err)
		return core.LoadMissionFailed(core.WrapLoadError(err))
	}

	positionLine, directionLine, err := i.loader.Load(roverRef)
	if err != nil {
		i.logger.Debug("rover source load failed", "ref", roverRef, "error", err)
		return core.LoadMissionFailed(core.WrapLoadError(err))
	}

	planet, perr := parse.Planet(sizeLine, obstaclesLine)
	if perr != nil {
		return core.LoadMissionFailed(perr)
	}

	rover, perr := parse.Rover(positionLine, directionLine)
	if perr != nil {
		return core.LoadMissionFailed(perr)
	}

	i.logger.Debug("mission loaded",
		"size", planet.Size().String(),
		"obstacles", planet.ObstacleCount(),
		"rover", rover.String(),
	)
	return core.LoadMissionSuccessful(sim.Mission{Planet: planet, Rover: rover})
}
