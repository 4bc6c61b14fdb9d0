package trace

import (
	"fmt"
	"strings"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/parse"
	"github.com/marsbound/rover/internal/sim"
)

// Field keys used in step records. Payloads reuse the textual mission
// grammar so records parse back into live events.
const (
	fieldSize      = "size"
	fieldObstacles = "obstacles"
	fieldPosition  = "position"
	fieldDirection = "direction"
	fieldCommands  = "commands"
	fieldCode      = "code"
	fieldMessage   = "message"
	fieldRaw       = "raw"
	fieldReason    = "reason"
	fieldState     = "state"
	fieldEvent     = "event"
	fieldPlanetRef = "planet_ref"
	fieldRoverRef  = "rover_ref"
)

// FromEvent converts a core event into its journal record.
func FromEvent(ev core.Event) Record {
	switch ev.Kind {
	case core.EventLoadMissionSuccessful:
		m := ev.Mission
		return Record{
			Kind: ev.Kind.String(),
			Fields: map[string]string{
				fieldSize:      m.Planet.Size().String(),
				fieldObstacles: formatObstacles(m.Planet.Obstacles()),
				fieldPosition:  formatPosition(m.Rover.Position),
				fieldDirection: m.Rover.Direction.String(),
			},
		}

	case core.EventLoadMissionFailed:
		return Record{Kind: ev.Kind.String(), Fields: errorFields(ev.Err)}

	case core.EventCommandsReceived:
		return Record{
			Kind: ev.Kind.String(),
			Fields: map[string]string{
				fieldCommands: formatCommands(ev.Commands),
			},
		}

	default:
		return Record{Kind: ev.Kind.String()}
	}
}

// FromEffect converts a core effect into its journal record.
func FromEffect(ef core.Effect) Record {
	switch ef.Kind {
	case core.EffectLoadMission:
		return Record{
			Kind: ef.Kind.String(),
			Fields: map[string]string{
				fieldPlanetRef: ef.PlanetRef,
				fieldRoverRef:  ef.RoverRef,
			},
		}

	case core.EffectAskCommands:
		return Record{Kind: ef.Kind.String()}

	case core.EffectReportObstacleHit, core.EffectReportSequenceCompleted:
		return Record{
			Kind: ef.Kind.String(),
			Fields: map[string]string{
				fieldPosition:  formatPosition(ef.Rover.Position),
				fieldDirection: ef.Rover.Direction.String(),
			},
		}

	case core.EffectKo:
		return Record{Kind: ef.Kind.String(), Fields: errorFields(ef.Err)}

	default:
		return Record{Kind: ef.Kind.String()}
	}
}

// ToEvent parses a journaled event record back into a live core event.
// This is the replay path: a reconstructed event re-fed through core.Update
// must reproduce the journaled transition.
func ToEvent(rec Record) (core.Event, error) {
	switch rec.Kind {
	case core.EventLoadMissionSuccessful.String():
		planet, perr := parse.Planet(rec.Fields[fieldSize], rec.Fields[fieldObstacles])
		if perr != nil {
			return core.Event{}, fmt.Errorf("replay planet: %w", perr)
		}
		rover, perr := parse.Rover(rec.Fields[fieldPosition], rec.Fields[fieldDirection])
		if perr != nil {
			return core.Event{}, fmt.Errorf("replay rover: %w", perr)
		}
		return core.LoadMissionSuccessful(sim.Mission{Planet: planet, Rover: rover}), nil

	case core.EventLoadMissionFailed.String():
		return core.LoadMissionFailed(recordError(rec)), nil

	case core.EventCommandsReceived.String():
		return core.CommandsReceived(parse.Commands(rec.Fields[fieldCommands])), nil

	default:
		return core.Event{}, fmt.Errorf("unknown journaled event kind %q", rec.Kind)
	}
}

// errorFields flattens a mission error for journaling. The free-form Details
// map is not journaled except for the deterministic state/event pair of
// transition errors, so records stay replay-comparable.
func errorFields(err *core.Error) map[string]string {
	if err == nil {
		return nil
	}
	fields := map[string]string{
		fieldCode:    string(err.Code),
		fieldMessage: err.Message,
	}
	if err.RawValue != "" {
		fields[fieldRaw] = err.RawValue
	}
	if err.Reason != "" {
		fields[fieldReason] = err.Reason
	}
	if s, ok := err.Details[fieldState]; ok {
		fields[fieldState] = s
	}
	if e, ok := err.Details[fieldEvent]; ok {
		fields[fieldEvent] = e
	}
	return fields
}

// recordError rebuilds a mission error from journaled fields.
func recordError(rec Record) *core.Error {
	err := &core.Error{
		Code:     core.ErrorCode(rec.Fields[fieldCode]),
		Message:  rec.Fields[fieldMessage],
		RawValue: rec.Fields[fieldRaw],
		Reason:   rec.Fields[fieldReason],
	}
	state, hasState := rec.Fields[fieldState]
	event, hasEvent := rec.Fields[fieldEvent]
	if hasState || hasEvent {
		err.Details = map[string]string{}
		if hasState {
			err.Details[fieldState] = state
		}
		if hasEvent {
			err.Details[fieldEvent] = event
		}
	}
	return err
}

func formatPosition(p sim.Position) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func formatObstacles(obstacles []sim.Obstacle) string {
	parts := make([]string, len(obstacles))
	for i, o := range obstacles {
		parts[i] = formatPosition(o.Position)
	}
	return strings.Join(parts, " ")
}

func formatCommands(cmds []sim.Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteString(c.String())
	}
	return b.String()
}
