package missionfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/marsbound/rover/internal/parse"
	"github.com/marsbound/rover/internal/sim"
)

// Mission is one decoded pack entry.
type Mission struct {
	Name     string
	Mission  sim.Mission
	Commands []sim.Command
	Scripted bool // true when the pack declares a command batch
}

// Pack is the result of loading one mission pack.
type Pack struct {
	Missions []Mission
}

// DecodeError is a pack decode failure, positioned in the CUE source where
// possible.
type DecodeError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *DecodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadPack loads a mission pack from a .cue file or a directory of .cue
// files. All decode errors are collected, not just the first.
func LoadPack(path string) (*Pack, []error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, []error{fmt.Errorf("mission pack %s: %w", path, err)}
	}

	var args []string
	cfg := &load.Config{}
	if info.IsDir() {
		cfg.Dir = path
		args = []string{"."}
	} else {
		cfg.Dir = filepath.Dir(path)
		args = []string{filepath.Base(path)}
	}

	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, []error{fmt.Errorf("mission pack %s: no CUE instances", path)}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{fmt.Errorf("mission pack %s: %w", path, inst.Err)}
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{fmt.Errorf("mission pack %s: %w", path, err)}
	}

	return DecodePack(value)
}

// DecodePack extracts every mission under the "mission" field of a built
// CUE value.
func DecodePack(value cue.Value) (*Pack, []error) {
	missionsVal := value.LookupPath(cue.ParsePath("mission"))
	if !missionsVal.Exists() {
		return nil, []error{&DecodeError{
			Field:   "mission",
			Message: "no missions declared",
			Pos:     value.Pos(),
		}}
	}

	iter, err := missionsVal.Fields()
	if err != nil {
		return nil, []error{&DecodeError{
			Field:   "mission",
			Message: fmt.Sprintf("iterating missions: %v", err),
			Pos:     missionsVal.Pos(),
		}}
	}

	pack := &Pack{}
	var errs []error
	for iter.Next() {
		m, decodeErr := DecodeMission(iter.Label(), iter.Value())
		if decodeErr != nil {
			errs = append(errs, decodeErr)
			continue
		}
		pack.Missions = append(pack.Missions, *m)
	}

	sort.Slice(pack.Missions, func(i, j int) bool {
		return pack.Missions[i].Name < pack.Missions[j].Name
	})

	if len(errs) > 0 {
		return pack, errs
	}
	return pack, nil
}

// DecodeMission decodes a single mission struct. The value layout is
//
//	{ planet: {size, obstacles?}, rover: {position, direction}, commands? }
//
// and every leaf goes through the textual-grammar parser, so a mission that
// decodes is a mission the runtime would accept from text sources.
func DecodeMission(name string, v cue.Value) (*Mission, error) {
	if err := v.Err(); err != nil {
		return nil, &DecodeError{Field: name, Message: err.Error(), Pos: v.Pos()}
	}

	sizeLine, derr := requiredString(v, "planet.size")
	if derr != nil {
		return nil, derr
	}
	obstaclesLine, derr := optionalString(v, "planet.obstacles")
	if derr != nil {
		return nil, derr
	}
	posLine, derr := requiredString(v, "rover.position")
	if derr != nil {
		return nil, derr
	}
	dirLine, derr := requiredString(v, "rover.direction")
	if derr != nil {
		return nil, derr
	}

	planet, perr := parse.Planet(sizeLine, obstaclesLine)
	if perr != nil {
		return nil, &DecodeError{
			Field:   "planet",
			Message: perr.Error(),
			Pos:     fieldPos(v, "planet"),
		}
	}
	rover, perr := parse.Rover(posLine, dirLine)
	if perr != nil {
		return nil, &DecodeError{
			Field:   "rover",
			Message: perr.Error(),
			Pos:     fieldPos(v, "rover"),
		}
	}

	m := &Mission{
		Name:    name,
		Mission: sim.Mission{Planet: planet, Rover: rover},
	}

	commandsVal := v.LookupPath(cue.ParsePath("commands"))
	if commandsVal.Exists() {
		line, err := commandsVal.String()
		if err != nil {
			return nil, &DecodeError{
				Field:   "commands",
				Message: fmt.Sprintf("expected string: %v", err),
				Pos:     commandsVal.Pos(),
			}
		}
		m.Commands = parse.Commands(line)
		m.Scripted = true
	}

	return m, nil
}

// Lookup returns the named mission from the pack.
func (p *Pack) Lookup(name string) (*Mission, bool) {
	for i := range p.Missions {
		if p.Missions[i].Name == name {
			return &p.Missions[i], true
		}
	}
	return nil, false
}

func requiredString(v cue.Value, path string) (string, *DecodeError) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return "", &DecodeError{Field: path, Message: "required field missing", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", &DecodeError{Field: path, Message: fmt.Sprintf("expected string: %v", err), Pos: fv.Pos()}
	}
	return s, nil
}

func optionalString(v cue.Value, path string) (string, *DecodeError) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", &DecodeError{Field: path, Message: fmt.Sprintf("expected string: %v", err), Pos: fv.Pos()}
	}
	return s, nil
}

func fieldPos(v cue.Value, path string) token.Pos {
	fv := v.LookupPath(cue.ParsePath(path))
	if fv.Exists() {
		return fv.Pos()
	}
	return v.Pos()
}
